package parser

import (
	"testing"

	"danube/internal/ast"
)

func TestParseTypes(t *testing.T) {
	p := parseText(t, `fn f(
    a: &&T,
    b: *const u8,
    c: (u8,),
    d: (u8),
    e: fn(x: u8) -> u8,
    f: dyn Tr + 'a,
    g: impl Fn(u8) -> u8,
    h: <T as Tr>::Out,
    i: !,
    j: _,
    k: ::std::Vec<u8>,
    l: [u8],
    m: HashMap<'a, K, Item = V>,
    n: *mut (),
) {}`)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fn, ok := p.arenas.Items.Fn(p.file.Items[0])
	if !ok {
		t.Fatalf("not a fn")
	}
	typeOf := func(i int) *ast.TypeExpr {
		return p.arenas.Types.Get(p.arenas.Items.FnParam(fn.Params[i]).Type)
	}

	tests := []struct {
		param int
		kind  ast.TypeExprKind
		elems int
		path  string
	}{
		{0, ast.TypeExprRef, 1, ""},
		{1, ast.TypeExprPtr, 1, ""},
		{2, ast.TypeExprTuple, 1, ""},
		{3, ast.TypeExprPath, 0, "u8"},
		{4, ast.TypeExprFn, 2, ""},
		{5, ast.TypeExprTraitObject, 1, ""},
		{6, ast.TypeExprTraitObject, 1, ""},
		{7, ast.TypeExprPath, 2, "Out"},
		{8, ast.TypeExprNever, 0, ""},
		{9, ast.TypeExprInfer, 0, ""},
		{10, ast.TypeExprPath, 0, "std::Vec"},
		{11, ast.TypeExprSlice, 1, ""},
		{12, ast.TypeExprPath, 0, "HashMap"},
		{13, ast.TypeExprPtr, 1, ""},
	}
	if len(fn.Params) != len(tests) {
		t.Fatalf("got %d params, want %d", len(fn.Params), len(tests))
	}
	for _, tt := range tests {
		ty := typeOf(tt.param)
		if ty.Kind != tt.kind || len(ty.Elems) != tt.elems || p.segments(ty.Path) != tt.path {
			t.Errorf("param %d: got kind %v elems %d path %q, want %v %d %q",
				tt.param, ty.Kind, len(ty.Elems), p.segments(ty.Path), tt.kind, tt.elems, tt.path)
		}
	}

	if inner := p.arenas.Types.Get(typeOf(0).Elems[0]); inner.Kind != ast.TypeExprRef {
		t.Errorf("&& should nest two references, inner is %v", inner.Kind)
	}
	if !typeOf(7).Qualified {
		t.Errorf("qualified path lost its qualifier")
	}
	if typeOf(1).Mutable || !typeOf(13).Mutable {
		t.Errorf("pointer mutability mixed up")
	}
	fnSugar := p.arenas.Types.Get(typeOf(6).Elems[0])
	if len(fnSugar.Path) != 1 || len(fnSugar.Path[0].Args) != 2 {
		t.Errorf("Fn(u8) -> u8 bound = %+v", fnSugar)
	}
	// lifetime dropped, binding contributes its value type
	if args := typeOf(12).Path[0].Args; len(args) != 2 {
		t.Errorf("HashMap args = %d, want 2", len(args))
	}
}

func TestParseTypes_Walk(t *testing.T) {
	p := parseText(t, "type A = Result<Vec<&T>, (E, [u8; 4])>;")
	alias, _ := p.arenas.Items.TypeAlias(p.file.Items[0])

	var paths []string
	p.arenas.Types.Walk(alias.Type, func(_ ast.TypeID, ty *ast.TypeExpr) {
		if ty.Kind == ast.TypeExprPath {
			paths = append(paths, p.segments(ty.Path))
		}
	})
	want := []string{"Result", "Vec", "T", "E", "u8"}
	if len(paths) != len(want) {
		t.Fatalf("walked %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("walked %v, want %v", paths, want)
		}
	}
}

func TestParseFnParams_Receivers(t *testing.T) {
	p := parseText(t, "impl S { fn f(self, &self, &'a mut self, mut self, self: Box<Self>, mut x: u8) {} }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	im, _ := p.arenas.Items.Impl(p.file.Items[0])
	fn, _ := p.arenas.Items.Fn(im.Items[0])
	if len(fn.Params) != 6 {
		t.Fatalf("got %d params, want 6", len(fn.Params))
	}
	for i := 0; i < 5; i++ {
		param := p.arenas.Items.FnParam(fn.Params[i])
		if !param.IsSelf || p.name(param.Name) != "self" {
			t.Errorf("param %d = %+v, want receiver", i, param)
		}
	}
	if typed := p.arenas.Items.FnParam(fn.Params[4]); !typed.Type.IsValid() {
		t.Errorf("self: Box<Self> lost its type")
	}
	last := p.arenas.Items.FnParam(fn.Params[5])
	if last.IsSelf || p.name(last.Name) != "x" {
		t.Errorf("mut x parsed as %+v", last)
	}
}
