package collect

import (
	"slices"
	"strings"
	"testing"

	"danube/internal/diag"
	"danube/internal/symbols"
)

const seedProgram = `
use foo::Bar;
use foo::bar::Baz as A;
use foo::baz::*;

mod foo {
    struct Bar;
    mod bar {
        struct Baz;
        mod qux {
            struct Quux;
        }
    }
    mod baz {
        struct Qux;
    }
}
`

func TestCollect_NestedModulesAndImports(t *testing.T) {
	c := collectSource(t, seedProgram)
	c.expectClean(t)

	tests := []struct {
		path string
		want string
	}{
		{"foo", "[module(foo)]"},
		{"foo::Bar", "[struct(Bar)]"},
		{"foo::bar::Baz", "[struct(Baz)]"},
		{"Bar", "[struct(Bar)]"},
		{"A", "[struct(Baz)]"},
		{"Qux", "[struct(Qux)]"},
		{"bar::qux::Quux", "[struct(Quux)]"},
		{"Missing", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := c.resolve(c.Root, symbols.TypeNS, tt.path); got != tt.want {
				t.Fatalf("Resolve(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestCollect_NamespaceRules(t *testing.T) {
	c := collectSource(t, `
struct S<T> { x: T, y: u8 }
struct P(u8, u16);
enum E<U> { A, B(U), C { f: u8 }, D = 3 }
fn f<'a, V, const N: usize>(v: &'a V, _: u8) -> V {}
const K: u8 = 1;
static G: u8 = 2;
type Al<W> = Vec<W>;
`)
	c.expectClean(t)

	if got := c.names(c.Root, symbols.TypeNS); got != "Al E P S W f" {
		t.Errorf("root types = %q", got)
	}
	if got := c.names(c.Root, symbols.ValueNS); got != "G K f" {
		t.Errorf("root values = %q", got)
	}

	s := c.scopeOf(t, c.Root, symbols.TypeNS, "S")
	if got := c.names(s, symbols.TypeNS); got != "T" {
		t.Errorf("struct types = %q, want T", got)
	}
	if got := c.names(s, symbols.ValueNS); got != "x y" {
		t.Errorf("struct fields = %q, want x y", got)
	}
	p := c.scopeOf(t, c.Root, symbols.TypeNS, "P")
	if got := c.names(p, symbols.ValueNS); got != "0 1" {
		t.Errorf("tuple fields = %q, want 0 1", got)
	}

	e := c.scopeOf(t, c.Root, symbols.TypeNS, "E")
	if got := c.names(e, symbols.TypeNS); got != "U" {
		t.Errorf("enum types = %q, want U", got)
	}
	if got := c.names(e, symbols.ValueNS); got != "A B C D" {
		t.Errorf("variants = %q", got)
	}
	if got := c.names(c.scopeOf(t, e, symbols.ValueNS, "B"), symbols.ValueNS); got != "0" {
		t.Errorf("B fields = %q, want 0", got)
	}
	ctor := c.scopeOf(t, e, symbols.ValueNS, "C")
	if kind := c.Env.Scope(ctor).Kind; kind != symbols.RibConstructor {
		t.Errorf("C scope kind = %s", kind)
	}
	if got := c.names(ctor, symbols.ValueNS); got != "f" {
		t.Errorf("C fields = %q, want f", got)
	}
	for _, unit := range []string{"A", "D"} {
		nodes := c.Env.ResolveNodes(e, symbols.ValueNS, c.path(unit))
		if len(nodes) != 1 || c.Env.Node(nodes[0]).Child.IsValid() {
			t.Errorf("unit variant %s should have no scope", unit)
		}
	}

	tyFn, _ := c.Env.Lookup(c.Root, symbols.TypeNS, c.Strings.Intern("f"))
	valFn, _ := c.Env.Lookup(c.Root, symbols.ValueNS, c.Strings.Intern("f"))
	fnScope := c.Env.Node(tyFn).Child
	if !fnScope.IsValid() || c.Env.Node(valFn).Child != fnScope {
		t.Fatalf("fn must map both namespaces to one scope")
	}
	if got := c.names(fnScope, symbols.TypeNS); got != "V" {
		t.Errorf("fn types = %q, want V (no lifetimes)", got)
	}
	if got := c.names(fnScope, symbols.ValueNS); got != "N v" {
		t.Errorf("fn values = %q, want N v", got)
	}

	kinds := []struct {
		ns   symbols.Namespace
		path string
		want string
	}{
		{symbols.TypeNS, "S", "[struct(S)]"},
		{symbols.TypeNS, "Al", "[type alias(Al)]"},
		{symbols.TypeNS, "W", "[type param(W)]"},
		{symbols.TypeNS, "u8", "[builtin(u8)]"},
		{symbols.ValueNS, "K", "[const(K)]"},
		{symbols.ValueNS, "G", "[static(G)]"},
		{symbols.ValueNS, "f", "[fn(f)]"},
		{symbols.ValueNS, "S::x", "[]"},
		{symbols.TypeNS, "f::V", "[type param(V)]"},
	}
	for _, k := range kinds {
		if got := c.resolve(c.Root, k.ns, k.path); got != k.want {
			t.Errorf("Resolve(%s, %s) = %s, want %s", k.ns, k.path, got, k.want)
		}
	}
}

func TestCollect_TraitAndImpl(t *testing.T) {
	c := collectSource(t, `
trait Tr<T> {
    fn m(&self) -> T;
    const K: u8;
    type Out;
}
struct S;
impl<X> Tr<X> for S {
    fn m(&self) -> X {}
}
impl S {
    fn m(self) {}
}
`)
	c.expectClean(t)

	tr := c.scopeOf(t, c.Root, symbols.TypeNS, "Tr")
	if got := c.names(tr, symbols.TypeNS); got != "Self T" {
		t.Errorf("trait types = %q, want Self T", got)
	}
	itemsNode, ok := c.Env.Lookup(tr, symbols.ValueNS, 0)
	if !ok {
		t.Fatalf("trait has no item scope under the empty name")
	}
	items := c.Env.Node(itemsNode).Child
	if kind := c.Env.Scope(items).Kind; kind != symbols.RibBlock {
		t.Fatalf("item scope kind = %s, want block", kind)
	}
	if got := c.names(items, symbols.TypeNS); got != "Out m" {
		t.Errorf("trait item types = %q", got)
	}
	if got := c.names(items, symbols.ValueNS); got != "K m" {
		t.Errorf("trait item values = %q", got)
	}
	m := c.scopeOf(t, items, symbols.ValueNS, "m")
	if got := c.names(m, symbols.ValueNS); got != "self" {
		t.Errorf("method params = %q, want self", got)
	}
	if got := c.resolve(m, symbols.TypeNS, "T"); got != "[type param(T)]" {
		t.Errorf("T from method = %s", got)
	}
	if got := c.resolve(m, symbols.TypeNS, "Self"); got != "[Self(Self)]" {
		t.Errorf("Self from method = %s", got)
	}

	var impls []symbols.ScopeID
	for _, child := range c.Env.Scope(c.Root).Children {
		if c.Env.Scope(child).Kind == symbols.RibImplement {
			impls = append(impls, child)
		}
	}
	if len(impls) != 2 {
		t.Fatalf("got %d impl scopes, want 2", len(impls))
	}
	if got := c.names(impls[0], symbols.TypeNS); got != "Self X" {
		t.Errorf("impl types = %q, want Self X", got)
	}
	if got := c.names(impls[1], symbols.TypeNS); got != "Self" {
		t.Errorf("inherent impl types = %q, want Self", got)
	}

	var traitRef, selfTy bool
	for _, u := range c.Uses {
		if u.Scope != impls[0] {
			continue
		}
		switch c.Strings.MustLookup(u.Path[0]) {
		case "Tr":
			traitRef = true
		case "S":
			selfTy = true
		}
	}
	if !traitRef || !selfTy {
		t.Errorf("impl header paths not recorded in the impl scope: trait=%v self=%v", traitRef, selfTy)
	}
}

func TestCollect_UseFlattening(t *testing.T) {
	c := collectSource(t, `
use a::b;
use a::b as c;
use a::*;
use a::{d, e::f as g, h::*, self};
use ::k::l;
use {m, n::{o, p}};
`)
	c.expectClean(t)

	want := []string{
		"direct a::b",
		"aliased a::b as c",
		"glob a",
		"direct a::d",
		"aliased a::e::f as g",
		"glob a::h",
		"direct a",
		"direct k::l",
		"direct m",
		"direct n::o",
		"direct n::p",
	}
	imports := c.Env.Scope(c.Root).Imports
	got := make([]string, len(imports))
	for i, imp := range imports {
		parts := make([]string, len(imp.Path))
		for j, seg := range imp.Path {
			parts[j] = c.Strings.MustLookup(seg)
		}
		got[i] = imp.Kind.String() + " " + strings.Join(parts, "::")
		if imp.Kind == symbols.ImportAliased {
			got[i] += " as " + c.Strings.MustLookup(imp.Alias)
		}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("imports:\n got %q\nwant %q", got, want)
	}
}

func TestCollect_MalformedUseIsSkipped(t *testing.T) {
	c := collectSource(t, "use self;\nuse *;\nuse a::;\nuse ok;\n")
	if got := c.codes(); !slices.Equal(got, []diag.Code{diag.ResMalformedDecl, diag.ResMalformedDecl, diag.ResMalformedDecl}) {
		t.Fatalf("diagnostics: %s", c.diagnostics())
	}
	if n := len(c.Env.Scope(c.Root).Imports); n != 1 {
		t.Fatalf("got %d imports, want only `use ok`", n)
	}
}

func TestCollect_MalformedItemIsSkipped(t *testing.T) {
	c := collectSource(t, "struct { x: u8 }\nfn ok() {}\n")
	if got := c.codes(); !slices.Equal(got, []diag.Code{diag.ResMalformedDecl}) {
		t.Fatalf("diagnostics: %s", c.diagnostics())
	}
	if got := c.names(c.Root, symbols.ValueNS); got != "ok" {
		t.Fatalf("root values = %q, want ok", got)
	}
}

func TestCollect_DuplicatesAreReportedAndSkipped(t *testing.T) {
	c := collectSource(t, `
struct A;
struct A { x: u8 }
fn A() {}
const B: u8 = 1;
fn B() {}
struct C { x: u8, x: u16 }
`)
	want := []diag.Code{diag.ResDuplicateSymbol, diag.ResDuplicateSymbol, diag.ResDuplicateSymbol, diag.ResDuplicateSymbol}
	if got := c.codes(); !slices.Equal(got, want) {
		t.Fatalf("diagnostics: %s", c.diagnostics())
	}
	for _, d := range c.bag.Items() {
		if len(d.Notes) != 1 || d.Notes[0].Span.Start >= d.Primary.Start {
			t.Errorf("%q: want one note pointing at the earlier definition, got %+v", d.Message, d.Notes)
		}
	}

	if got := c.names(c.Root, symbols.TypeNS); got != "A C" {
		t.Errorf("root types = %q, want A C", got)
	}
	if got := c.names(c.Root, symbols.ValueNS); got != "B" {
		t.Errorf("root values = %q, want B", got)
	}
	if got := c.resolve(c.Root, symbols.ValueNS, "B"); got != "[const(B)]" {
		t.Errorf("B = %s, first definition must stay", got)
	}
	// prelude, root, A and C: skipped declarations leave no scopes behind
	if n := c.Env.NumScopes(); n != 4 {
		t.Errorf("NumScopes = %d, want 4", n)
	}
}

func TestCollect_TypeAliasParamsGoToEnclosingScope(t *testing.T) {
	c := collectSource(t, "mod m { type A<T> = T; type B<U> = U; }")
	c.expectClean(t)
	m := c.scopeOf(t, c.Root, symbols.TypeNS, "m")
	if got := c.names(m, symbols.TypeNS); got != "A B T U" {
		t.Fatalf("module types = %q, want A B T U", got)
	}
}

func TestCollect_RecordsTypePaths(t *testing.T) {
	c := collectSource(t, "struct S<T> { x: Vec<T>, y: <T as Tr>::Out, z: crate::m::Q }")
	c.expectClean(t)
	s := c.scopeOf(t, c.Root, symbols.TypeNS, "S")

	var got []string
	for _, u := range c.Uses {
		if u.Scope != s || u.Namespace != symbols.TypeNS {
			t.Errorf("use recorded in scope %d ns %s", u.Scope, u.Namespace)
		}
		parts := make([]string, len(u.Path))
		for i, seg := range u.Path {
			parts[i] = c.Strings.MustLookup(seg)
		}
		got = append(got, strings.Join(parts, "::"))
	}
	want := []string{"Vec", "T", "T", "Tr", "crate::m::Q"}
	if !slices.Equal(got, want) {
		t.Fatalf("uses = %q, want %q", got, want)
	}
}
