package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/lexer"
	"danube/internal/parser"
	"danube/internal/source"
	"danube/internal/token"
)

type parsedSnippet struct {
	fs     *source.FileSet
	file   *source.File
	arenas *ast.Builder
	strs   *source.Interner
	id     ast.FileID
}

func parseSnippet(t *testing.T, src string) parsedSnippet {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.dn", []byte(src)))
	bag := diag.NewBag(10)
	arenas := ast.NewBuilder(ast.Hints{})
	strs := source.NewInterner()
	res := parser.ParseSource(file, arenas, strs, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShortDiagnostics(bag.Items(), fs, false))
	}
	return parsedSnippet{fs: fs, file: file, arenas: arenas, strs: strs, id: res.File}
}

func TestFormatASTPretty(t *testing.T) {
	p := parseSnippet(t, "use a::{b, c as d};\nstruct S<T: Clone> { pub x: &mut T }\nfn f(self, y: [u8]) -> Option<T>;\n")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, p.arenas, p.id, p.strs, p.fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"├─ Item[0]: use (span: 1:1-",
		"│  └─ Tree: a::{b, c as d}\n",
		"├─ Item[1]: struct S (span: 2:1-",
		"│  ├─ Generics: <T: Clone>\n",
		"│  └─ Field public x: &mut T\n",
		"└─ Item[2]: fn f (span: 3:1-",
		"   ├─ Params\n",
		"   │  ├─ self: <inferred>\n",
		"   │  └─ y: [u8]\n",
		"   ├─ Return: Option<T>\n",
		"   └─ Body: <none>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	p := parseSnippet(t, "mod m { struct A; }\nimpl Tr for m::A {}\n")
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, p.arenas, p.id, p.strs); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Children) != 2 {
		t.Fatalf("children = %+v", out.Children)
	}
	mod := out.Children[0]
	if mod.Kind != "mod" || mod.Text != "m" || len(mod.Children) != 1 || mod.Children[0].Text != "A" {
		t.Errorf("mod node = %+v", mod)
	}
	if impl := out.Children[1]; impl.Kind != "impl" || impl.Text != "m::A" {
		t.Errorf("impl node = %+v", impl)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.dn", []byte("// hi\nstruct")))
	lx := lexer.New(file, lexer.Options{})
	toks := []token.Token{lx.Next(), lx.Next()}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(pretty.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "at 2:1-2:7 (leading: line-comment, newline)") {
		t.Fatalf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 2 || out[1].Kind != token.EOF.String() || out[1].Leading != nil {
		t.Fatalf("json tokens = %+v", out)
	}
}
