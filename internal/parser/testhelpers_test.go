package parser

import (
	"fmt"
	"strings"
	"testing"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
)

type parsed struct {
	arenas *ast.Builder
	file   *ast.File
	strs   *source.Interner
	bag    *diag.Bag
}

func parseText(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.dn", []byte(input))

	bag := diag.NewBag(100)
	arenas := ast.NewBuilder(ast.Hints{})
	strs := source.NewInterner()
	res := ParseSource(fs.Get(fileID), arenas, strs, Options{
		MaxErrors: 100,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	return parsed{arenas: arenas, file: arenas.Files.Get(res.File), strs: strs, bag: bag}
}

func (p parsed) name(id source.StringID) string {
	return p.strs.MustLookup(id)
}

func (p parsed) item(t *testing.T, i int) *ast.Item {
	t.Helper()
	if i >= len(p.file.Items) {
		t.Fatalf("want item %d, file has %d items (diags: %s)", i, len(p.file.Items), diagnosticsSummary(p.bag))
	}
	return p.arenas.Items.Get(p.file.Items[i])
}

func (p parsed) segments(segs []ast.PathSegment) string {
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = p.name(s.Name)
	}
	return strings.Join(names, "::")
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
