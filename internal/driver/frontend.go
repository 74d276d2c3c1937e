package driver

import (
	"context"
	"strconv"

	"danube/internal/ast"
	"danube/internal/collect"
	"danube/internal/diag"
	"danube/internal/parser"
	"danube/internal/project"
	"danube/internal/source"
	"danube/internal/trace"
)

// frontend feeds CollectProgram from a project.Loader. Parse only reads
// from the FileSet; every Add happens in ResolveModule on the collecting
// goroutine.
type frontend struct {
	files     *source.FileSet
	loader    *project.Loader
	strs      *source.Interner
	reporter  diag.Reporter
	maxErrors uint
}

var _ collect.Frontend = (*frontend)(nil)

func (f *frontend) ResolveModule(from source.FileID, name string) (source.FileID, error) {
	return f.loader.ResolveModule(from, name)
}

func (f *frontend) Parse(ctx context.Context, id source.FileID) (collect.Parsed, error) {
	file := f.files.Get(id)
	_, span := trace.StartSpan(ctx, trace.ScopeNode, "parse")
	span.WithExtra("path", file.Path)

	arenas := ast.NewBuilder(ast.Hints{})
	res := parser.ParseSource(file, arenas, f.strs, parser.Options{
		Reporter:  f.reporter,
		MaxErrors: f.maxErrors,
	})
	if res.Errors > 0 {
		span.WithExtra("errors", strconv.FormatUint(uint64(res.Errors), 10))
	}
	span.End("")
	return collect.Parsed{Arenas: arenas, File: res.File}, nil
}
