package driver

import (
	"fortio.org/safecast"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/parser"
	"danube/internal/source"
)

// single is one file loaded on its own, with a bag sized for it.
type single struct {
	fs   *source.FileSet
	file *source.File
	bag  *diag.Bag
}

func loadSingle(path string, maxDiagnostics int) (single, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return single{}, err
	}
	return single{fs: fs, file: fs.Get(id), bag: diag.NewBag(diagnosticsLimit(maxDiagnostics))}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Strings *source.Interner
	Bag     *diag.Bag
}

// Parse parses one file. `mod name;` declarations are not followed.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	in, err := loadSingle(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	maxErrors, err := safecast.Conv[uint](in.bag.Cap())
	if err != nil {
		return nil, err
	}
	res := &ParseResult{
		FileSet: in.fs,
		File:    in.file,
		Builder: ast.NewBuilder(ast.Hints{}),
		Strings: source.NewInterner(),
		Bag:     in.bag,
	}
	res.FileID = parser.ParseSource(in.file, res.Builder, res.Strings, parser.Options{
		Reporter:  diag.BagReporter{Bag: in.bag},
		MaxErrors: maxErrors,
	}).File
	return res, nil
}
