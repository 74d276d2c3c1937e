package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"danube/internal/diag"
	"danube/internal/lexer"
	"danube/internal/project"
	"danube/internal/source"
	"danube/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// TokenizeDirResult is one file of TokenizeDir. Path is relative to the
// directory, slash-separated.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

func lex(file *source.File, bag *diag.Bag) []token.Token {
	return lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
}

func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	in, err := loadSingle(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &TokenizeResult{FileSet: in.fs, File: in.file, Tokens: lex(in.file, in.bag), Bag: in.bag}, nil
}

// TokenizeDir lexes every source file under dir, jobs at a time, in path
// order. A file that cannot be read gets an IOLoadFileError and no tokens.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	paths, err := sourceFilesUnder(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results := make([]TokenizeDirResult, len(paths))

	// FileSet не потокобезопасен: сначала читаем все файлы
	var todo []int
	for i, path := range paths {
		r := &results[i]
		r.Path, r.Bag = path, diag.NewBag(diagnosticsLimit(maxDiagnostics))
		id, err := fileSet.Load(path)
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: r.Bag}, diag.IOLoadFileError, source.Span{},
				"failed to load file: "+err.Error()).Emit()
			continue
		}
		r.FileID = id
		todo = append(todo, i)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(todo))))
	for _, i := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Tokens = lex(fileSet.Get(results[i].FileID), results[i].Bag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i := range results {
		if rel, err := filepath.Rel(dir, results[i].Path); err == nil {
			results[i].Path = filepath.ToSlash(rel)
		}
	}
	return fileSet, results, nil
}

// sourceFilesUnder lists the source files below dir, sorted.
func sourceFilesUnder(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case !d.IsDir() && filepath.Ext(path) == project.SourceExt:
			out = append(out, path)
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

func diagnosticsLimit(n int) int {
	if n > 0 {
		return n
	}
	return project.DefaultMaxDiagnostics
}
