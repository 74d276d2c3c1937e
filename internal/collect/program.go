package collect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/symbols"
	"danube/internal/trace"
)

// Parsed is one parsed module file.
type Parsed struct {
	Arenas *ast.Builder
	File   ast.FileID
}

// Frontend supplies module files to CollectProgram. ResolveModule maps an
// external `mod name;` declared in from to its file; Parse must be safe to
// call from several goroutines at once.
type Frontend interface {
	ResolveModule(from source.FileID, name string) (source.FileID, error)
	Parse(ctx context.Context, file source.FileID) (Parsed, error)
}

// Unit is a collected module file and the scope it was collected into.
type Unit struct {
	Source source.FileID
	Scope  symbols.ScopeID
	Parsed Parsed
}

// Program is the result of collecting a module tree into one Env.
type Program struct {
	Env     *Env
	Strings *source.Interner
	Prelude symbols.ScopeID
	Root    symbols.ScopeID
	Units   []Unit // in collection order
	Uses    []PathUse
}

// Unit returns the unit collected from file.
func (p *Program) Unit(file source.FileID) (Unit, bool) {
	for _, u := range p.Units {
		if u.Source == file {
			return u, true
		}
	}
	return Unit{}, false
}

type ProgramOptions struct {
	Reporter diag.Reporter
	// Jobs bounds parallel parsing; 0 means GOMAXPROCS.
	Jobs int
	// PreludeFile holds PreludeSource; prelude spans point into it.
	PreludeFile source.FileID
	Hints       symbols.Hints
}

type moduleJob struct {
	file  source.FileID
	scope symbols.ScopeID
}

// CollectProgram collects root and every module reachable from it through
// `mod name;` declarations, breadth first. Files of one wave are parsed in
// parallel and collected sequentially in declaration order. The returned
// Env is frozen. An error is returned only for failures of the frontend's
// Parse or a cancelled ctx; resolution problems become diagnostics.
func CollectProgram(ctx context.Context, fe Frontend, strs *source.Interner, root source.FileID, opts ProgramOptions) (*Program, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "collect")

	env := symbols.NewEnv[Definition](opts.Hints)
	prog := &Program{Env: env, Strings: strs}
	prog.Prelude = InstallPrelude(env, strs, opts.PreludeFile)
	prog.Root = env.AddScope(symbols.RibModule, prog.Prelude, source.Span{File: root})

	col := NewCollector(env, strs, Options{Reporter: opts.Reporter})
	seen := map[source.FileID]bool{root: true}
	wave := []moduleJob{{file: root, scope: prog.Root}}
	for waveNo := 0; len(wave) > 0; waveNo++ {
		if err := ctx.Err(); err != nil {
			span.End("cancelled")
			return nil, err
		}
		wctx, ws := trace.StartSpan(ctx, trace.ScopeModule, "wave")
		ws.WithExtra("wave", strconv.Itoa(waveNo)).WithExtra("files", strconv.Itoa(len(wave)))
		parsed, err := parseWave(wctx, fe, wave, opts.Jobs)
		if err != nil {
			ws.End("parse failed")
			span.End("error")
			return nil, err
		}
		for i, job := range wave {
			col.CollectFile(parsed[i].Arenas, parsed[i].File, job.scope)
			prog.Units = append(prog.Units, Unit{Source: job.file, Scope: job.scope, Parsed: parsed[i]})
		}
		wave = locate(fe, col.TakePending(), strs, seen, opts.Reporter)
		ws.End("")
	}

	prog.Uses = col.Uses()
	env.Freeze()
	span.WithExtra("scopes", strconv.Itoa(env.NumScopes())).
		WithExtra("nodes", strconv.Itoa(env.NumNodes())).
		End(fmt.Sprintf("%d files", len(prog.Units)))
	return prog, nil
}

// locate maps queued modules to files. Misses, unreadable files and files
// that were already collected leave the placeholder scope empty.
func locate(fe Frontend, pending []Pending, strs *source.Interner, seen map[source.FileID]bool, r diag.Reporter) []moduleJob {
	var next []moduleJob
	for _, p := range pending {
		name := strs.MustLookup(p.Name)
		file, err := fe.ResolveModule(p.From, name)
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			diag.ReportError(r, diag.IOLoadFileError, p.Span,
				fmt.Sprintf("failed to read module `%s`: %v", name, err)).Emit()
			continue
		}
		if err != nil {
			diag.ReportError(r, diag.ResModuleNotFound, p.Span,
				fmt.Sprintf("file not found for module `%s`: %v", name, err)).Emit()
			continue
		}
		if seen[file] {
			diag.ReportWarning(r, diag.ResModuleReused, p.Span,
				fmt.Sprintf("module `%s` points at a file that is already loaded; it stays empty", name)).Emit()
			continue
		}
		seen[file] = true
		next = append(next, moduleJob{file: file, scope: p.Scope})
	}
	return next
}

func parseWave(ctx context.Context, fe Frontend, wave []moduleJob, jobs int) ([]Parsed, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([]Parsed, len(wave))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, job := range wave {
		g.Go(func() error {
			p, err := fe.Parse(gctx, job.file)
			if err != nil {
				return fmt.Errorf("parse file %d: %w", job.file, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
