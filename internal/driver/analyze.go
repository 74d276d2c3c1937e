package driver

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"fortio.org/safecast"

	"danube/internal/collect"
	"danube/internal/diag"
	"danube/internal/observ"
	"danube/internal/project"
	"danube/internal/source"
	"danube/internal/symbols"
	"danube/internal/trace"
)

type Options struct {
	MaxDiagnostics int // 0 means project.DefaultMaxDiagnostics
	Jobs           int // 0 means GOMAXPROCS
	// SkipCheck stops after collection; unresolved paths are not reported.
	SkipCheck bool
	Timer     *observ.Timer
}

// Result is an analyzed module tree.
type Result struct {
	Input   Input
	FileSet *source.FileSet
	Program *collect.Program
	Bag     *diag.Bag
	Check   CheckStats

	// Manifest fingerprints danube.toml; zero when the input has none.
	Manifest symbols.FileFingerprint
	// Missing lists module candidates that were tried and did not exist.
	Missing []string
}

// Analyze loads the module tree of in, collects it into one frozen Env and
// checks every recorded path. Problems in the sources end up in Result.Bag;
// an error means the entry could not be read or ctx was cancelled.
func Analyze(ctx context.Context, in Input, opts Options) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "analyze")
	span.WithExtra("entry", in.Entry)

	limit := diagnosticsLimit(opts.MaxDiagnostics)
	maxErrors, err := safecast.Conv[uint](limit)
	if err != nil {
		span.End("error")
		return nil, err
	}
	bag := diag.NewBag(limit)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	reporter := diag.NewSyncReporter(dedup)

	fs := source.NewFileSet()
	if in.Dir != "" {
		fs.SetBaseDir(in.Dir)
	}
	prelude := fs.AddVirtual(diag.PreludePath, []byte(collect.PreludeSource()))
	loader := project.NewLoader(in.FS, in.Dir, fs)

	var root source.FileID
	err = opts.Timer.Measure("load", func() (string, error) {
		var err error
		root, err = loader.Load(in.Entry)
		return in.Entry, err
	})
	if err != nil {
		span.End("error")
		return nil, fmt.Errorf("load %s: %w", in.Entry, err)
	}

	strs := source.NewInterner()
	fe := &frontend{files: fs, loader: loader, strs: strs, reporter: reporter, maxErrors: maxErrors}
	var prog *collect.Program
	err = opts.Timer.Measure("collect", func() (string, error) {
		var err error
		prog, err = collect.CollectProgram(ctx, fe, strs, root, collect.ProgramOptions{
			Reporter:    reporter,
			Jobs:        opts.Jobs,
			PreludeFile: prelude,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d files, %d scopes", len(prog.Units), prog.Env.NumScopes()), nil
	})
	if err != nil {
		span.End("error")
		return nil, err
	}

	res := &Result{Input: in, FileSet: fs, Program: prog, Bag: bag, Missing: loader.Missed()}
	if in.Manifest != nil {
		data, err := os.ReadFile(in.Manifest.Path)
		if err != nil {
			span.End("error")
			return nil, fmt.Errorf("fingerprint manifest: %w", err)
		}
		res.Manifest = symbols.FileFingerprint{Path: in.Manifest.Path, Hash: source.Fingerprint(data)}
	}
	if !opts.SkipCheck {
		err = opts.Timer.Measure("check", func() (string, error) {
			var err error
			res.Check, err = CheckPaths(ctx, prog, reporter, opts.Jobs)
			return fmt.Sprintf("%d paths", res.Check.Paths), err
		})
		if err != nil {
			span.End("error")
			return nil, err
		}
	}

	bag.Sort()
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len())).
		WithExtra("duplicates", strconv.Itoa(dedup.Suppressed())).
		End("")
	return res, nil
}

// Files returns the user source files of the analysis, prelude excluded.
func (r *Result) Files() []source.File {
	all := r.FileSet.Files()
	out := make([]source.File, 0, len(all))
	for _, f := range all {
		if f.Flags&source.FileVirtual != 0 && f.Path == diag.PreludePath {
			continue
		}
		out = append(out, f)
	}
	return out
}
