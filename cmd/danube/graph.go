package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/collect"
	"danube/internal/driver"
	"danube/internal/source"
	"danube/internal/symbols"
)

// graph is a frozen scope graph, either fresh from the driver or restored
// from a snapshot. fs is nil for restored graphs.
type graph struct {
	env  *collect.Env
	strs *source.Interner
	root symbols.ScopeID
	fs   *source.FileSet
	a    *analysis
}

func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().String("snapshot", "", "read the scope graph from a snapshot file instead of the sources")
	cmd.Flags().Bool("cache", false, "reuse the cached scope graph when the sources are unchanged")
}

// loadGraph builds the graph for path according to --snapshot and --cache.
func loadGraph(cmd *cobra.Command, path string) (*graph, error) {
	snapPath, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}

	if snapPath != "" {
		if err := setupTracing(cmd, nil); err != nil {
			return nil, err
		}
		f, err := os.Open(snapPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, err := driver.ReadSnapshot(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", snapPath, err)
		}
		return &graph{env: r.Env, strs: r.Strings, root: r.Root}, nil
	}

	if !useCache {
		return analyzeGraph(cmd, path)
	}
	in, err := driver.ResolveInput(path)
	if err != nil {
		return nil, err
	}
	cache, err := driver.OpenSnapshotCache("danube")
	if err != nil {
		return nil, err
	}
	key := driver.CacheKey(in)
	snap, ok, err := cache.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := setupTracing(cmd, in.Manifest); err != nil {
			return nil, err
		}
		r, err := driver.Restore(snap)
		if err != nil {
			return nil, err
		}
		return &graph{env: r.Env, strs: r.Strings, root: r.Root}, nil
	}

	g, err := analyzeGraph(cmd, path)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(key, driver.TakeSnapshot(g.a.result)); err != nil {
		fmt.Fprintf(os.Stderr, "cache: %v\n", err)
	}
	return g, nil
}

func analyzeGraph(cmd *cobra.Command, path string) (*graph, error) {
	a, err := analyzePath(cmd, path, true)
	if err != nil {
		return nil, err
	}
	prog := a.result.Program
	return &graph{env: prog.Env, strs: prog.Strings, root: prog.Root, fs: a.result.FileSet, a: a}, nil
}

// locate formats a span as path:line:col, or nil without sources.
func (g *graph) locate() func(source.Span) string {
	if g.fs == nil {
		return nil
	}
	return func(sp source.Span) string {
		if int(sp.File) >= g.fs.Len() {
			return ""
		}
		f := g.fs.Get(sp.File)
		start, _ := g.fs.Resolve(sp)
		return fmt.Sprintf("%s:%d:%d", f.FormatPath("relative", g.fs.BaseDir()), start.Line, start.Col)
	}
}

func (g *graph) printTimings(cmd *cobra.Command) {
	if g.a != nil {
		g.a.printTimings(cmd, os.Stderr)
	}
}
