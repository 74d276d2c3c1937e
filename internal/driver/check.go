package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"danube/internal/collect"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/symbols"
	"danube/internal/trace"
)

// CheckStats counts the outcome of CheckPaths.
type CheckStats struct {
	Paths      int
	Resolved   int
	Skipped    int
	Unresolved int
	Ambiguous  int
}

type pathOutcome struct {
	nodes   []symbols.NodeID
	skipped bool
}

// CheckPaths resolves every path the collector recorded. No result is an
// error, more than one is a warning with a note per candidate.
//
// Paths that start with crate, super, self or Self and resolve to nothing
// are skipped, as are multi-segment paths whose head names only leaf
// definitions (type parameters and the like); both need a later pass.
// Resolution runs in parallel; diagnostics are emitted in recording order.
func CheckPaths(ctx context.Context, prog *collect.Program, r diag.Reporter, jobs int) (CheckStats, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "check")
	uses := prog.Uses
	outcomes := make([]pathOutcome, len(uses))

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	chunk := (len(uses) + jobs - 1) / max(jobs, 1)
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(uses); lo += chunk {
		hi := min(lo+chunk, len(uses))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = checkPath(prog, uses[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return CheckStats{}, err
	}

	stats := CheckStats{Paths: len(uses)}
	for i, use := range uses {
		out := outcomes[i]
		switch {
		case out.skipped:
			stats.Skipped++
		case len(out.nodes) == 0:
			stats.Unresolved++
			diag.ReportError(r, diag.ResUnresolvedPath, use.Span,
				fmt.Sprintf("cannot find `%s` in the %s namespace", formatPath(prog.Strings, use.Path), use.Namespace)).Emit()
		case len(out.nodes) > 1:
			stats.Ambiguous++
			b := diag.ReportWarning(r, diag.ResAmbiguousPath, use.Span,
				fmt.Sprintf("`%s` is ambiguous: %d candidates", formatPath(prog.Strings, use.Path), len(out.nodes)))
			for _, id := range out.nodes {
				def := prog.Env.Node(id).Def
				b.WithNote(def.Span, fmt.Sprintf("could refer to the %s defined here", def.Kind))
			}
			b.Emit()
		default:
			stats.Resolved++
		}
	}

	span.WithExtra("paths", strconv.Itoa(stats.Paths)).
		WithExtra("unresolved", strconv.Itoa(stats.Unresolved)).
		WithExtra("ambiguous", strconv.Itoa(stats.Ambiguous)).
		End("")
	return stats, nil
}

func checkPath(prog *collect.Program, use collect.PathUse) pathOutcome {
	env := prog.Env
	if len(use.Path) == 0 {
		return pathOutcome{skipped: true}
	}
	nodes := env.ResolveNodes(use.Scope, use.Namespace, use.Path)
	if len(nodes) > 0 {
		return pathOutcome{nodes: nodes}
	}
	switch prog.Strings.MustLookup(use.Path[0]) {
	case "crate", "super", "self", "Self":
		return pathOutcome{skipped: true}
	}
	if len(use.Path) > 1 {
		heads := env.ResolveNodes(use.Scope, use.Namespace, use.Path[:1])
		if len(heads) > 0 && allLeaves(env, heads) {
			return pathOutcome{skipped: true}
		}
	}
	return pathOutcome{}
}

func allLeaves(env *collect.Env, ids []symbols.NodeID) bool {
	for _, id := range ids {
		if env.Node(id).Child.IsValid() {
			return false
		}
	}
	return true
}

func formatPath(strs *source.Interner, path []source.StringID) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = strs.MustLookup(s)
	}
	return strings.Join(parts, "::")
}
