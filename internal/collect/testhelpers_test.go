package collect

import (
	"context"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
	"testing"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/parser"
	"danube/internal/source"
	"danube/internal/symbols"
)

// memFrontend serves modules from a FileSet: `mod x;` in dir/main.dn or
// dir/mod.dn is dir/x.dn, in dir/foo.dn it is dir/foo/x.dn.
type memFrontend struct {
	fs       *source.FileSet
	strs     *source.Interner
	reporter diag.Reporter
}

func (m *memFrontend) ResolveModule(from source.FileID, name string) (source.FileID, error) {
	p := m.fs.Get(from).Path
	dir := path.Dir(p)
	if base := strings.TrimSuffix(path.Base(p), ".dn"); base != "main" && base != "mod" {
		dir = path.Join(dir, base)
	}
	want := path.Join(dir, name+".dn")
	if id, ok := m.fs.GetLatest(want); ok {
		return id, nil
	}
	return 0, fmt.Errorf("no file %s", want)
}

func (m *memFrontend) Parse(_ context.Context, file source.FileID) (Parsed, error) {
	arenas := ast.NewBuilder(ast.Hints{})
	res := parser.ParseSource(m.fs.Get(file), arenas, m.strs, parser.Options{Reporter: m.reporter})
	return Parsed{Arenas: arenas, File: res.File}, nil
}

type collected struct {
	*Program
	fs  *source.FileSet
	bag *diag.Bag
}

func collectFiles(t *testing.T, files map[string]string) *collected {
	t.Helper()
	fs := source.NewFileSet()
	prelude := fs.AddVirtual(diag.PreludePath, []byte(PreludeSource()))
	for _, name := range slices.Sorted(maps.Keys(files)) {
		fs.AddVirtual(name, []byte(files[name]))
	}
	root, ok := fs.GetLatest("main.dn")
	if !ok {
		t.Fatalf("no main.dn among %v", slices.Sorted(maps.Keys(files)))
	}

	bag := diag.NewBag(100)
	strs := source.NewInterner()
	fe := &memFrontend{fs: fs, strs: strs, reporter: diag.NewSyncReporter(diag.BagReporter{Bag: bag})}
	prog, err := CollectProgram(context.Background(), fe, strs, root, ProgramOptions{
		Reporter:    fe.reporter,
		Jobs:        2,
		PreludeFile: prelude,
	})
	if err != nil {
		t.Fatalf("CollectProgram: %v", err)
	}
	if err := prog.Env.Validate(); err != nil {
		t.Fatalf("collected env is inconsistent: %v", err)
	}
	return &collected{Program: prog, fs: fs, bag: bag}
}

func collectSource(t *testing.T, src string) *collected {
	t.Helper()
	return collectFiles(t, map[string]string{"main.dn": src})
}

func (c *collected) path(dotted string) []source.StringID {
	parts := strings.Split(dotted, "::")
	out := make([]source.StringID, len(parts))
	for i, p := range parts {
		out[i] = c.Strings.Intern(p)
	}
	return out
}

func (c *collected) describe(defs []Definition) string {
	parts := make([]string, len(defs))
	for i, d := range defs {
		parts[i] = d.Kind.String() + "(" + c.Strings.MustLookup(d.Name) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *collected) resolve(scope symbols.ScopeID, ns symbols.Namespace, dotted string) string {
	return c.describe(c.Env.Resolve(scope, ns, c.path(dotted)))
}

// scopeOf resolves dotted to exactly one node and returns its child scope.
func (c *collected) scopeOf(t *testing.T, from symbols.ScopeID, ns symbols.Namespace, dotted string) symbols.ScopeID {
	t.Helper()
	nodes := c.Env.ResolveNodes(from, ns, c.path(dotted))
	if len(nodes) != 1 {
		t.Fatalf("%s resolved to %d nodes, want 1", dotted, len(nodes))
	}
	child := c.Env.Node(nodes[0]).Child
	if !child.IsValid() {
		t.Fatalf("%s has no scope", dotted)
	}
	return child
}

// names lists the local names of scope in ns, sorted.
func (c *collected) names(scope symbols.ScopeID, ns symbols.Namespace) string {
	var out []string
	for name := range c.Env.Scope(scope).Names[ns] {
		out = append(out, c.Strings.MustLookup(name))
	}
	slices.Sort(out)
	return strings.Join(out, " ")
}

func (c *collected) codes() []diag.Code {
	out := make([]diag.Code, 0, c.bag.Len())
	for _, d := range c.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func (c *collected) diagnostics() string {
	lines := make([]string, 0, c.bag.Len())
	for _, d := range c.bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	if len(lines) == 0 {
		return "<none>"
	}
	return strings.Join(lines, "; ")
}

func (c *collected) expectClean(t *testing.T) {
	t.Helper()
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", c.diagnostics())
	}
}
