package project

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"danube/internal/source"
)

func TestModuleCandidates(t *testing.T) {
	tests := []struct {
		from string
		want []string
	}{
		{"main.dn", []string{"a.dn", "a/mod.dn"}},
		{"src/main.dn", []string{"src/a.dn", "src/a/mod.dn"}},
		{"src/x/mod.dn", []string{"src/x/a.dn", "src/x/a/mod.dn"}},
		{"src/foo.dn", []string{"src/foo/a.dn", "src/foo/a/mod.dn"}},
	}
	for _, tt := range tests {
		if got := ModuleCandidates(tt.from, "a"); !slices.Equal(got, tt.want) {
			t.Errorf("ModuleCandidates(%q) = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func newTestLoader(t *testing.T) (*Loader, *source.FileSet, source.FileID) {
	t.Helper()
	fsys := fstest.MapFS{
		"src/main.dn":        {Data: []byte("mod a;\nmod b;\n")},
		"src/a.dn":           {Data: []byte("mod inner;\n")},
		"src/a/inner.dn":     {Data: []byte("struct I;\n")},
		"src/b/mod.dn":       {Data: []byte("mod c;\n")},
		"src/b/c/mod.dn":     {Data: []byte("struct C;\n")},
		"src/dir.dn/keep.md": {Data: []byte("not a module")},
	}
	files := source.NewFileSet()
	l := NewLoader(fsys, "", files)
	root, err := l.Load("src/main.dn")
	if err != nil {
		t.Fatalf("load root: %v", err)
	}
	return l, files, root
}

func TestLoader_ResolveModule(t *testing.T) {
	l, files, root := newTestLoader(t)

	a, err := l.ResolveModule(root, "a")
	if err != nil {
		t.Fatalf("resolve a: %v", err)
	}
	if got := files.Get(a).Path; got != "src/a.dn" {
		t.Fatalf("a loaded from %q", got)
	}
	inner, err := l.ResolveModule(a, "inner")
	if err != nil {
		t.Fatalf("resolve a::inner: %v", err)
	}
	if got := files.Get(inner).Path; got != "src/a/inner.dn" {
		t.Fatalf("a::inner loaded from %q", got)
	}

	b, err := l.ResolveModule(root, "b")
	if err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	c, err := l.ResolveModule(b, "c")
	if err != nil {
		t.Fatalf("resolve b::c: %v", err)
	}
	if got := files.Get(c).Path; got != "src/b/c/mod.dn" {
		t.Fatalf("b::c loaded from %q", got)
	}
}

func TestLoader_SameFileSameID(t *testing.T) {
	l, files, root := newTestLoader(t)
	first, err := l.ResolveModule(root, "a")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := l.ResolveModule(root, "a")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatalf("same file loaded twice: %d and %d", first, second)
	}
	if n := files.Len(); n != 2 {
		t.Fatalf("FileSet has %d files, want 2", n)
	}
	again, err := l.Load("src/main.dn")
	if err != nil || again != root {
		t.Fatalf("Load(root) = %d, %v; want %d", again, err, root)
	}
}

func TestLoader_NotFound(t *testing.T) {
	l, _, root := newTestLoader(t)
	for _, name := range []string{"missing", "dir"} {
		if _, err := l.ResolveModule(root, name); !errors.Is(err, ErrModuleNotFound) {
			t.Errorf("ResolveModule(%q) err = %v, want ErrModuleNotFound", name, err)
		}
	}

	if _, err := l.ResolveModule(source.FileID(100), "a"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("unknown origin: err = %v", err)
	}
}

func TestLoader_Missed(t *testing.T) {
	l, _, root := newTestLoader(t)
	if got := l.Missed(); len(got) != 0 {
		t.Fatalf("fresh loader missed %q", got)
	}
	if _, err := l.ResolveModule(root, "b"); err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	if _, err := l.ResolveModule(root, "dir"); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("resolve dir: %v", err)
	}
	want := []string{"src/b.dn", "src/dir.dn", "src/dir/mod.dn"}
	if got := l.Missed(); !slices.Equal(got, want) {
		t.Fatalf("Missed() = %q, want %q", got, want)
	}

	osl := NewLoader(fstest.MapFS{"main.dn": {Data: []byte("mod x;\n")}}, "/proj", source.NewFileSet())
	main, err := osl.Load("main.dn")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := osl.ResolveModule(main, "x"); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("resolve x: %v", err)
	}
	want = []string{filepath.Join("/proj", "x.dn"), filepath.Join("/proj", "x", "mod.dn")}
	if got := osl.Missed(); !slices.Equal(got, want) {
		t.Fatalf("Missed() = %q, want %q", got, want)
	}
}
