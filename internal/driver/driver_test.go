package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"danube/internal/collect"
	"danube/internal/diag"
	"danube/internal/observ"
	"danube/internal/source"
	"danube/internal/symbols"
	"danube/internal/token"
)

const treeMain = `mod a;
mod gone;
use a::Thing;
struct S { f: Thing, g: Nope, h: i32 }
fn f<T>(x: T::Out) -> crate::a::Thing {}
`

func memInput(files map[string]string) Input {
	fsys := fstest.MapFS{}
	for name, text := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(text)}
	}
	return Input{FS: fsys, Entry: "main.dn"}
}

func analyze(t *testing.T, in Input) *Result {
	t.Helper()
	res, err := Analyze(context.Background(), in, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := res.Program.Env.Validate(); err != nil {
		t.Fatalf("env is inconsistent: %v", err)
	}
	return res
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	slices.Sort(out)
	return out
}

func TestAnalyze_ModuleTree(t *testing.T) {
	timer := observ.NewTimer()
	res, err := Analyze(context.Background(), memInput(map[string]string{
		"main.dn": treeMain,
		"a.dn":    "pub struct Thing;\n",
	}), Options{Timer: timer})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []diag.Code{diag.ResModuleNotFound, diag.ResUnresolvedPath}
	if got := codes(res.Bag); !slices.Equal(got, want) {
		t.Fatalf("codes = %v, want %v\n%s", got, want, diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ResUnresolvedPath && !strings.Contains(d.Message, "`Nope`") {
			t.Errorf("unresolved message = %q", d.Message)
		}
	}

	wantStats := CheckStats{Paths: 5, Resolved: 2, Skipped: 2, Unresolved: 1}
	if res.Check != wantStats {
		t.Errorf("check stats = %+v, want %+v", res.Check, wantStats)
	}
	if len(res.Program.Units) != 2 {
		t.Errorf("units = %d, want 2", len(res.Program.Units))
	}
	if files := res.Files(); len(files) != 2 || files[0].Path != "main.dn" || files[1].Path != "a.dn" {
		t.Errorf("files = %v", files)
	}

	var phases []string
	for _, p := range timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	if got := strings.Join(phases, ","); got != "load,collect,check" {
		t.Errorf("timed phases = %s", got)
	}
}

func TestAnalyze_AmbiguousPath(t *testing.T) {
	res := analyze(t, memInput(map[string]string{
		"main.dn": "mod a;\nuse a::X;\nstruct X;\nstruct S { f: X }\n",
		"a.dn":    "pub struct X;\n",
	}))
	if got := codes(res.Bag); !slices.Equal(got, []diag.Code{diag.ResAmbiguousPath}) {
		t.Fatalf("codes = %v", got)
	}
	d := res.Bag.Items()[0]
	if d.Severity != diag.SevWarning || len(d.Notes) != 2 {
		t.Fatalf("ambiguity = %+v", d)
	}
	if d.Notes[0].Span.File == d.Notes[1].Span.File {
		t.Errorf("both candidates point into the same file")
	}
}

func TestAnalyze_SkipCheck(t *testing.T) {
	res, err := Analyze(context.Background(), memInput(map[string]string{
		"main.dn": "struct S { f: Nope }\n",
	}), Options{SkipCheck: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Bag.Len() != 0 || res.Check.Paths != 0 {
		t.Fatalf("check ran: %+v, %d diagnostics", res.Check, res.Bag.Len())
	}
}

func TestAnalyze_Errors(t *testing.T) {
	in := memInput(map[string]string{"main.dn": "struct S;\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Analyze(ctx, in, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Analyze error = %v", err)
	}

	in.Entry = "missing.dn"
	if _, err := Analyze(context.Background(), in, Options{}); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing entry error = %v", err)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	fsys := fstest.MapFS{
		"main.dn": {Data: []byte("mod a;\nuse a::Thing as T;\n")},
		"a.dn":    {Data: []byte("pub struct Thing;\n")},
	}
	res := analyze(t, Input{FS: fsys, Entry: "main.dn"})

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, res); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	restored, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if restored.Root != res.Program.Root {
		t.Fatalf("root = %d, want %d", restored.Root, res.Program.Root)
	}
	tsym, ok := restored.Strings.Find("T")
	if !ok {
		t.Fatalf("alias name missing from the restored interner")
	}
	defs := restored.Env.Resolve(restored.Root, symbols.TypeNS, []source.StringID{tsym})
	if len(defs) != 1 || defs[0].Kind != collect.DefStruct || restored.Strings.MustLookup(defs[0].Name) != "Thing" {
		t.Fatalf("T resolves to %+v", defs)
	}

	read := func(p string) ([]byte, error) { return fs.ReadFile(fsys, p) }
	if stale, err := StaleFiles(restored.Files, read); err != nil || len(stale) != 0 {
		t.Fatalf("fresh snapshot reported stale %v (%v)", stale, err)
	}
	fsys["a.dn"] = &fstest.MapFile{Data: []byte("pub struct Other;\n")}
	delete(fsys, "main.dn")
	stale, err := StaleFiles(restored.Files, read)
	if err != nil {
		t.Fatalf("StaleFiles: %v", err)
	}
	if got := strings.Join(stale, ","); got != "main.dn,a.dn" {
		t.Fatalf("stale = %s", got)
	}
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveInput(t *testing.T) {
	proj := t.TempDir()
	writeTree(t, proj, map[string]string{
		"danube.toml": "[package]\nname = \"app\"\nroot = \"src/main.dn\"\n",
		"src/main.dn": "mod util;\n",
		"src/util.dn": "struct U;\n",
		"notes.txt":   "",
	})

	in, err := ResolveInput(proj)
	if err != nil {
		t.Fatalf("ResolveInput(dir): %v", err)
	}
	if in.Entry != "src/main.dn" || in.Manifest == nil || in.Dir != in.Manifest.Root {
		t.Fatalf("project input = %+v", in)
	}

	in, err = ResolveInput(filepath.Join(proj, "src", "util.dn"))
	if err != nil {
		t.Fatalf("ResolveInput(file in project): %v", err)
	}
	if in.Entry != "src/util.dn" || in.Manifest == nil {
		t.Fatalf("file-in-project input = %+v", in)
	}

	if _, err := ResolveInput(filepath.Join(proj, "notes.txt")); err == nil {
		t.Fatalf("non-source file accepted")
	}

	loose := t.TempDir()
	writeTree(t, loose, map[string]string{"x.dn": "struct X;\n"})
	in, err = ResolveInput(filepath.Join(loose, "x.dn"))
	if err != nil {
		t.Fatalf("ResolveInput(loose file): %v", err)
	}
	if in.Entry != "x.dn" || in.Manifest != nil {
		t.Fatalf("loose input = %+v", in)
	}
}

func TestSnapshotCache(t *testing.T) {
	proj := t.TempDir()
	writeTree(t, proj, map[string]string{
		"main.dn": "mod a;\n",
		"a.dn":    "struct A;\n",
	})
	in, err := ResolveInput(filepath.Join(proj, "main.dn"))
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	res := analyze(t, in)

	cache, err := NewSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotCache: %v", err)
	}
	key := CacheKey(in)
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}
	if err := cache.Put(key, TakeSnapshot(res)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	snap, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get after Put = %v, %v", ok, err)
	}
	if len(snap.Files) != 2 {
		t.Fatalf("cached files = %v", snap.Files)
	}

	writeTree(t, proj, map[string]string{"a.dn": "struct B;\n"})
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("stale entry served: %v, %v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
}

func TestSnapshotCache_TracksMissingModulesAndManifest(t *testing.T) {
	const toml = "[package]\nname = \"app\"\nroot = \"main.dn\"\n"
	proj := t.TempDir()
	writeTree(t, proj, map[string]string{
		"danube.toml": toml,
		"main.dn":     "mod a;\nuse a::A;\n",
	})
	in, err := ResolveInput(proj)
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	cache, err := NewSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotCache: %v", err)
	}
	key := CacheKey(in)
	put := func() *Snapshot {
		t.Helper()
		snap := TakeSnapshot(analyze(t, in))
		if err := cache.Put(key, snap); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if _, ok, err := cache.Get(key); !ok || err != nil {
			t.Fatalf("fresh entry not served: %v, %v", ok, err)
		}
		return snap
	}

	snap := put()
	want := []string{filepath.Join(proj, "a.dn"), filepath.Join(proj, "a", "mod.dn")}
	if !slices.Equal(snap.Missing, want) {
		t.Fatalf("missing = %q, want %q", snap.Missing, want)
	}
	if n := len(snap.Files); n != 2 || snap.Files[n-1].Path != in.Manifest.Path {
		t.Fatalf("fingerprints = %+v", snap.Files)
	}

	writeTree(t, proj, map[string]string{"a.dn": "pub struct A;\n"})
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("entry served after a missing module appeared: %v, %v", ok, err)
	}

	snap = put()
	if !slices.Equal(snap.Missing, nil) {
		t.Fatalf("missing after a.dn exists = %q", snap.Missing)
	}
	writeTree(t, proj, map[string]string{"danube.toml": toml + "# edited\n"})
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("entry served after the manifest changed: %v, %v", ok, err)
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.dn":       "struct B;",
		"sub/a.dn":   "fn f() {}",
		"ignored.md": "# no",
	})
	_, results, err := TokenizeDir(context.Background(), dir, 0, 2)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 2 || results[0].Path != "b.dn" || results[1].Path != "sub/a.dn" {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if r.Bag.Len() != 0 {
			t.Errorf("%s: unexpected diagnostics", r.Path)
		}
		if n := len(r.Tokens); n == 0 || r.Tokens[n-1].Kind != token.EOF {
			t.Errorf("%s: tokens do not end with EOF", r.Path)
		}
	}
}

func TestParse_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.dn": "mod a;\nstruct S {"})
	res, err := Parse(filepath.Join(dir, "main.dn"), 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(res.Builder.Files.Get(res.FileID).Items); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
	if !res.Bag.HasErrors() {
		t.Errorf("unclosed struct produced no diagnostics")
	}
}
