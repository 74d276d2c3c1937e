package source

import (
	"testing"
	"testing/fstest"

	"github.com/zeebo/xxh3"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.dn", []byte("mod a;"), 0)
	id2 := fs.Add("main.dn", []byte("mod b;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.dn")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v, want %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "mod a;" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.dn", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
	if file.Hash != xxh3.Hash([]byte("a\nb\n")) {
		t.Fatalf("unexpected fingerprint %x", file.Hash)
	}
}

func TestLoadFSNormalizes(t *testing.T) {
	fsys := fstest.MapFS{
		"src/main.dn": {Data: []byte("\xEF\xBB\xBFstruct A;\r\nstruct B;\r\n")},
	}
	fs := NewFileSet()
	id, err := fs.LoadFS(fsys, "", "src/main.dn")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "struct A;\nstruct B;\n" {
		t.Fatalf("content not normalized: %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", file.Flags)
	}
	if got := Fingerprint(fsys["src/main.dn"].Data); got != file.Hash {
		t.Fatalf("Fingerprint = %x, want %x", got, file.Hash)
	}
	if _, err := fs.LoadFS(fsys, "", "src/missing.dn"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.dn", []byte("mod a;\nstruct Foo;\n"))
	start, end := fs.Resolve(Span{File: id, Start: 14, End: 17})
	if start != (LineCol{Line: 2, Col: 8}) || end != (LineCol{Line: 2, Col: 11}) {
		t.Fatalf("Resolve = %v..%v", start, end)
	}
	file := fs.Get(id)
	if got := file.GetLine(2); got != "struct Foo;" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(9); got != "" {
		t.Fatalf("GetLine(9) = %q, want empty", got)
	}
}
