package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"danube/internal/diag"
	"danube/internal/source"
)

func singleDiag(t *testing.T, path, content string, start, end uint32) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ResUnresolvedPath, source.Span{File: id, Start: start, End: end}, "cannot find `Nope` in the type namespace"))
	return bag, fs, id
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs, _ := singleDiag(t, "/home/user/project/src/test.dn", "struct S { f: Nope }\n", 14, 18)

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.dn:1:15: "},
		{"relative", PathModeRelative, "src/test.dn:1:15: "},
		{"basename", PathModeBasename, "test.dn:1:15: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.HasPrefix(out, tt.want) {
				t.Fatalf("output does not start with %q:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "ERROR RES3101: cannot find `Nope`") {
				t.Errorf("header missing:\n%s", out)
			}
		})
	}
}

func TestPretty_Snippet(t *testing.T) {
	bag, fs, _ := singleDiag(t, "/home/user/project/main.dn", "struct S { f: Nope }\n", 14, 18)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative})

	want := "main.dn:1:15: ERROR RES3101: cannot find `Nope` in the type namespace\n" +
		"1 | struct S { f: Nope }\n" +
		"  |               ^~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPretty_WideRunes(t *testing.T) {
	bag, fs, _ := singleDiag(t, "w.dn", "const 名前: Nope = 1;\n", 14, 18)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	if want := "  | " + strings.Repeat(" ", 12) + "^~~~"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPretty_NotesAndColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.dn", []byte("struct X;\nstruct X;\n"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.ResDuplicateSymbol, source.Span{File: id, Start: 17, End: 18}, "`X` is defined multiple times in the type namespace")
	d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: id, Start: 7, End: 8}, Msg: "previous definition here"})
	bag.Add(d)

	var plain bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{ShowNotes: true})
	out := plain.String()
	if !strings.Contains(out, "note: n.dn:1:8: previous definition here\n") {
		t.Fatalf("note missing:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("escape codes with Color off:\n%q", out)
	}

	var colored bytes.Buffer
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("no escape codes with Color on:\n%q", colored.String())
	}
}

func TestShort(t *testing.T) {
	bag, fs, _ := singleDiag(t, "main.dn", "struct S { f: Nope }\n", 14, 18)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "error RES3101 main.dn:1:15 cannot find `Nope` in the type namespace\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
