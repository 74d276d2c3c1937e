package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"danube/internal/source"
)

// PreludePath names the virtual file that holds builtin declarations.
const PreludePath = "<prelude>"

// line is one rendered row of the one-line format.
type line struct {
	label, code, path string
	ln, col           uint32
	msg               string
}

func (a line) compare(b line) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.ln, b.ln),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.label, b.label),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes), sorted by location. Rows located in the prelude are dropped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return lineFormatter{fs: fs, notes: includeNotes, hidePrelude: true}.format(diags)
}

// FormatShortDiagnostics is FormatGoldenDiagnostics keeping prelude rows.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return lineFormatter{fs: fs, notes: includeNotes}.format(diags)
}

type lineFormatter struct {
	fs          *source.FileSet
	notes       bool
	hidePrelude bool
}

func (f lineFormatter) format(diags []Diagnostic) string {
	if f.fs == nil || len(diags) == 0 {
		return ""
	}
	var rows []line
	for _, d := range diags {
		code := d.Code.ID()
		rows = f.add(rows, d.Primary, d.Severity.Label(), code, d.Message)
		if !f.notes {
			continue
		}
		for _, n := range d.Notes {
			rows = f.add(rows, n.Span, "note", code, n.Msg)
		}
	}
	slices.SortStableFunc(rows, line.compare)

	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%s %s %s:%d:%d %s", r.label, r.code, r.path, r.ln, r.col, r.msg)
	}
	return strings.Join(parts, "\n")
}

func (f lineFormatter) add(rows []line, sp source.Span, label, code, msg string) []line {
	path, lc, ok := f.locate(sp)
	if !ok || f.hidePrelude && path == PreludePath {
		return rows
	}
	return append(rows, line{
		label: label, code: code, path: path,
		ln: lc.Line, col: lc.Col,
		msg: strings.TrimSpace(flattenNewlines(msg)),
	})
}

// locate tolerates spans into unknown files.
func (f lineFormatter) locate(sp source.Span) (path string, lc source.LineCol, ok bool) {
	defer func() {
		if recover() != nil {
			path, lc, ok = "", source.LineCol{}, false
		}
	}()
	file := f.fs.Get(sp.File)
	path = file.Path
	if file.Flags&source.FileVirtual == 0 {
		path = file.FormatPath("relative", f.fs.BaseDir())
	}
	lc, _ = f.fs.Resolve(sp)
	path = filepath.ToSlash(path)
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return path, lc, true
}

func flattenNewlines(msg string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
}
