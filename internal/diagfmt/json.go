package diagfmt

import (
	"encoding/json"
	"io"

	"danube/internal/diag"
	"danube/internal/source"
)

// LocationJSON is a span in the JSON and YAML outputs. Line and column
// fields are present only with IncludePositions.
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location" yaml:"location"`
	NewText  string       `json:"new_text" yaml:"new_text"`
}

type FixJSON struct {
	Title string        `json:"title" yaml:"title"`
	Edits []FixEditJSON `json:"edits,omitempty" yaml:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty" yaml:"fixes,omitempty"`
}

// DiagnosticsOutput - корень документа.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

// at fills File and positions only for spans the FileSet knows.
func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if !validSpan(span, l.fs) {
		return loc
	}
	loc.File = formatPath(l.fs.Get(span.File), l.fs, l.opts.PathMode)
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (l locator) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: l.at(d.Primary),
	}
	if l.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: l.at(n.Span)})
		}
	}
	if l.opts.IncludeFixes {
		for _, f := range d.Fixes {
			fj := FixJSON{Title: f.Title}
			for _, e := range f.Edits {
				fj.Edits = append(fj.Edits, FixEditJSON{Location: l.at(e.Span), NewText: e.NewText})
			}
			out.Fixes = append(out.Fixes, fj)
		}
	}
	return out
}

// BuildDiagnosticsOutput is the document JSON and YAML encode. opts.Max
// caps the output only.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 {
		items = items[:min(opts.Max, len(items))]
	}
	l := locator{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, len(items)), Count: len(items)}
	for i, d := range items {
		out.Diagnostics[i] = l.diagnostic(d)
	}
	return out
}

func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
