package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"danube/internal/diag"
	"danube/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	note, code      *color.Color
	gutter, path    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgGreen, color.Bold),
		code:   mk(color.Faint),
		gutter: mk(color.FgBlue),
		path:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sevColor := pal.severity(d.Severity)
		header := sevColor.Sprint(d.Severity.String()) + " " + pal.code.Sprint(d.Code.ID()) + ": " + d.Message
		if validSpan(d.Primary, fs) {
			header = pal.path.Sprint(location(d.Primary, fs, opts.PathMode)) + ": " + header
		}
		fmt.Fprintln(w, header)
		if validSpan(d.Primary, fs) {
			writeSnippet(w, fs, d.Primary, int(opts.Context), sevColor, pal)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				if !validSpan(n.Span, fs) {
					fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
					continue
				}
				fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(n.Span, fs, opts.PathMode), n.Msg)
				writeSnippet(w, fs, n.Span, 0, pal.note, pal)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), f.Title)
				for _, e := range f.Edits {
					fmt.Fprintf(w, "    %s: replace with %q\n", location(e.Span, fs, opts.PathMode), e.NewText)
				}
			}
		}
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(span.File), fs, mode), start.Line, start.Col)
}

// writeSnippet prints the lines around span with a caret line under the
// first one. Columns are measured in display cells.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, mark *color.Color, pal palette) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln is bounded by a uint32 line number
		if ln > int(start.Line) && text == "" && ln > int(end.Line) {
			break
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(text))
		if ln != int(start.Line) {
			continue
		}
		col := min(int(start.Col)-1, len(text))
		stop := len(text)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(text))
		}
		pad := runewidth.StringWidth(expandTabs(text[:col]))
		width := 1
		if stop > col {
			width = max(runewidth.StringWidth(expandTabs(text[col:stop])), 1)
		}
		caret := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"), strings.Repeat(" ", pad), mark.Sprint(caret))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
