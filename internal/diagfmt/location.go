package diagfmt

import (
	"fmt"

	"danube/internal/diag"
	"danube/internal/source"
)

// formatPath prints the prelude under its own name whatever the mode.
func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f.Path == diag.PreludePath {
		return f.Path
	}
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}

// formatSpan gives "line:col-line:col", or raw offsets without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func validSpan(span source.Span, fs *source.FileSet) bool {
	return fs != nil && int(span.File) < fs.Len()
}
