package source

import (
	"os"
	"path/filepath"
)

// GetLine returns the text of 1-based line n without its newline, or ""
// when the file has no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 {
		return ""
	}
	line := int(n) - 1
	start := 0
	if line > 0 {
		if line > len(f.LineIdx) {
			return ""
		}
		start = int(f.LineIdx[line-1]) + 1
	}
	end := len(f.Content)
	if line < len(f.LineIdx) {
		end = min(int(f.LineIdx[line]), end)
	}
	if start >= len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path as "absolute", "relative" (to baseDir, or the
// working directory when empty), "basename" or "auto". Unknown modes and
// failures return Path unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = absolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		out = filepath.Base(f.Path)
	case "auto":
		out = f.Path
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			out = filepath.Base(f.Path)
		}
	default:
		out = f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
