package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize strips a UTF-8 BOM and turns \r\n into \n. Lone \r stays.
func normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		raw, flags = rest, flags|FileHadBOM
	}
	if out, ok := normalizeCRLF(raw); ok {
		raw, flags = out, flags|FileNormalizedCRLF
	}
	return raw, flags
}

func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line index overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

// toLineCol: the number of newlines before off is the 0-based line.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line, _ := slices.BinarySearch(lineIdx, off)
	lineStart := uint32(0)
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	// #nosec G115 -- line <= len(lineIdx), which fits uint32
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func absolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir, or its absolute form when p
// lies outside baseDir.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}
