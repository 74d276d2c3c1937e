package project

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// ManifestName is the project manifest file name.
const ManifestName = "danube.toml"

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// FindManifest returns the nearest danube.toml at or above startDir.
// ok is false when none exists up to the filesystem root.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for dir := range ancestors(start) {
		candidate := filepath.Join(dir, ManifestName)
		_, statErr := os.Stat(candidate)
		switch {
		case statErr == nil:
			return candidate, true, nil
		case !errors.Is(statErr, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
	}
	return "", false, nil
}
