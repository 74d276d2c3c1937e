package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"danube/internal/project"
)

// Input names the module tree to analyze: the file system modules are read
// from and the root module inside it.
type Input struct {
	FS    fs.FS
	Dir   string // OS directory FS is rooted at; "" for in-memory trees
	Entry string // slash-separated path of the root module within FS

	// Manifest is set when the input was found through danube.toml.
	Manifest *project.Manifest
}

// ResolveInput turns a CLI argument into an Input. A directory must hold
// (or sit below) a danube.toml whose [package].root is the entry. A file
// inside a project uses the project root as its module tree; a file
// outside any project uses its own directory.
func ResolveInput(path string) (Input, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Input{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Input{}, err
	}

	if info.IsDir() {
		m, err := project.LoadManifest(abs)
		if err != nil {
			return Input{}, fmt.Errorf("%s: %w", path, err)
		}
		entry, err := m.EntryFile()
		if err != nil {
			return Input{}, fmt.Errorf("%s: %w", m.Path, err)
		}
		return inputWithin(m.Root, entry, m)
	}

	if filepath.Ext(abs) != project.SourceExt {
		return Input{}, fmt.Errorf("%s: not a %s file", path, project.SourceExt)
	}
	m, err := project.LoadManifest(filepath.Dir(abs))
	switch {
	case errors.Is(err, project.ErrManifestMissing):
		return inputWithin(filepath.Dir(abs), abs, nil)
	case err != nil:
		return Input{}, err
	}
	return inputWithin(m.Root, abs, m)
}

func inputWithin(root, entry string, m *project.Manifest) (Input, error) {
	rel, err := filepath.Rel(root, entry)
	if err != nil {
		return Input{}, err
	}
	return Input{
		FS:       os.DirFS(root),
		Dir:      root,
		Entry:    filepath.ToSlash(rel),
		Manifest: m,
	}, nil
}
