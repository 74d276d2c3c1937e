package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"danube/internal/source"
)

// SourceExt is the extension of Danube source files.
const SourceExt = ".dn"

// ErrModuleNotFound indicates that no candidate file exists for `mod name;`.
var ErrModuleNotFound = errors.New("module not found")

// Loader reads module files from a file system into a FileSet. Every file
// is loaded once, so two declarations that reach the same file get the
// same FileID.
type Loader struct {
	fsys  fs.FS
	dir   string // OS directory fsys is rooted at; "" for in-memory trees
	files *source.FileSet

	mu     sync.Mutex
	byName map[string]source.FileID
	names  map[source.FileID]string
	missed map[string]struct{} // candidates tried and not found as files
}

func NewLoader(fsys fs.FS, dir string, files *source.FileSet) *Loader {
	return &Loader{
		fsys:   fsys,
		dir:    dir,
		files:  files,
		byName: make(map[string]source.FileID),
		names:  make(map[source.FileID]string),
		missed: make(map[string]struct{}),
	}
}

// Load reads name (slash-separated, relative to the loader root).
func (l *Loader) Load(name string) (source.FileID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(path.Clean(name))
}

func (l *Loader) load(name string) (source.FileID, error) {
	if id, ok := l.byName[name]; ok {
		return id, nil
	}
	id, err := l.files.LoadFS(l.fsys, l.dir, name)
	if err != nil {
		return 0, err
	}
	l.byName[name] = id
	l.names[id] = name
	return id, nil
}

// ResolveModule locates the file of `mod name;` declared in from and loads it.
func (l *Loader) ResolveModule(from source.FileID, name string) (source.FileID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fromName, ok := l.names[from]
	if !ok {
		return 0, fmt.Errorf("%w: file %d was not loaded from the project tree", ErrModuleNotFound, from)
	}
	cands := ModuleCandidates(fromName, name)
	for _, cand := range cands {
		if id, ok := l.byName[cand]; ok {
			return id, nil
		}
		info, err := fs.Stat(l.fsys, cand)
		if errors.Is(err, fs.ErrNotExist) {
			l.missed[cand] = struct{}{}
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", cand, err)
		}
		if info.IsDir() {
			l.missed[cand] = struct{}{}
			continue
		}
		return l.load(cand)
	}
	return 0, fmt.Errorf("%w: tried %s", ErrModuleNotFound, strings.Join(cands, ", "))
}

// Missed returns, sorted, the module candidates that were looked up and
// did not exist as files. Creating one of them can change the module tree.
// Paths are OS paths when the loader is rooted at a directory.
func (l *Loader) Missed() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.missed))
	for cand := range l.missed {
		if l.dir != "" {
			cand = filepath.Join(l.dir, filepath.FromSlash(cand))
		}
		out = append(out, cand)
	}
	slices.Sort(out)
	return out
}

// ModuleCandidates lists the files `mod name;` may live in, in lookup
// order. main.dn and mod.dn own their directory; any other foo.dn owns
// the directory foo/ next to it.
func ModuleCandidates(from, name string) []string {
	dir := path.Dir(from)
	if base := strings.TrimSuffix(path.Base(from), SourceExt); base != "main" && base != "mod" {
		dir = path.Join(dir, base)
	}
	return []string{
		path.Join(dir, name+SourceExt),
		path.Join(dir, name, "mod"+SourceExt),
	}
}
