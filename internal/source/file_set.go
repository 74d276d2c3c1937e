package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/zeebo/xxh3"
)

// FileSet owns the files of one analysis. Adding the same path twice keeps
// both versions; GetLatest returns the newer one.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

// NewFileSetWithBase is NewFileSet followed by SetBaseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	s := NewFileSet()
	s.SetBaseDir(baseDir)
	return s
}

// SetBaseDir sets the directory relative paths are rendered against.
func (s *FileSet) SetBaseDir(dir string) { s.baseDir = dir }

// BaseDir falls back to the working directory when unset.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores content as is under a fresh ID.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id, key := FileID(n), normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    xxh3.Hash(content),
		Flags:   flags,
	})
	s.latest[key] = id
	return id
}

// AddVirtual adds an in-memory file flagged FileVirtual.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Load reads path from disk and normalizes it.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return s.addRaw(path, raw), nil
}

// LoadFS reads name from fsys. The stored path is root joined with name so
// diagnostics point at the real location.
func (s *FileSet) LoadFS(fsys fs.FS, root, name string) (FileID, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return 0, err
	}
	if root != "" {
		name = filepath.Join(root, filepath.FromSlash(name))
	}
	return s.addRaw(name, raw), nil
}

func (s *FileSet) addRaw(path string, raw []byte) FileID {
	content, flags := normalize(raw)
	return s.Add(path, content, flags)
}

// Fingerprint is the Hash raw would get once loaded.
func Fingerprint(raw []byte) uint64 {
	content, _ := normalize(raw)
	return xxh3.Hash(content)
}

// Get panics on an unknown ID.
func (s *FileSet) Get(id FileID) *File { return &s.files[id] }

func (s *FileSet) Len() int { return len(s.files) }

// Files returns every stored file in ID order.
func (s *FileSet) Files() []File { return s.files }

func (s *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := s.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts both ends of span to line and column.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := s.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}
