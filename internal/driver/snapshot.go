package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"danube/internal/collect"
	"danube/internal/source"
	"danube/internal/symbols"
)

// Snapshot is the serialised scope graph of an analysis.
type Snapshot = symbols.Snapshot[collect.Definition]

// Restored is a scope graph loaded back from a Snapshot.
type Restored struct {
	Env     *collect.Env
	Strings *source.Interner
	Root    symbols.ScopeID
	Files   []symbols.FileFingerprint
}

// TakeSnapshot captures the frozen graph of res, the sources and manifest
// it was built from, and the module candidates it did not find.
func TakeSnapshot(res *Result) *Snapshot {
	snap := symbols.TakeSnapshot(res.Program.Env, res.Program.Strings, res.Files())
	if res.Manifest.Path != "" {
		snap.Files = append(snap.Files, res.Manifest)
	}
	snap.Missing = slices.Clone(res.Missing)
	return snap
}

// WriteSnapshot encodes the graph of res to w.
func WriteSnapshot(w io.Writer, res *Result) error {
	return symbols.EncodeSnapshot(w, TakeSnapshot(res))
}

// ReadSnapshot decodes and restores a graph written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Restored, error) {
	snap, err := symbols.DecodeSnapshot[collect.Definition](r)
	if err != nil {
		return nil, err
	}
	return Restore(snap)
}

// Restore rebuilds the graph held by snap.
func Restore(snap *Snapshot) (*Restored, error) {
	env, strs, err := snap.Restore()
	if err != nil {
		return nil, err
	}
	root, ok := crateRoot(env)
	if !ok {
		return nil, fmt.Errorf("%w: no crate root below the prelude", symbols.ErrSnapshotCorrupt)
	}
	return &Restored{Env: env, Strings: strs, Root: root, Files: snap.Files}, nil
}

// crateRoot is the first module scope whose parent is the prelude.
func crateRoot(env *collect.Env) (symbols.ScopeID, bool) {
	for i := 1; i <= env.NumScopes(); i++ {
		id := symbols.ScopeID(i)
		s := env.Scope(id)
		if s.Kind != symbols.RibModule || !s.Parent.IsValid() {
			continue
		}
		if env.Scope(s.Parent).Kind == symbols.RibPrelude {
			return id, true
		}
	}
	return symbols.NoScopeID, false
}

// Changed lists what makes snap out of date on disk: fingerprinted files
// that changed or vanished, and missed module candidates that now exist.
func Changed(snap *Snapshot) ([]string, error) {
	stale, err := StaleFiles(snap.Files, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range snap.Missing {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			stale = append(stale, p)
		}
	}
	return stale, nil
}

// StaleFiles lists the fingerprinted files whose content changed or that
// can no longer be read. A nil readFile reads from the OS.
func StaleFiles(files []symbols.FileFingerprint, readFile func(string) ([]byte, error)) ([]string, error) {
	if readFile == nil {
		readFile = os.ReadFile
	}
	var stale []string
	for _, f := range files {
		data, err := readFile(f.Path)
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, f.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", f.Path, err)
		}
		if source.Fingerprint(data) != f.Hash {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}
