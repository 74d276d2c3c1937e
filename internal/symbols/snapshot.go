package symbols

import (
	"fmt"
	"io"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"danube/internal/source"
)

// Current schema version - increment when Snapshot format changes
const snapshotSchema uint16 = 2

const snapshotMagic = "danube-scopes"

// Snapshot is the serialisable form of a frozen environment: its scopes,
// nodes and imports, the interned strings they refer to, and the
// fingerprints of the sources it was built from. Missing lists files whose
// absence the graph depends on.
type Snapshot[D any] struct {
	Schema  uint16
	Strings []string
	Files   []FileFingerprint
	Missing []string
	Scopes  []ScopeRecord
	Nodes   []Node[D]
}

// FileFingerprint pins a source file by path and xxh3 content hash.
type FileFingerprint struct {
	Path string
	Hash uint64
}

// ScopeRecord is a Scope without its derived indexes.
type ScopeRecord struct {
	Kind    RibKind
	Parent  ScopeID
	Span    source.Span
	Imports []Import
}

type envelope struct {
	Magic  string
	Schema uint16
	Sum    uint64
	Body   []byte
}

// TakeSnapshot copies env into a Snapshot. Scope and node IDs are preserved.
func TakeSnapshot[D any](env *Env[D], strs *source.Interner, files []source.File) *Snapshot[D] {
	snap := &Snapshot[D]{
		Schema:  snapshotSchema,
		Strings: strs.Snapshot(),
		Files:   make([]FileFingerprint, 0, len(files)),
		Scopes:  make([]ScopeRecord, 0, env.scopes.len()),
		Nodes:   make([]Node[D], 0, env.nodes.len()),
	}
	for _, f := range files {
		snap.Files = append(snap.Files, FileFingerprint{Path: f.Path, Hash: f.Hash})
	}
	for _, s := range env.scopes.data[1:] {
		snap.Scopes = append(snap.Scopes, ScopeRecord{
			Kind:    s.Kind,
			Parent:  s.Parent,
			Span:    s.Span,
			Imports: s.Imports,
		})
	}
	snap.Nodes = append(snap.Nodes, env.nodes.data[1:]...)
	return snap
}

// Restore rebuilds a frozen environment and its interner from the snapshot.
func (s *Snapshot[D]) Restore() (*Env[D], *source.Interner, error) {
	if s.Schema != snapshotSchema {
		return nil, nil, fmt.Errorf("%w: schema %d, want %d", ErrSnapshotCorrupt, s.Schema, snapshotSchema)
	}
	if len(s.Strings) == 0 || s.Strings[0] != "" {
		return nil, nil, fmt.Errorf("%w: string table lacks the empty entry", ErrSnapshotCorrupt)
	}
	strs := source.NewInternerFrom(s.Strings)
	if strs.Len() != len(s.Strings) {
		return nil, nil, fmt.Errorf("%w: string table has duplicates", ErrSnapshotCorrupt)
	}

	unknown := func(id source.StringID) bool { return int(id) >= len(s.Strings) }

	env := NewEnv[D](Hints{Scopes: uint(len(s.Scopes)), Nodes: uint(len(s.Nodes))})
	for i, rec := range s.Scopes {
		if rec.Parent.IsValid() && int(rec.Parent) > i {
			return nil, nil, fmt.Errorf("%w: scope %d has forward parent %d", ErrSnapshotCorrupt, i+1, rec.Parent)
		}
		for _, imp := range rec.Imports {
			if unknown(imp.Alias) || slices.ContainsFunc(imp.Path, unknown) {
				return nil, nil, fmt.Errorf("%w: scope %d imports an unknown string", ErrSnapshotCorrupt, i+1)
			}
		}
		id := env.AddScope(rec.Kind, rec.Parent, rec.Span)
		for _, imp := range rec.Imports {
			env.AddImport(id, imp)
		}
	}
	for i, n := range s.Nodes {
		if !n.Scope.IsValid() || int(n.Scope) > len(s.Scopes) || int(n.Child) > len(s.Scopes) {
			return nil, nil, fmt.Errorf("%w: node %d refers to unknown scope", ErrSnapshotCorrupt, i+1)
		}
		if int(n.Namespace) >= namespaceCount {
			return nil, nil, fmt.Errorf("%w: node %d has unknown namespace %d", ErrSnapshotCorrupt, i+1, n.Namespace)
		}
		if unknown(n.Name) {
			return nil, nil, fmt.Errorf("%w: node %d has unknown name %d", ErrSnapshotCorrupt, i+1, n.Name)
		}
		if _, err := env.AddDefinition(n.Scope, n.Namespace, n.Name, n.Def, n.Child); err != nil {
			return nil, nil, fmt.Errorf("%w: node %d: %w", ErrSnapshotCorrupt, i+1, err)
		}
	}
	env.Freeze()
	return env, strs, nil
}

// EncodeSnapshot writes snap as msgpack wrapped in a checksummed envelope.
func EncodeSnapshot[D any](w io.Writer, snap *Snapshot[D]) error {
	body, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&envelope{
		Magic:  snapshotMagic,
		Schema: snapshotSchema,
		Sum:    xxh3.Hash(body),
		Body:   body,
	})
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot. A wrong magic,
// schema or checksum yields an error wrapping ErrSnapshotCorrupt.
func DecodeSnapshot[D any](r io.Reader) (*Snapshot[D], error) {
	var env envelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Magic != snapshotMagic || env.Schema != snapshotSchema {
		return nil, fmt.Errorf("%w: header %q schema %d", ErrSnapshotCorrupt, env.Magic, env.Schema)
	}
	if xxh3.Hash(env.Body) != env.Sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotCorrupt)
	}
	snap := new(Snapshot[D])
	if err := msgpack.Unmarshal(env.Body, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot body: %w", err)
	}
	return snap, nil
}
