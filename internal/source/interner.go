package source

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// StringID is an interned identifier. Two equal strings always share one ID.
type StringID uint32

// NoStringID is reserved for the empty string. Scopes use it as the key of
// anonymous entries, so it never collides with a real identifier.
const NoStringID StringID = 0

// Interner maps strings to dense IDs. It is safe for concurrent use: parser
// workers intern identifiers while other files are still being lexed.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // byID[0] = "" для NoStringID
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first sight. The stored copy
// does not alias the caller's buffer.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.Find(s); ok {
		return id
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	owned := strings.Clone(s)
	i.byID = append(i.byID, owned)
	i.index[owned] = StringID(n)
	return StringID(n)
}

// Find returns the ID of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id, or "" and false if id is unknown.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on unknown IDs.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts interned strings including NoStringID, so it is never below 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of all strings ordered by ID.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}

// NewInternerFrom rebuilds an interner from a Snapshot. The first entry must be "".
func NewInternerFrom(strs []string) *Interner {
	in := NewInterner()
	for _, s := range strs {
		if s == "" {
			continue
		}
		in.Intern(s)
	}
	return in
}
