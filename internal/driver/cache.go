package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"danube/internal/collect"
	"danube/internal/symbols"
)

// SnapshotCache хранит снапшоты графа областей видимости на диске,
// по одному на точку входа. Thread-safe for concurrent access.
type SnapshotCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenSnapshotCache opens the cache under $XDG_CACHE_HOME/app (or
// ~/.cache/app), creating it if needed.
func OpenSnapshotCache(app string) (*SnapshotCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewSnapshotCache(filepath.Join(base, app))
}

// NewSnapshotCache opens a cache rooted at dir.
func NewSnapshotCache(dir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotCache{dir: dir}, nil
}

// CacheKey identifies the analysis of one entry file.
func CacheKey(in Input) uint64 {
	return xxh3.HashString(filepath.Join(in.Dir, filepath.FromSlash(in.Entry)))
}

func (c *SnapshotCache) pathFor(key uint64) string {
	// подкаталог "scopes" - для удобства очистки
	return filepath.Join(c.dir, "scopes", strconv.FormatUint(key, 16)+".mp")
}

// Put writes snap under key, replacing any previous entry atomically.
func (c *SnapshotCache) Put(key uint64, snap *Snapshot) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := symbols.EncodeSnapshot(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry is (nil, false, nil); an
// entry whose sources changed, or whose missing modules appeared, since it
// was written is dropped and reported as missing.
func (c *SnapshotCache) Get(key uint64) (*Snapshot, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	snap, err := c.read(key)
	c.mu.RUnlock()
	if err != nil || snap == nil {
		return nil, false, err
	}

	stale, err := Changed(snap)
	if err != nil {
		return nil, false, err
	}
	if len(stale) > 0 {
		return nil, false, c.Drop(key)
	}
	return snap, true, nil
}

func (c *SnapshotCache) read(key uint64) (*Snapshot, error) {
	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	snap, err := symbols.DecodeSnapshot[collect.Definition](f)
	if errors.Is(err, symbols.ErrSnapshotCorrupt) {
		// старый формат: считаем промахом
		return nil, nil
	}
	return snap, err
}

// Drop removes the entry for key, if any.
func (c *SnapshotCache) Drop(key uint64) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("drop cache entry: %w", err)
	}
	return nil
}

// DropAll invalidates the whole cache.
func (c *SnapshotCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "scopes"))
}
