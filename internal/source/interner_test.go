package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	in := NewInterner()

	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q, %v", s, ok)
	}
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string interned as %d", id)
	}
	a := in.Intern("foo")
	if a == NoStringID {
		t.Fatalf("non-empty string got NoStringID")
	}
	if b := in.Intern("foo"); b != a {
		t.Fatalf("Intern not idempotent: %d != %d", a, b)
	}
	if id, ok := in.Find("foo"); !ok || id != a {
		t.Fatalf("Find = %d,%v", id, ok)
	}
	if _, ok := in.Find("bar"); ok {
		t.Fatalf("Find must not insert")
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	in := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	in.MustLookup(StringID(42))
}

func TestInternerSnapshotRoundTrip(t *testing.T) {
	in := NewInterner()
	ids := []StringID{in.Intern("a"), in.Intern("b"), in.Intern("c")}
	back := NewInternerFrom(in.Snapshot())
	for _, id := range ids {
		if in.MustLookup(id) != back.MustLookup(id) {
			t.Fatalf("id %d changed meaning", id)
		}
	}
}

func TestInternerConcurrentIntern(t *testing.T) {
	in := NewInterner()
	const workers, strs = 16, 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range strs {
				in.Intern(fmt.Sprintf("s%d", i))
			}
		}()
	}
	wg.Wait()

	if in.Len() != strs+1 {
		t.Fatalf("Len = %d, want %d", in.Len(), strs+1)
	}
}
