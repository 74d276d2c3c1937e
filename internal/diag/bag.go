package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"

	"danube/internal/source"
)

// Bag collects diagnostics up to a fixed cap.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func clampCap(n int) uint16 {
	v, err := safecast.Conv[uint16](n)
	if err != nil {
		return math.MaxUint16
	}
	return v
}

// NewBag creates a bag holding at most max diagnostics.
func NewBag(max int) *Bag {
	c := clampCap(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(c), 64)), max: c}
}

// Add возвращает false, если лимит исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if b.Len() >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Items is the bag's backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

// Merge appends other, raising the cap to fit both.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, clampCap(b.Len()+other.Len()))
	room := int(b.max) - b.Len()
	b.items = append(b.items, other.items[:min(room, other.Len())]...)
}

// Sort orders by file, start, end, then severity descending, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic per code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
