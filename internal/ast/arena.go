package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind. IDs are 1-based; 0 is the "none" ID
// and Get returns nil for it.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its ID.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	id, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast arena overflow: %w", err))
	}
	return id
}

func (a *Arena[T]) Get(id uint32) *T {
	if id-1 >= uint32(len(a.data)) { // #nosec G115 -- Allocate bounds len to uint32
		return nil
	}
	return &a.data[id-1]
}
