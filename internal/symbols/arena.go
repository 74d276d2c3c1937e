package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// arena is an append-only slice with index 0 reserved for the "none" handle.
type arena[T any] struct {
	data []T
}

func newArena[T any](capacity uint) arena[T] {
	if capacity == 0 {
		capacity = 32
	}
	return arena[T]{data: make([]T, 1, capacity+1)}
}

func (a *arena[T]) push(value T) uint32 {
	index, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	a.data = append(a.data, value)
	return index
}

func (a *arena[T]) get(index uint32) *T {
	if index == 0 || int(index) >= len(a.data) {
		return nil
	}
	return &a.data[index]
}

// len reports the number of stored values excluding the sentinel.
func (a *arena[T]) len() int { return len(a.data) - 1 }
