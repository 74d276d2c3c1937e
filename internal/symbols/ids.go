package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// ScopeID identifies a scope in the environment arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// NodeID identifies a registered definition in the environment arena.
type NodeID uint32

const (
	// NoNodeID marks the absence of a node reference.
	NoNodeID NodeID = 0
)

// IsValid reports whether the node ID refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

func toScopeID(index int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](index)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope id overflow: %w", err)
	}
	return ScopeID(value), nil
}

func toNodeID(index int) (NodeID, error) {
	value, err := safecast.Conv[uint32](index)
	if err != nil {
		return NoNodeID, fmt.Errorf("node id overflow: %w", err)
	}
	return NodeID(value), nil
}
