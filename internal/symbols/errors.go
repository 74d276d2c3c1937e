package symbols

import (
	"errors"
	"fmt"

	"danube/internal/source"
)

var (
	// ErrDuplicatedSymbol is wrapped by every DuplicatedSymbolError.
	ErrDuplicatedSymbol = errors.New("duplicated symbol")
	// ErrSnapshotCorrupt reports a snapshot whose checksum or schema does not match.
	ErrSnapshotCorrupt = errors.New("corrupt snapshot")
)

// DuplicatedSymbolError is returned by AddDefinition when (Namespace, Name)
// is already taken in Scope. Existing is the node that keeps the name.
type DuplicatedSymbolError struct {
	Scope     ScopeID
	Namespace Namespace
	Name      source.StringID
	Existing  NodeID
}

func (e *DuplicatedSymbolError) Error() string {
	return fmt.Sprintf("%v: symbol %d in %s namespace of scope %d (node %d)",
		ErrDuplicatedSymbol, e.Name, e.Namespace, e.Scope, e.Existing)
}

func (e *DuplicatedSymbolError) Unwrap() error { return ErrDuplicatedSymbol }
