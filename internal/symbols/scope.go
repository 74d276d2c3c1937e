package symbols

import (
	"danube/internal/source"
)

// RibKind records why a scope was created. It does not affect resolution.
type RibKind uint8

const (
	RibInvalid RibKind = iota
	RibModule
	RibStruct
	RibEnum
	RibConstructor
	RibTrait
	RibImplement
	RibFunction
	RibBlock
	RibTypeAlias
	RibPrelude // builtin names, parent of every crate root
)

func (k RibKind) String() string {
	switch k {
	case RibModule:
		return "module"
	case RibStruct:
		return "struct"
	case RibEnum:
		return "enum"
	case RibConstructor:
		return "constructor"
	case RibTrait:
		return "trait"
	case RibImplement:
		return "impl"
	case RibFunction:
		return "function"
	case RibBlock:
		return "block"
	case RibTypeAlias:
		return "type alias"
	case RibPrelude:
		return "prelude"
	default:
		return "invalid"
	}
}

// Scope is one lexical container of names. Names holds one table per
// Namespace; Nodes lists the same entries in registration order.
type Scope struct {
	Kind     RibKind
	Parent   ScopeID
	Span     source.Span
	Names    [namespaceCount]map[source.StringID]NodeID
	Nodes    []NodeID
	Imports  []Import
	Children []ScopeID
}

// Lookup returns the node registered for name in ns, local table only.
func (s *Scope) Lookup(ns Namespace, name source.StringID) (NodeID, bool) {
	if s == nil || int(ns) >= namespaceCount {
		return NoNodeID, false
	}
	id, ok := s.Names[ns][name]
	return id, ok
}
