package symbols

import (
	"fmt"

	"danube/internal/source"
)

// Hints provide optional capacity suggestions for the environment arenas.
type Hints struct{ Scopes, Nodes uint }

// Env owns every scope and definition node of one compilation unit.
//
// Collection is single-writer: AddScope, AddDefinition and AddImport must not
// be called concurrently. After Freeze the graph is immutable and Resolve may
// be called from any number of goroutines.
type Env[D any] struct {
	scopes arena[Scope]
	nodes  arena[Node[D]]
	frozen bool
}

// NewEnv builds an empty environment.
func NewEnv[D any](h Hints) *Env[D] {
	return &Env[D]{
		scopes: newArena[Scope](h.Scopes),
		nodes:  newArena[Node[D]](h.Nodes),
	}
}

// AddScope creates an empty scope under parent (NoScopeID for a root).
func (e *Env[D]) AddScope(kind RibKind, parent ScopeID, span source.Span) ScopeID {
	e.mustBeOpen("AddScope")
	if parent.IsValid() && e.scopes.get(uint32(parent)) == nil {
		panic("symbols: AddScope with unknown parent scope")
	}
	id := ScopeID(e.scopes.push(Scope{
		Kind:   kind,
		Parent: parent,
		Span:   span,
	}))
	if parent.IsValid() {
		p := e.scopes.get(uint32(parent))
		p.Children = append(p.Children, id)
	}
	return id
}

// AddDefinition registers name in ns of scope. child, when valid, must
// already exist. A name that is already taken yields a
// *DuplicatedSymbolError and leaves the environment untouched.
func (e *Env[D]) AddDefinition(scope ScopeID, ns Namespace, name source.StringID, def D, child ScopeID) (NodeID, error) {
	e.mustBeOpen("AddDefinition")
	s := e.mustScope(scope)
	if int(ns) >= namespaceCount {
		panic(fmt.Sprintf("symbols: AddDefinition in unknown namespace %d", ns))
	}
	if child.IsValid() && e.scopes.get(uint32(child)) == nil {
		panic("symbols: AddDefinition with unknown child scope")
	}
	if existing, ok := s.Lookup(ns, name); ok {
		return NoNodeID, &DuplicatedSymbolError{
			Scope:     scope,
			Namespace: ns,
			Name:      name,
			Existing:  existing,
		}
	}

	id := NodeID(e.nodes.push(Node[D]{
		Scope:     scope,
		Namespace: ns,
		Name:      name,
		Def:       def,
		Child:     child,
	}))
	if s.Names[ns] == nil {
		s.Names[ns] = make(map[source.StringID]NodeID)
	}
	s.Names[ns][name] = id
	s.Nodes = append(s.Nodes, id)
	return id, nil
}

// AddImport appends imp to scope's import list. Order is preserved and
// observable by Resolve.
func (e *Env[D]) AddImport(scope ScopeID, imp Import) {
	e.mustBeOpen("AddImport")
	s := e.mustScope(scope)
	s.Imports = append(s.Imports, imp)
}

// Lookup consults only the local table of scope.
func (e *Env[D]) Lookup(scope ScopeID, ns Namespace, name source.StringID) (NodeID, bool) {
	return e.scopes.get(uint32(scope)).Lookup(ns, name)
}

// Scope returns the scope or nil for an unknown ID.
func (e *Env[D]) Scope(id ScopeID) *Scope {
	return e.scopes.get(uint32(id))
}

// Node returns the node or nil for an unknown ID.
func (e *Env[D]) Node(id NodeID) *Node[D] {
	return e.nodes.get(uint32(id))
}

// NumScopes reports the number of scopes; valid IDs are 1..NumScopes.
func (e *Env[D]) NumScopes() int { return e.scopes.len() }

// NumNodes reports the number of nodes; valid IDs are 1..NumNodes.
func (e *Env[D]) NumNodes() int { return e.nodes.len() }

// Freeze ends the collection phase. Mutating calls panic afterwards.
func (e *Env[D]) Freeze() { e.frozen = true }

// Frozen reports whether Freeze was called.
func (e *Env[D]) Frozen() bool { return e.frozen }

// Walk visits root and its descendants depth-first in creation order.
// Returning false from fn skips the scope's children.
func (e *Env[D]) Walk(root ScopeID, fn func(id ScopeID, depth int, s *Scope) bool) {
	type item struct {
		id    ScopeID
		depth int
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := e.scopes.get(uint32(cur.id))
		if s == nil || !fn(cur.id, cur.depth, s) {
			continue
		}
		for i := len(s.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{s.Children[i], cur.depth + 1})
		}
	}
}

func (e *Env[D]) mustBeOpen(op string) {
	if e.frozen {
		panic("symbols: " + op + " on a frozen environment")
	}
}

func (e *Env[D]) mustScope(id ScopeID) *Scope {
	s := e.scopes.get(uint32(id))
	if s == nil {
		panic("symbols: unknown scope")
	}
	return s
}
