package symbols

import (
	"slices"

	"danube/internal/source"
)

// chain is the set of scopes whose imports are being followed on the
// current branch. It is immutable: extending it shares the tail.
type chain struct {
	scope ScopeID
	next  *chain
}

func (c *chain) with(id ScopeID) *chain { return &chain{scope: id, next: c} }

func (c *chain) contains(id ScopeID) bool {
	for ; c != nil; c = c.next {
		if c.scope == id {
			return true
		}
	}
	return false
}

// frame is one pending (scope, path) visit, or, when emit is valid, a
// result to record at this point of the walk.
type frame struct {
	scope ScopeID
	path  []source.StringID
	chain *chain
	emit  NodeID
}

// Resolve returns every definition reachable from scope by path in ns,
// de-duplicated by node and in discovery order. An empty path yields nil.
func (e *Env[D]) Resolve(scope ScopeID, ns Namespace, path []source.StringID) []D {
	ids := e.ResolveNodes(scope, ns, path)
	if len(ids) == 0 {
		return nil
	}
	out := make([]D, len(ids))
	for i, id := range ids {
		out[i] = e.nodes.get(uint32(id)).Def
	}
	return out
}

// ResolveNodes is Resolve returning node handles.
//
// A visit to (scope, path) explores, in this order: the local table, each
// import in declaration order, then the parent scope. Every branch runs and
// all hits are unioned. Following an import puts the importing scope on the
// branch's chain; a visit to a scope already on its chain is dropped, which
// bounds glob and re-export cycles.
func (e *Env[D]) ResolveNodes(scope ScopeID, ns Namespace, path []source.StringID) []NodeID {
	if len(path) == 0 || int(ns) >= namespaceCount {
		return nil
	}
	var (
		out   []NodeID
		seen  = make(map[NodeID]struct{})
		stack = []frame{{scope: scope, path: path}}
	)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.emit.IsValid() {
			if _, dup := seen[f.emit]; !dup {
				seen[f.emit] = struct{}{}
				out = append(out, f.emit)
			}
			continue
		}
		s := e.scopes.get(uint32(f.scope))
		if s == nil || len(f.path) == 0 || f.chain.contains(f.scope) {
			continue
		}
		// Frames are pushed in reverse so they pop in walk order.
		stack = e.expand(stack, f, s, ns)
	}
	return out
}

func (e *Env[D]) expand(stack []frame, f frame, s *Scope, ns Namespace) []frame {
	head, rest := f.path[0], f.path[1:]
	var pending []frame

	// local
	if id, ok := s.Lookup(ns, head); ok {
		if len(rest) == 0 {
			pending = append(pending, frame{emit: id})
		} else if child := e.nodes.get(uint32(id)).Child; child.IsValid() {
			pending = append(pending, frame{scope: child, path: rest, chain: f.chain})
		}
	}

	// imports
	for i := range s.Imports {
		imp := &s.Imports[i]
		if len(imp.Path) == 0 {
			continue
		}
		var tail []source.StringID
		switch imp.Kind {
		case ImportGlob:
			tail = f.path
		default:
			if imp.Binding() != head {
				continue
			}
			tail = rest
		}
		target, ok := s.Lookup(ns, imp.Path[0])
		if !ok {
			continue
		}
		if imp.Kind != ImportGlob && len(imp.Path) == 1 && len(rest) == 0 {
			pending = append(pending, frame{emit: target})
		}
		next := concat(imp.Path[1:], tail)
		if child := e.nodes.get(uint32(target)).Child; child.IsValid() && len(next) > 0 {
			pending = append(pending, frame{scope: child, path: next, chain: f.chain.with(f.scope)})
		}
	}

	// parent
	if s.Parent.IsValid() {
		pending = append(pending, frame{scope: s.Parent, path: f.path, chain: f.chain})
	}

	for i := len(pending) - 1; i >= 0; i-- {
		stack = append(stack, pending[i])
	}
	return stack
}

func concat(a, b []source.StringID) []source.StringID {
	if len(a) == 0 {
		return b
	}
	return append(slices.Clip(a), b...)
}
