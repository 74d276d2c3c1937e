package symbols

import "danube/internal/source"

// Node is one registered definition. Def is opaque to the environment.
// Child, when valid, is the scope "inside" the definition (a module body,
// a struct's fields and parameters).
type Node[D any] struct {
	Scope     ScopeID
	Namespace Namespace
	Name      source.StringID
	Def       D
	Child     ScopeID
}
