package symbols

import (
	"errors"
	"fmt"
	"slices"

	"danube/internal/source"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (e *Env[D]) Validate() error {
	var errs []error

	// Scopes: kind, parent backlinks, child backlinks.
	for idx := 1; idx < len(e.scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &e.scopes.data[idx]
		if scope.Kind == RibInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			// parents are created first, so a tree has Parent < id
			if scope.Parent >= scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
			} else if !slices.Contains(e.scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(e.scopes.data) || child <= scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if e.scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}

		// Name tables must index exactly the scope's nodes.
		indexed := 0
		for ns := range scope.Names {
			for name, nodeID := range scope.Names[ns] {
				indexed++
				node := e.nodes.get(uint32(nodeID))
				switch {
				case node == nil:
					errs = append(errs, fmt.Errorf("scope %d maps name %d to unknown node %d", scopeID, name, nodeID))
				case node.Scope != scopeID || node.Name != name || int(node.Namespace) != ns:
					errs = append(errs, fmt.Errorf("scope %d name %d maps to node %d registered elsewhere", scopeID, name, nodeID))
				case !slices.Contains(scope.Nodes, nodeID):
					errs = append(errs, fmt.Errorf("scope %d node %d missing from node list", scopeID, nodeID))
				}
			}
		}
		if indexed != len(scope.Nodes) {
			errs = append(errs, fmt.Errorf("scope %d lists %d nodes but indexes %d", scopeID, len(scope.Nodes), indexed))
		}
		for i, imp := range scope.Imports {
			if len(imp.Path) == 0 {
				errs = append(errs, fmt.Errorf("scope %d import %d has empty path", scopeID, i))
			}
			if imp.Kind == ImportAliased && imp.Alias == source.NoStringID {
				errs = append(errs, fmt.Errorf("scope %d import %d is aliased without alias", scopeID, i))
			}
		}
	}

	// Nodes: owner and child scope exist.
	for idx := 1; idx < len(e.nodes.data); idx++ {
		nodeID, err := toNodeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		node := &e.nodes.data[idx]
		owner := e.scopes.get(uint32(node.Scope))
		if owner == nil {
			errs = append(errs, fmt.Errorf("node %d has unknown scope %d", nodeID, node.Scope))
			continue
		}
		if got, ok := owner.Lookup(node.Namespace, node.Name); !ok || got != nodeID {
			errs = append(errs, fmt.Errorf("node %d is not indexed by scope %d", nodeID, node.Scope))
		}
		if node.Child.IsValid() && e.scopes.get(uint32(node.Child)) == nil {
			errs = append(errs, fmt.Errorf("node %d has unknown child scope %d", nodeID, node.Child))
		}
	}

	return errors.Join(errs...)
}
