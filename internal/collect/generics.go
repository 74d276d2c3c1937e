package collect

import (
	"danube/internal/ast"
	"danube/internal/source"
	"danube/internal/symbols"
)

// collectGenerics registers type parameters (Type) and const parameters
// (Value) in the current scope. Lifetimes are not names in either
// namespace.
func (c *Collector) collectGenerics(params []ast.GenericParamID) {
	for _, id := range params {
		gp := c.items().GenericParam(id)
		if gp == nil || gp.Kind == ast.GenericLifetime {
			continue
		}
		if gp.Name == source.NoStringID {
			c.malformed(gp.Span, "generic parameter without a name")
			continue
		}
		def := Definition{
			Kind: DefTypeParam,
			Name: gp.Name,
			File: c.file,
			Span: nameSpan(gp.NameSpan, gp.Span),
		}
		ns := symbols.TypeNS
		if gp.Kind == ast.GenericConst {
			def.Kind = DefConstParam
			ns = symbols.ValueNS
		}
		c.define(ns, gp.Name, def, symbols.RibInvalid, gp.Span)
		for _, b := range gp.Bounds {
			c.recordType(b)
		}
		c.recordType(gp.ConstType)
		c.recordType(gp.Default)
	}
}

// recordType remembers every plain path inside the type expression id,
// bound to the current scope. Qualified paths are projections and only
// their inner types are recorded.
func (c *Collector) recordType(id ast.TypeID) {
	if !id.IsValid() {
		return
	}
	scope := c.current()
	c.arenas.Types.Walk(id, func(_ ast.TypeID, expr *ast.TypeExpr) {
		if expr.Kind != ast.TypeExprPath || expr.Qualified || len(expr.Path) == 0 {
			return
		}
		path := make([]source.StringID, len(expr.Path))
		for i, seg := range expr.Path {
			path[i] = seg.Name
		}
		c.uses = append(c.uses, PathUse{
			Scope:     scope,
			Namespace: symbols.TypeNS,
			Path:      path,
			Span:      expr.Span,
		})
	})
}
