package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/token"
)

// parseConst: `const NAME: T = expr;` / `static mut NAME: T = expr;`.
// The leading keyword is already consumed. In traits the value is optional.
func (p *Parser) parseConst(kind ast.ItemKind, h ast.ItemHeader) (ast.ItemID, bool) {
	var c ast.ConstItem
	if kind == ast.ItemStatic {
		c.Mutable = p.eat(token.KwMut)
	}
	h.Name, h.NameSpan = p.optionalName()
	if p.eat(token.Colon) {
		c.Type = p.parseType()
	} else {
		p.err(diag.SynExpectType, "expected ':' and a type")
	}
	if p.eat(token.Assign) {
		c.HasValue = true
		p.skipExpr(token.Semicolon)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+kind.String()); !ok {
		return ast.NoItemID, false
	}
	p.finishItem(&h)
	return p.arenas.Items.NewConst(kind, h, c), true
}

// parseTypeAlias: `type Name<G>: Bounds where .. = Type;`.
func (p *Parser) parseTypeAlias(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // type
	h.Name, h.NameSpan = p.optionalName()

	var alias ast.TypeAliasItem
	alias.Generics = p.parseGenericParams()
	if p.eat(token.Colon) {
		alias.Bounds = p.parseBounds()
	}
	p.parseWhereClause()
	if p.eat(token.Assign) {
		alias.Type = p.parseType()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias"); !ok {
		return ast.NoItemID, false
	}
	p.finishItem(&h)
	return p.arenas.Items.NewTypeAlias(h, alias), true
}
