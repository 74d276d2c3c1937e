package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/token"
)

// parseTrait: `trait Name<G>: Super + Bounds where .. { items }`.
func (p *Parser) parseTrait(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // trait
	h.Name, h.NameSpan = p.optionalName()

	var tr ast.TraitItem
	tr.Generics = p.parseGenericParams()
	if p.eat(token.Colon) {
		tr.Supertraits = p.parseBounds()
	}
	p.parseWhereClause()
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected trait body")
		return ast.NoItemID, false
	}
	tr.Items, tr.BodySpan, _ = p.parseItemBlock()
	p.finishItem(&h)
	return p.arenas.Items.NewTrait(h, tr), true
}

// parseImpl: `impl<G> Type where .. { items }` or `impl<G> !?Trait for Type where .. { items }`.
func (p *Parser) parseImpl(h ast.ItemHeader) (ast.ItemID, bool) {
	kw := p.advance() // impl
	h.NameSpan = kw.Span

	var im ast.ImplItem
	im.Generics = p.parseGenericParams()
	p.eat(token.Bang) // negative impl
	first := p.parseType()
	if !first.IsValid() {
		return ast.NoItemID, false
	}
	if p.eat(token.KwFor) {
		im.Trait = first
		im.SelfType = p.parseType()
		if !im.SelfType.IsValid() {
			return ast.NoItemID, false
		}
	} else {
		im.SelfType = first
	}
	p.parseWhereClause()
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected impl body")
		return ast.NoItemID, false
	}
	im.Items, im.BodySpan, _ = p.parseItemBlock()
	p.finishItem(&h)
	return p.arenas.Items.NewImpl(h, im), true
}
