package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/token"
)

// parseMod: `mod name;` or `mod name { items }`.
func (p *Parser) parseMod(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // mod
	h.Name, h.NameSpan = p.optionalName()

	var mod ast.ModItem
	switch {
	case p.eat(token.Semicolon):
	case p.at(token.LBrace):
		mod.Inline = true
		mod.Items, mod.BodySpan, _ = p.parseItemBlock()
	default:
		p.err(diag.SynExpectBody, "expected ';' or '{' after module name")
		return ast.NoItemID, false
	}
	p.finishItem(&h)
	return p.arenas.Items.NewMod(h, mod), true
}

// parseStruct: `struct S<G> where ..;`, `struct S<G> { f: T }`, `struct S<G>(T) where ..;`.
func (p *Parser) parseStruct(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // struct
	h.Name, h.NameSpan = p.optionalName()

	var st ast.StructItem
	st.Generics = p.parseGenericParams()
	p.parseWhereClause()

	switch {
	case p.eat(token.Semicolon):
		st.Shape = ast.FieldsUnit
	case p.at(token.LBrace):
		st.Shape = ast.FieldsNamed
		st.Fields = p.parseNamedFields()
	case p.at(token.LParen):
		st.Shape = ast.FieldsTuple
		st.Fields = p.parseTupleFields()
		p.parseWhereClause()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct")
	default:
		p.err(diag.SynExpectBody, "expected ';', '{' or '(' in struct declaration")
		return ast.NoItemID, false
	}
	p.finishItem(&h)
	return p.arenas.Items.NewStruct(h, st), true
}

// parseNamedFields: `{ vis name: Type, ... }`.
func (p *Parser) parseNamedFields() []ast.FieldID {
	p.advance() // {
	var fields []ast.FieldID
	for !p.atOr(token.RBrace, token.EOF) {
		p.skipAttributes()
		start := p.lx.Peek().Span
		vis := p.parseVisibility()
		name, nameSpan, ok := p.parseIdent("field name")
		if !ok {
			p.skipUntil(token.Comma, token.RBrace)
		} else {
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name")
			ty := p.parseType()
			if !ty.IsValid() {
				p.skipUntil(token.Comma, token.RBrace)
			}
			fields = append(fields, p.arenas.Items.NewField(ast.Field{
				Name:       name,
				NameSpan:   nameSpan,
				Type:       ty,
				Visibility: vis,
				Span:       start.Cover(p.lastSpan),
			}))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close field list")
	return fields
}

// parseTupleFields: `( vis Type, ... )`.
func (p *Parser) parseTupleFields() []ast.FieldID {
	p.advance() // (
	var fields []ast.FieldID
	for !p.atOr(token.RParen, token.EOF) {
		p.skipAttributes()
		start := p.lx.Peek().Span
		vis := p.parseVisibility()
		ty := p.parseType()
		if !ty.IsValid() {
			p.skipUntil(token.Comma, token.RParen)
		}
		fields = append(fields, p.arenas.Items.NewField(ast.Field{
			Type:       ty,
			Visibility: vis,
			Span:       start.Cover(p.lastSpan),
		}))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close field list")
	return fields
}

// parseEnum: `enum E<G> where .. { A, B(T), C { f: T }, D = 1 }`.
func (p *Parser) parseEnum(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // enum
	h.Name, h.NameSpan = p.optionalName()

	var en ast.EnumItem
	en.Generics = p.parseGenericParams()
	p.parseWhereClause()
	if _, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		p.skipAttributes()
		start := p.lx.Peek().Span
		v := ast.Variant{Shape: ast.FieldsUnit}
		var ok bool
		v.Name, v.NameSpan, ok = p.parseIdent("variant name")
		if !ok {
			p.skipUntil(token.Comma, token.RBrace)
		}
		switch {
		case p.at(token.LBrace):
			v.Shape = ast.FieldsNamed
			v.Fields = p.parseNamedFields()
		case p.at(token.LParen):
			v.Shape = ast.FieldsTuple
			v.Fields = p.parseTupleFields()
		}
		if p.eat(token.Assign) {
			v.HasDiscriminant = true
			p.skipUntil(token.Comma, token.RBrace)
		}
		v.Span = start.Cover(p.lastSpan)
		if ok {
			en.Variants = append(en.Variants, p.arenas.Items.NewVariant(v))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum body")
	p.finishItem(&h)
	return p.arenas.Items.NewEnum(h, en), true
}
