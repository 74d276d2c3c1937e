package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/token"
)

// parseGenericParams parses an optional `<'a, T: Bound = Default, const N: usize>`.
func (p *Parser) parseGenericParams() []ast.GenericParamID {
	if !p.eat(token.Lt) {
		return nil
	}
	var params []ast.GenericParamID
	for !p.atOr(token.Gt, token.EOF) {
		p.skipAttributes()
		param, ok := p.parseGenericParam()
		if ok {
			params = append(params, p.arenas.Items.NewGenericParam(param))
		} else {
			p.skipUntil(token.Comma, token.Gt)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic parameters")
	return params
}

func (p *Parser) parseGenericParam() (ast.GenericParam, bool) {
	start := p.lx.Peek().Span
	var gp ast.GenericParam

	switch {
	case p.at(token.Lifetime):
		tok := p.advance()
		gp.Kind = ast.GenericLifetime
		gp.Name, gp.NameSpan = p.intern(tok), tok.Span
		if p.eat(token.Colon) {
			// 'a: 'b + 'c
			for p.eat(token.Lifetime) {
				if !p.eat(token.Plus) {
					break
				}
			}
		}
	case p.eat(token.KwConst):
		gp.Kind = ast.GenericConst
		name, span, ok := p.parseIdent("const parameter name")
		if !ok {
			return gp, false
		}
		gp.Name, gp.NameSpan = name, span
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after const parameter"); !ok {
			return gp, false
		}
		gp.ConstType = p.parseType()
		if p.eat(token.Assign) {
			p.skipUntil(token.Comma, token.Gt)
		}
	default:
		gp.Kind = ast.GenericType
		name, span, ok := p.parseIdent("type parameter name")
		if !ok {
			return gp, false
		}
		gp.Name, gp.NameSpan = name, span
		if p.eat(token.Colon) {
			gp.Bounds = p.parseBounds()
		}
		if p.eat(token.Assign) {
			gp.Default = p.parseType()
		}
	}
	gp.Span = start.Cover(p.lastSpan)
	return gp, true
}

// parseBounds parses `A + ?Sized + 'a + for<'b> Fn(&'b T)`. Lifetimes are
// dropped, every trait bound becomes a path type.
func (p *Parser) parseBounds() []ast.TypeID {
	var bounds []ast.TypeID
	for {
		switch {
		case p.eat(token.Lifetime):
		case p.at(token.LParen):
			// (Trait)
			p.advance()
			if b := p.parseBound(); b.IsValid() {
				bounds = append(bounds, b)
			}
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after bound")
		case p.at(token.Question), p.at(token.KwFor), p.at(token.ColonColon), p.lx.Peek().IsPathSegment():
			if b := p.parseBound(); b.IsValid() {
				bounds = append(bounds, b)
			}
		default:
			return bounds
		}
		if !p.eat(token.Plus) {
			return bounds
		}
	}
}

func (p *Parser) parseBound() ast.TypeID {
	p.eat(token.Question)
	if p.eat(token.KwFor) {
		p.skipHigherRanked()
	}
	return p.parsePathType()
}

// skipHigherRanked drops the `<'a, 'b>` of a `for<...>` binder.
func (p *Parser) skipHigherRanked() {
	if !p.eat(token.Lt) {
		return
	}
	for !p.atOr(token.Gt, token.EOF) {
		if !p.eat(token.Lifetime) {
			p.err(diag.SynUnexpectedToken, "expected lifetime in 'for<...>'")
			p.skipUntil(token.Gt)
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>'")
}

// parseWhereClause consumes `where T: A + B, 'a: 'b, <T as X>::Y: Z` and
// discards it: predicates register nothing.
func (p *Parser) parseWhereClause() {
	if !p.eat(token.KwWhere) {
		return
	}
	for !p.atOr(token.LBrace, token.Semicolon, token.Assign, token.EOF) {
		switch {
		case p.at(token.Lifetime):
			p.advance()
		case p.at(token.KwFor):
			p.advance()
			p.skipHigherRanked()
			p.parseType()
		default:
			if !p.parseType().IsValid() {
				p.skipUntil(token.Comma, token.LBrace, token.Semicolon)
			}
		}
		if p.eat(token.Colon) {
			for p.eat(token.Lifetime) {
				if !p.eat(token.Plus) {
					break
				}
			}
			if !p.atOr(token.Comma, token.LBrace, token.Semicolon) {
				p.parseBounds()
			}
		}
		if !p.eat(token.Comma) {
			return
		}
	}
}
