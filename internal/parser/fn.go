package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/token"
)

// parseFn: `fn name<G>(params) -> Ret where .. { body }` or `...;` inside traits.
func (p *Parser) parseFn(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // fn
	h.Name, h.NameSpan = p.optionalName()

	var fn ast.FnItem
	fn.Generics = p.parseGenericParams()
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' to start parameter list")
		return ast.NoItemID, false
	}
	fn.Params = p.parseFnParams()
	if p.eat(token.Arrow) {
		fn.ReturnType = p.parseType()
	}
	p.parseWhereClause()

	switch {
	case p.eat(token.Semicolon):
	case p.at(token.LBrace):
		fn.HasBody = true
		fn.BodySpan = p.skipBalanced(token.LBrace, token.RBrace)
	default:
		p.err(diag.SynExpectBody, "expected function body or ';'")
		return ast.NoItemID, false
	}
	p.finishItem(&h)
	return p.arenas.Items.NewFn(h, fn), true
}

func (p *Parser) parseFnParams() []ast.FnParamID {
	p.advance() // (
	var params []ast.FnParamID
	for !p.atOr(token.RParen, token.EOF) {
		p.skipAttributes()
		if param, ok := p.parseFnParam(); ok {
			params = append(params, p.arenas.Items.NewFnParam(param))
		} else {
			p.skipUntil(token.Comma, token.RParen)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list")
	return params
}

// parseFnParam handles the receiver forms (self, &self, &'a mut self,
// mut self, self: T) and `pattern: Type`. Only identifier patterns get a name.
func (p *Parser) parseFnParam() (ast.FnParam, bool) {
	start := p.lx.Peek().Span
	param := ast.FnParam{}

	if p.at(token.Amp) || p.at(token.KwSelf) || p.at(token.KwMut) {
		if recv, ok := p.tryReceiver(start); ok {
			return recv, true
		}
	}

	switch {
	case p.at(token.Ident):
		tok := p.advance()
		param.Name, param.NameSpan = p.intern(tok), tok.Span
	case p.eat(token.Underscore):
	case p.atOr(token.LParen, token.LBracket, token.Amp):
		// destructuring pattern; bindings are not collected
		p.skipUntil(token.Colon, token.Comma, token.RParen)
	default:
		p.err(diag.SynExpectIdentifier, "expected parameter pattern, got "+describe(p.lx.Peek()))
		return param, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after parameter"); !ok {
		return param, false
	}
	param.Type = p.parseType()
	param.Span = start.Cover(p.lastSpan)
	return param, param.Type.IsValid()
}

// tryReceiver consumes a self receiver. `mut x: T` is not a receiver and
// is finished here too, since `mut` has already been eaten.
func (p *Parser) tryReceiver(start source.Span) (ast.FnParam, bool) {
	param := ast.FnParam{}
	if p.eat(token.Amp) {
		p.eat(token.Lifetime)
		p.eat(token.KwMut)
		tok, ok := p.expect(token.KwSelf, diag.SynUnexpectedToken, "expected 'self' after '&'")
		if !ok {
			return param, false
		}
		return p.receiver(tok, start), true
	}
	p.eat(token.KwMut)
	if p.at(token.KwSelf) {
		tok := p.advance()
		param = p.receiver(tok, start)
		if p.eat(token.Colon) {
			param.Type = p.parseType()
			param.Span = start.Cover(p.lastSpan)
		}
		return param, true
	}
	// mut ident: Type
	if !p.at(token.Ident) {
		return param, false
	}
	tok := p.advance()
	param.Name, param.NameSpan = p.intern(tok), tok.Span
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after parameter"); !ok {
		return param, false
	}
	param.Type = p.parseType()
	param.Span = start.Cover(p.lastSpan)
	return param, param.Type.IsValid()
}

func (p *Parser) receiver(tok token.Token, start source.Span) ast.FnParam {
	return ast.FnParam{
		Name:     p.intern(tok),
		NameSpan: tok.Span,
		IsSelf:   true,
		Span:     start.Cover(tok.Span),
	}
}
