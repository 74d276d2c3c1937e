package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/token"
)

// parseType parses a type in declaration position. Returns NoTypeID after
// reporting when no type starts here.
func (p *Parser) parseType() ast.TypeID {
	start := p.lx.Peek().Span
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.Amp:
		p.advance()
		return p.parseRefTail(start)
	case token.AndAnd:
		// && is two borrows
		p.advance()
		inner := p.parseRefTail(tok.Span)
		return p.newType(ast.TypeExpr{Kind: ast.TypeExprRef, Elems: elems(inner)}, start)
	case token.Star:
		p.advance()
		mutable := p.eat(token.KwMut)
		if !mutable && !p.eat(token.KwConst) {
			p.err(diag.SynExpectType, "expected 'const' or 'mut' after '*'")
		}
		elem := p.parseType()
		return p.newType(ast.TypeExpr{Kind: ast.TypeExprPtr, Elems: elems(elem), Mutable: mutable}, start)
	case token.LParen:
		return p.parseTupleType(start)
	case token.LBracket:
		p.advance()
		elem := p.parseType()
		kind := ast.TypeExprSlice
		if p.eat(token.Semicolon) {
			kind = ast.TypeExprArray
			p.skipUntil(token.RBracket)
		}
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
		return p.newType(ast.TypeExpr{Kind: kind, Elems: elems(elem)}, start)
	case token.Bang:
		p.advance()
		return p.newType(ast.TypeExpr{Kind: ast.TypeExprNever}, start)
	case token.Underscore:
		p.advance()
		return p.newType(ast.TypeExpr{Kind: ast.TypeExprInfer}, start)
	case token.KwFn, token.KwExtern:
		return p.parseFnType(start)
	case token.KwFor:
		p.advance()
		p.skipHigherRanked()
		return p.parseType()
	case token.KwImpl:
		p.advance()
		return p.newType(ast.TypeExpr{Kind: ast.TypeExprTraitObject, Elems: p.parseBounds()}, start)
	case token.Lt:
		return p.parseQualifiedPath(start)
	case token.Ident:
		switch tok.Text {
		case "dyn":
			p.advance()
			return p.newType(ast.TypeExpr{Kind: ast.TypeExprTraitObject, Elems: p.parseBounds()}, start)
		case "unsafe":
			return p.parseFnType(start)
		}
	}
	if tok.IsPathSegment() || tok.Kind == token.ColonColon {
		return p.parsePathType()
	}
	p.err(diag.SynExpectType, "expected type, got "+describe(tok))
	return ast.NoTypeID
}

func (p *Parser) parseRefTail(start source.Span) ast.TypeID {
	p.eat(token.Lifetime)
	mutable := p.eat(token.KwMut)
	elem := p.parseType()
	return p.newType(ast.TypeExpr{Kind: ast.TypeExprRef, Elems: elems(elem), Mutable: mutable}, start)
}

// parseTupleType: `()`, `(T)` (just T) and `(A, B,)`.
func (p *Parser) parseTupleType(start source.Span) ast.TypeID {
	p.advance() // (
	var items []ast.TypeID
	trailingComma := false
	for !p.atOr(token.RParen, token.EOF) {
		trailingComma = false
		if t := p.parseType(); t.IsValid() {
			items = append(items, t)
		} else {
			p.skipUntil(token.Comma, token.RParen)
		}
		if !p.eat(token.Comma) {
			break
		}
		trailingComma = true
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type")
	if len(items) == 1 && !trailingComma {
		return items[0]
	}
	return p.newType(ast.TypeExpr{Kind: ast.TypeExprTuple, Elems: items}, start)
}

// parseFnType: `[unsafe] [extern "abi"] fn(A, name: B) [-> R]`.
func (p *Parser) parseFnType(start source.Span) ast.TypeID {
	if tok := p.lx.Peek(); tok.Kind == token.Ident && tok.Text == "unsafe" {
		p.advance()
	}
	if p.eat(token.KwExtern) {
		p.eat(token.StringLit)
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn'"); !ok {
		return ast.NoTypeID
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn'"); !ok {
		return ast.NoTypeID
	}
	var items []ast.TypeID
	for !p.atOr(token.RParen, token.EOF) {
		if p.eat(token.DotDot) {
			p.eat(token.Dot) // variadic
			break
		}
		t := p.parseType()
		if p.eat(token.Colon) {
			// the first "type" was a parameter name
			t = p.parseType()
		}
		if t.IsValid() {
			items = append(items, t)
		} else {
			p.skipUntil(token.Comma, token.RParen)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close fn type")
	ret := ast.NoTypeID
	if p.eat(token.Arrow) {
		ret = p.parseType()
	}
	if !ret.IsValid() {
		ret = p.newType(ast.TypeExpr{Kind: ast.TypeExprTuple}, p.lastSpan)
	}
	items = append(items, ret)
	return p.newType(ast.TypeExpr{Kind: ast.TypeExprFn, Elems: items}, start)
}

// parseQualifiedPath: `<T as Trait>::Item` or `<T>::Item`.
func (p *Parser) parseQualifiedPath(start source.Span) ast.TypeID {
	p.advance() // <
	self := p.parseType()
	qual := elems(self)
	if p.eat(token.KwAs) {
		qual = append(qual, elems(p.parseType())...)
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' in qualified path"); !ok {
		return ast.NoTypeID
	}
	if _, ok := p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected '::' after qualified path"); !ok {
		return ast.NoTypeID
	}
	segs, ok := p.parsePathSegments()
	if !ok {
		return ast.NoTypeID
	}
	return p.newType(ast.TypeExpr{Kind: ast.TypeExprPath, Path: segs, Elems: qual, Qualified: true}, start)
}

// parsePathType parses `[::]a::b<T>::C<'a, U, Item = V>` and `Fn(A) -> R`.
func (p *Parser) parsePathType() ast.TypeID {
	start := p.lx.Peek().Span
	p.eat(token.ColonColon)
	segs, ok := p.parsePathSegments()
	if !ok {
		return ast.NoTypeID
	}
	return p.newType(ast.TypeExpr{Kind: ast.TypeExprPath, Path: segs}, start)
}

func (p *Parser) parsePathSegments() ([]ast.PathSegment, bool) {
	var segs []ast.PathSegment
	for {
		tok := p.lx.Peek()
		if !tok.IsPathSegment() {
			p.err(diag.SynExpectIdentifier, "expected path segment, got "+describe(tok))
			return nil, false
		}
		p.advance()
		seg := ast.PathSegment{Name: p.intern(tok), Span: tok.Span}
		if p.at(token.Lt) {
			seg.Args = p.parseGenericArgs()
		}
		if p.at(token.LParen) {
			// Fn(A, B) -> R sugar
			seg.Args = p.parseParenArgs()
		}
		segs = append(segs, seg)

		if !p.eat(token.ColonColon) {
			return segs, true
		}
		if p.at(token.Lt) {
			// turbofish
			segs[len(segs)-1].Args = p.parseGenericArgs()
			if !p.eat(token.ColonColon) {
				return segs, true
			}
		}
	}
}

// parseGenericArgs parses `<'a, T, N, { expr }, Item = U, Item: Bound>`.
// Lifetimes and const arguments are dropped; an associated binding
// contributes its value type.
func (p *Parser) parseGenericArgs() []ast.TypeID {
	p.advance() // <
	var args []ast.TypeID
	for !p.atOr(token.Gt, token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Lifetime:
			p.advance()
		case token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
			token.KwTrue, token.KwFalse, token.Minus, token.LBrace:
			p.skipUntil(token.Comma, token.Gt)
		default:
			t := p.parseType()
			switch {
			case p.eat(token.Assign):
				t = p.parseType()
			case p.eat(token.Colon):
				p.parseBounds()
				t = ast.NoTypeID
			}
			if t.IsValid() {
				args = append(args, t)
			} else {
				p.skipUntil(token.Comma, token.Gt)
			}
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic arguments")
	return args
}

func (p *Parser) parseParenArgs() []ast.TypeID {
	p.advance() // (
	var args []ast.TypeID
	for !p.atOr(token.RParen, token.EOF) {
		if t := p.parseType(); t.IsValid() {
			args = append(args, t)
		} else {
			p.skipUntil(token.Comma, token.RParen)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	if p.eat(token.Arrow) {
		if t := p.parseType(); t.IsValid() {
			args = append(args, t)
		}
	}
	return args
}

func (p *Parser) newType(expr ast.TypeExpr, start source.Span) ast.TypeID {
	expr.Span = start.Cover(p.lastSpan)
	return p.arenas.Types.New(expr)
}

func elems(id ast.TypeID) []ast.TypeID {
	if !id.IsValid() {
		return nil
	}
	return []ast.TypeID{id}
}
