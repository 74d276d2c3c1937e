package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/token"
)

// parseItem выбирает по первому токену нужный распознаватель конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	p.skipAttributes()

	start := p.lx.Peek().Span
	vis := p.parseVisibility()
	h := ast.ItemHeader{Span: start, Visibility: vis}

	for {
		switch p.lx.Peek().Kind {
		case token.KwUse:
			return p.parseUse(h)
		case token.KwMod:
			return p.parseMod(h)
		case token.KwStruct:
			return p.parseStruct(h)
		case token.KwEnum:
			return p.parseEnum(h)
		case token.KwTrait:
			return p.parseTrait(h)
		case token.KwImpl:
			return p.parseImpl(h)
		case token.KwFn:
			return p.parseFn(h)
		case token.KwConst:
			p.advance()
			if p.at(token.KwFn) {
				continue // const fn
			}
			return p.parseConst(ast.ItemConst, h)
		case token.KwStatic:
			p.advance()
			return p.parseConst(ast.ItemStatic, h)
		case token.KwType:
			return p.parseTypeAlias(h)
		case token.KwExtern:
			// extern "C" fn
			p.advance()
			p.eat(token.StringLit)
			if p.at(token.KwFn) {
				continue
			}
		case token.Ident:
			if tok := p.lx.Peek(); tok.Text == "unsafe" || tok.Text == "async" {
				p.advance()
				continue
			}
		}
		p.err(diag.SynExpectItem, "expected item, got "+describe(p.lx.Peek()))
		return ast.NoItemID, false
	}
}

// parseVisibility parses `pub`, `pub(crate)`, `pub(super)` and `pub(in path)`.
func (p *Parser) parseVisibility() ast.Visibility {
	if !p.eat(token.KwPub) {
		return ast.VisPrivate
	}
	if !p.at(token.LParen) {
		return ast.VisPublic
	}
	p.skipBalanced(token.LParen, token.RParen)
	return ast.VisCrate
}

// skipAttributes drops `#[...]` and `#![...]`.
func (p *Parser) skipAttributes() {
	for p.at(token.Pound) {
		p.advance()
		p.eat(token.Bang)
		if !p.at(token.LBracket) {
			p.err(diag.SynUnexpectedToken, "expected '[' after '#'")
			return
		}
		p.skipBalanced(token.LBracket, token.RBracket)
	}
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwUse, token.KwMod, token.KwStruct, token.KwEnum, token.KwTrait,
		token.KwImpl, token.KwFn, token.KwConst, token.KwStatic, token.KwType,
		token.KwPub, token.Pound:
		return true
	default:
		return false
	}
}

// resyncItems - восстановление после ошибки: прокручиваем до ';' (съедаем),
// до стартового токена следующего item, до '}' (не съедаем) или EOF.
// Nested groups are skipped whole so their contents cannot look like items.
func (p *Parser) resyncItems() {
	for {
		switch k := p.lx.Peek().Kind; {
		case k == token.EOF, k == token.RBrace:
			return
		case k == token.Semicolon:
			p.advance()
			return
		case isItemStarter(k):
			return
		case k == token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		case k == token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		case k == token.LBracket:
			p.skipBalanced(token.LBracket, token.RBracket)
		default:
			p.advance()
		}
	}
}

// skipBalanced consumes a group starting at open through its matching close.
// Other bracket kinds inside are counted too, so `{ ( } )` does not confuse it.
// Returns the span of the whole group.
func (p *Parser) skipBalanced(open, close token.Kind) source.Span {
	first := p.lx.Peek()
	if first.Kind != open {
		return first.Span
	}
	var stack []token.Kind
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, first.Span, "unclosed '"+open.String()+"'")
			return first.Span.Cover(p.lastSpan)
		case token.LBrace:
			stack = append(stack, token.RBrace)
		case token.LParen:
			stack = append(stack, token.RParen)
		case token.LBracket:
			stack = append(stack, token.RBracket)
		case token.RBrace, token.RParen, token.RBracket:
			if len(stack) > 0 && stack[len(stack)-1] == tok.Kind {
				stack = stack[:len(stack)-1]
			}
		}
		p.advance()
		if len(stack) == 0 {
			return first.Span.Cover(tok.Span)
		}
	}
}

// skipUntil consumes tokens up to (not including) one of stop at bracket
// depth zero.
func (p *Parser) skipUntil(stop ...token.Kind) {
	for {
		k := p.lx.Peek().Kind
		if k == token.EOF || p.atOr(stop...) {
			return
		}
		switch k {
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		case token.LBracket:
			p.skipBalanced(token.LBracket, token.RBracket)
		case token.RBrace, token.RParen, token.RBracket:
			return // unbalanced closer belongs to the enclosing construct
		default:
			p.advance()
		}
	}
}

// finishItem closes the header span over everything consumed so far.
func (p *Parser) finishItem(h *ast.ItemHeader) {
	h.Span = h.Span.Cover(p.lastSpan)
}

// skipExpr is skipUntil for initializer expressions: it also stops before
// a token that can only start an item, so a missing ';' does not swallow
// the rest of the file.
func (p *Parser) skipExpr(stop ...token.Kind) {
	for {
		k := p.lx.Peek().Kind
		if k == token.EOF || p.atOr(stop...) || (k != token.Pound && isItemStarter(k)) {
			return
		}
		switch k {
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		case token.LBracket:
			p.skipBalanced(token.LBracket, token.RBracket)
		case token.RBrace, token.RParen, token.RBracket:
			return
		default:
			p.advance()
		}
	}
}
