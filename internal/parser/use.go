package parser

import (
	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/token"
)

// parseUse распознаёт формы:
//
//	use a::b;
//	use a::b as c;
//	use a::*;
//	use a::{b, c::d as e, f::*, self};
//	use {a, b};
//	use ::a::b;
func (p *Parser) parseUse(h ast.ItemHeader) (ast.ItemID, bool) {
	p.advance() // use
	p.eat(token.ColonColon)
	tree := p.parseUseTree()
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use declaration"); !ok {
		p.skipUntil(token.Semicolon)
		p.eat(token.Semicolon)
	}
	p.finishItem(&h)
	return p.arenas.Items.NewUse(h, tree), true
}

func (p *Parser) parseUseTree() ast.UseTreeID {
	start := p.lx.Peek().Span
	tree := ast.UseTree{Kind: ast.UseTreeInvalid}

	finish := func() ast.UseTreeID {
		tree.Span = start.Cover(p.lastSpan)
		return p.arenas.Items.NewUseTree(tree)
	}

	for {
		switch {
		case p.at(token.Star):
			p.advance()
			tree.Kind = ast.UseTreeGlob
			return finish()
		case p.at(token.LBrace):
			tree.Kind = ast.UseTreeNested
			tree.Children = p.parseUseGroup()
			return finish()
		case p.lx.Peek().IsPathSegment():
			tok := p.advance()
			tree.Prefix = append(tree.Prefix, ast.PathSegment{Name: p.intern(tok), Span: tok.Span})
		default:
			// missing segment; the collector reports the tree as malformed
			return finish()
		}

		if p.eat(token.ColonColon) {
			continue
		}
		tree.Kind = ast.UseTreeSimple
		if p.eat(token.KwAs) {
			switch {
			case p.at(token.Ident), p.at(token.Underscore):
				tok := p.advance()
				tree.Alias = p.intern(tok)
				tree.AliasSpan = tok.Span
			default:
				p.err(diag.SynExpectIdentAfterAs, "expected identifier after 'as', got "+describe(p.lx.Peek()))
				tree.Kind = ast.UseTreeInvalid
			}
		}
		return finish()
	}
}

func (p *Parser) parseUseGroup() []ast.UseTreeID {
	open := p.advance() // {
	var children []ast.UseTreeID
	for !p.atOr(token.RBrace, token.EOF, token.Semicolon) {
		children = append(children, p.parseUseTree())
		if !p.eat(token.Comma) {
			break
		}
	}
	if len(children) == 0 {
		p.report(diag.SynEmptyUseGroup, diag.SevWarning, open.Span.Cover(p.lx.Peek().Span), "empty use group")
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close use group")
	return children
}
