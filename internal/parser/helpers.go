package parser

import (
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/token"
)

// advance consumes one token. lastSpan tracks the last real token so
// errors at EOF can point just past it.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	switch tok.Kind {
	case token.EOF, token.Invalid:
	default:
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if !p.at(k) {
		return false
	}
	p.advance()
	return true
}

// here is where a diagnostic about the next token goes: the token itself,
// or an empty span after the last one at EOF.
func (p *Parser) here() source.Span {
	next := p.lx.Peek()
	if next.Kind != token.EOF || p.lastSpan.End == 0 {
		return next.Span
	}
	end := p.lastSpan.End
	return source.Span{File: p.lastSpan.File, Start: end, End: end}
}

// expect consumes a k token or reports msg and returns an Invalid one.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.here()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.here(), msg)
}

// report counts errors against MaxErrors; past the limit nothing is sent.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

func (p *Parser) intern(tok token.Token) source.StringID { return p.strs.Intern(tok.Text) }

// parseIdent requires an identifier; what names it in the error.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	if name, sp, ok := p.identIfAny(); ok {
		return name, sp, true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.lx.Peek()))
	return source.NoStringID, p.here(), false
}

// optionalName takes an item name if present. A missing one is left for
// the collector to report as a malformed declaration.
func (p *Parser) optionalName() (source.StringID, source.Span) {
	name, sp, _ := p.identIfAny()
	return name, sp
}

func (p *Parser) identIfAny() (source.StringID, source.Span, bool) {
	if !p.at(token.Ident) {
		return source.NoStringID, p.here(), false
	}
	tok := p.advance()
	return p.intern(tok), tok.Span, true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	default:
		return "'" + tok.Text + "'"
	}
}
