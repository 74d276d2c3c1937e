package lexer

import (
	"danube/internal/diag"
	"danube/internal/token"
)

// tokenFrom builds a token spanning start..cursor.
func (lx *Lexer) tokenFrom(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// invalidFrom reports msg over start..cursor and returns an Invalid token.
func (lx *Lexer) invalidFrom(code diag.Code, start Mark, msg string) token.Token {
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(code, tok.Span, msg)
	return tok
}

// scanString reads "..." and may span lines. A backslash skips the next
// byte; escapes themselves are not validated.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.tokenFrom(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	return lx.invalidFrom(diag.LexUnterminatedString, start, "unterminated string literal")
}

// scanQuote reads a char literal ('a', '\n', '\u{41}') or a lifetime
// ('a, 'static). An identifier after the quote is a lifetime unless it is
// a single byte closed by a quote.
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	if isIdentStartByte(lx.cursor.Peek()) {
		body := lx.cursor.Mark()
		lx.cursor.eatAll(isIdentContinueByte)
		if lx.cursor.Off-uint32(body) > 1 || lx.cursor.Peek() != '\'' {
			return lx.tokenFrom(token.Lifetime, start)
		}
		lx.cursor.Reset(body)
	}

	lx.cursor.Eat('\\')
	lx.bumpRune()
	lx.cursor.eatAll(func(b byte) bool { return b != '\'' && b != '\n' })
	if !lx.cursor.Eat('\'') {
		return lx.invalidFrom(diag.LexUnterminatedChar, start, "unterminated character literal")
	}
	return lx.tokenFrom(token.CharLit, start)
}
