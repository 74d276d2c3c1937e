package lexer

import (
	"danube/internal/diag"
	"danube/internal/token"
)

// collectLeadingTrivia fills lx.hold with the trivia before the next token.
// Runs of blanks and runs of newlines each become one entry; `//`, `///`
// and nested `/* */` comments become one entry each.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for {
		start := lx.cursor.Mark()
		kind, ok := lx.scanTrivia()
		if !ok {
			lx.cursor.Reset(start)
			return
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
	}
}

// scanTrivia consumes one trivia entry. ok is false when the next byte
// starts a token (or at EOF); the caller rewinds.
func (lx *Lexer) scanTrivia() (token.TriviaKind, bool) {
	switch lx.cursor.Peek() {
	case ' ', '\t':
		lx.cursor.eatAll(isBlank)
		return token.TriviaSpace, true
	case '\n':
		lx.cursor.eatAll(func(b byte) bool { return b == '\n' })
		return token.TriviaNewline, true
	case '/':
		switch {
		case lx.try3('/', '/', '/'):
			lx.skipLine()
			return token.TriviaDocLine, true
		case lx.try2('/', '/'):
			lx.skipLine()
			return token.TriviaLineComment, true
		case lx.try2('/', '*'):
			lx.skipBlockComment()
			return token.TriviaBlockComment, true
		}
	}
	return 0, false
}

func (lx *Lexer) skipLine() {
	lx.cursor.eatAll(func(b byte) bool { return b != '\n' })
}

// skipBlockComment consumes a block comment whose opening `/*` was already
// eaten. An unterminated comment runs to EOF and is reported.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark() - 2
	for depth := 1; depth > 0; {
		switch {
		case lx.cursor.EOF():
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			return
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
}
