package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"danube/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

// eatIdentRune consumes one identifier rune if it qualifies. first selects
// the start-of-identifier class. wide reports a non-ASCII rune.
func (lx *Lexer) eatIdentRune(first bool) (ok, wide bool) {
	r, sz := lx.peekRune()
	switch {
	case sz == 0:
		return false, false
	case r < utf8RuneSelf:
		if first && !isIdentStartByte(byte(r)) || !first && !isIdentContinueByte(byte(r)) {
			return false, false
		}
		lx.cursor.Bump()
		return true, false
	case first && !isIdentStartRune(r), !first && !isIdentContinueRune(r):
		return false, false
	}
	lx.bumpRune()
	return true, true
}

// scanIdentOrKeyword reads an identifier, keyword or `_`. Non-ASCII
// identifiers are NFC-normalized so equal-looking names intern together.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ok, wide := lx.eatIdentRune(true)
	if !ok {
		if lx.cursor.EOF() {
			return lx.tokenFrom(token.Invalid, start)
		}
		return lx.scanOperatorOrPunct()
	}
	for {
		more, w := lx.eatIdentRune(false)
		if !more {
			break
		}
		wide = wide || w
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	kind := token.Ident
	switch k, isKw := token.LookupKeyword(text); {
	case text == "_":
		kind = token.Underscore
	case isKw:
		kind = k
	case wide:
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
