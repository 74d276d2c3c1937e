package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	for range sz {
		lx.cursor.Bump()
	}
}

// Идентификаторы: ASCII проверяется по байту, остальное по руне.
func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// isNumberAfterDot reports ".5": a dot directly followed by a digit.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// try3 consumes a, b, c if they come next.
func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != a || b1 != b || b2 != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

// try2 consumes a, b if they come next.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
