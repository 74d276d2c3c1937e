package lexer

import (
	"danube/internal/diag"
	"danube/internal/token"
)

func withUnderscore(digit func(byte) bool) func(byte) bool {
	return func(b byte) bool { return b == '_' || digit(b) }
}

var (
	binDigits = withUnderscore(func(b byte) bool { return b == '0' || b == '1' })
	octDigits = withUnderscore(func(b byte) bool { return '0' <= b && b <= '7' })
	hexDigits = withUnderscore(isHex)
	decDigits = withUnderscore(isDec)
)

// radixDigits maps the letter after a leading 0 to its digit class.
func radixDigits(b byte) func(byte) bool {
	switch b | 0x20 {
	case 'b':
		return binDigits
	case 'o':
		return octDigits
	case 'x':
		return hexDigits
	}
	return nil
}

// scanNumber reads 12, 1_000, 0b1010, 0o17, 0xFF, 2.5, 1e-3 and an
// optional type suffix (1u8, 2f32) that stays in Token.Text. A suffix
// containing 'f' makes the literal a float. Placement of '_' is not checked.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	radix := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		if digits := radixDigits(b1); digits != nil {
			lx.cursor.Off += 2
			lx.cursor.eatAll(digits)
			radix = true
		}
	}

	if !radix {
		lx.cursor.eatAll(decDigits)
		// "1..2" и "t.0.1": точка остается пунктуацией
		if lx.isNumberAfterDot() {
			lx.cursor.Bump()
			lx.cursor.eatAll(decDigits)
			kind = token.FloatLit
		}
		if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
			lx.cursor.Bump()
			kind = token.FloatLit
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				return lx.invalidFrom(diag.LexBadNumber, start, "expected digit after exponent")
			}
			lx.cursor.eatAll(decDigits)
		}
	}

	for isIdentContinueByte(lx.cursor.Peek()) {
		if lx.cursor.Bump() == 'f' {
			kind = token.FloatLit
		}
	}
	return lx.tokenFrom(kind, start)
}
