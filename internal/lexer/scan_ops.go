package lexer

import (
	"danube/internal/diag"
	"danube/internal/token"
)

type multiOp struct {
	text string
	kind token.Kind
}

// Порядок важен: длинные раньше коротких. ">>" не склеивается,
// иначе не закрыть два списка generic-параметров подряд.
var multiOps = [...]multiOp{
	{"..=", token.DotDotEq},
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
}

var singleOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '=': token.Assign, '!': token.Bang,
	'<': token.Lt, '>': token.Gt, '&': token.Amp, '|': token.Pipe,
	'^': token.Caret, '?': token.Question, ':': token.Colon,
	';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	'@': token.At, '#': token.Pound, '_': token.Underscore,
}

func (lx *Lexer) eatOp(op string) bool {
	switch len(op) {
	case 3:
		return lx.try3(op[0], op[1], op[2])
	case 2:
		return lx.try2(op[0], op[1])
	}
	return false
}

// scanOperatorOrPunct is greedy over multiOps, then falls back to one byte.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	for _, op := range multiOps {
		if lx.eatOp(op.text) {
			kind = op.kind
			break
		}
	}
	if kind == token.Invalid {
		kind = singleOps[lx.cursor.Bump()]
	}

	if kind == token.Invalid {
		return lx.invalidFrom(diag.LexUnknownChar, start, "unknown character")
	}
	return lx.tokenFrom(kind, start)
}
