package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Lifetime // 'a

	KwUse      // use
	KwMod      // mod
	KwStruct   // struct
	KwEnum     // enum
	KwTrait    // trait
	KwImpl     // impl
	KwFn       // fn
	KwConst    // const
	KwStatic   // static
	KwType     // type
	KwPub      // pub
	KwAs       // as
	KwFor      // for
	KwSelf     // self
	KwSelfType // Self
	KwSuper    // super
	KwCrate    // crate
	KwMut      // mut
	KwWhere    // where
	KwLet      // let
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwLoop     // loop
	KwMatch    // match
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwIn       // in
	KwTrue     // true
	KwFalse    // false
	KwExtern   // extern

	IntLit
	FloatLit
	StringLit
	CharLit

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	Assign      // =
	EqEq        // ==
	Bang        // !
	BangEq      // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Amp         // &
	Pipe        // |
	Caret       // ^
	AndAnd      // &&
	OrOr        // ||
	Question    // ?
	Colon       // :
	ColonColon  // ::
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	DotDot      // ..
	DotDotEq    // ..=
	Arrow       // ->
	FatArrow    // =>
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Pound       // #
	At          // @
	Underscore  // _
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	Lifetime:    "Lifetime",
	KwUse:       "use",
	KwMod:       "mod",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwTrait:     "trait",
	KwImpl:      "impl",
	KwFn:        "fn",
	KwConst:     "const",
	KwStatic:    "static",
	KwType:      "type",
	KwPub:       "pub",
	KwAs:        "as",
	KwFor:       "for",
	KwSelf:      "self",
	KwSelfType:  "Self",
	KwSuper:     "super",
	KwCrate:     "crate",
	KwMut:       "mut",
	KwWhere:     "where",
	KwLet:       "let",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwLoop:      "loop",
	KwMatch:     "match",
	KwReturn:    "return",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwIn:        "in",
	KwTrue:      "true",
	KwFalse:     "false",
	KwExtern:    "extern",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Assign:      "=",
	EqEq:        "==",
	Bang:        "!",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	AndAnd:      "&&",
	OrOr:        "||",
	Question:    "?",
	Colon:       ":",
	ColonColon:  "::",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	DotDot:      "..",
	DotDotEq:    "..=",
	Arrow:       "->",
	FatArrow:    "=>",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Pound:       "#",
	At:          "@",
	Underscore:  "_",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
