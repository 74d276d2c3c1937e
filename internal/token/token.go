package token

import (
	"danube/internal/source"
)

// Token is one significant lexeme; the trivia before it rides in Leading.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

func (k Kind) inRange(lo, hi Kind) bool { return lo <= k && k <= hi }

func (t Token) IsKeyword() bool { return t.Kind.inRange(KwUse, KwExtern) }

// IsPunctOrOp covers every kind from Plus onwards.
func (t Token) IsPunctOrOp() bool { return t.Kind.inRange(Plus, kindCount-1) }

func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPathSegment is true for identifiers and self, Self, super, crate.
func (t Token) IsPathSegment() bool {
	return t.Kind == Ident || t.Kind == KwSelf || t.Kind == KwSelfType || t.Kind == KwSuper || t.Kind == KwCrate
}
