package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"use":    KwUse,
		"mod":    KwMod,
		"struct": KwStruct,
		"enum":   KwEnum,
		"trait":  KwTrait,
		"impl":   KwImpl,
		"fn":     KwFn,
		"static": KwStatic,
		"Self":   KwSelfType,
		"self":   KwSelf,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Fn", "USE", "Struct",
		"i32", "bool", "str",
		"identifier", "SELF",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKindClassification(t *testing.T) {
	for lexeme, k := range keywords {
		tok := Token{Kind: k, Text: lexeme}
		if !tok.IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
		if k.String() != lexeme {
			t.Fatalf("String(%d) = %q, want %q", k, k.String(), lexeme)
		}
	}
	if (Token{Kind: Ident}).IsKeyword() || !(Token{Kind: Ident}).IsIdent() {
		t.Fatalf("Ident misclassified")
	}
	if !(Token{Kind: ColonColon}).IsPunctOrOp() || (Token{Kind: IntLit}).IsPunctOrOp() {
		t.Fatalf("punctuation misclassified")
	}
	if !(Token{Kind: KwSuper}).IsPathSegment() || (Token{Kind: KwFn}).IsPathSegment() {
		t.Fatalf("path segment misclassified")
	}
}
