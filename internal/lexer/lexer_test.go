package lexer_test

import (
	"strings"
	"testing"

	"danube/internal/diag"
	"danube/internal/lexer"
	"danube/internal/source"
	"danube/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.dn", []byte(input)))
	bag := diag.NewBag(16)
	return lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := lexAll(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, bag.Items())
	}
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestUseTree(t *testing.T) {
	expectKinds(t, "use foo::{bar as baz, qux::*};",
		token.KwUse, token.Ident, token.ColonColon, token.LBrace,
		token.Ident, token.KwAs, token.Ident, token.Comma,
		token.Ident, token.ColonColon, token.Star, token.RBrace, token.Semicolon)
}

func TestDeclarationKeywords(t *testing.T) {
	expectKinds(t, "pub struct S<T> { x: T }",
		token.KwPub, token.KwStruct, token.Ident, token.Lt, token.Ident, token.Gt,
		token.LBrace, token.Ident, token.Colon, token.Ident, token.RBrace)
	expectKinds(t, "impl<T> Trait for Self where T: Clone {}",
		token.KwImpl, token.Lt, token.Ident, token.Gt, token.Ident, token.KwFor,
		token.KwSelfType, token.KwWhere, token.Ident, token.Colon, token.Ident,
		token.LBrace, token.RBrace)
}

func TestNestedGenericsCloseSeparately(t *testing.T) {
	expectKinds(t, "Vec<Vec<T>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
}

func TestNumbersAndRanges(t *testing.T) {
	toks := expectKinds(t, "0x1F 1_000u32 2.5 1..2 3e10 7f32",
		token.IntLit, token.IntLit, token.FloatLit,
		token.IntLit, token.DotDot, token.IntLit,
		token.FloatLit, token.FloatLit)
	if toks[1].Text != "1_000u32" {
		t.Fatalf("suffix lost: %q", toks[1].Text)
	}
}

func TestCharsAndLifetimes(t *testing.T) {
	expectKinds(t, `'a' '\n' 'a 'static "s\"x"`,
		token.CharLit, token.CharLit, token.Lifetime, token.Lifetime, token.StringLit)
}

func TestTriviaAttachesToNextToken(t *testing.T) {
	toks := expectKinds(t, "/// doc\n// line\n/* a /* nested */ b */ fn",
		token.KwFn)
	var got []token.TriviaKind
	for _, tv := range toks[0].Leading {
		got = append(got, tv.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(got) != len(want) {
		t.Fatalf("trivia = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trivia = %v, want %v", got, want)
		}
	}
}

func TestUnicodeIdentNormalized(t *testing.T) {
	toks := expectKinds(t, "struct Cafe\u0301;", token.KwStruct, token.Ident, token.Semicolon)
	if toks[1].Text != "Caf\u00e9" {
		t.Fatalf("identifier not NFC-normalized: %q", toks[1].Text)
	}
}

func TestErrorsAreReported(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"$", diag.LexUnknownChar},
		{"1e+", diag.LexBadNumber},
		{`'\x`, diag.LexUnterminatedChar},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			_, bag := lexAll(t, tc.input)
			if bag.Len() == 0 || bag.Items()[0].Code != tc.code {
				t.Fatalf("want %v, got %+v", tc.code, bag.Items())
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.dn", []byte("mod m;"))), lexer.Options{})
	if lx.Peek().Kind != token.KwMod || lx.Peek().Kind != token.KwMod {
		t.Fatalf("Peek must be idempotent")
	}
	if lx.Next().Kind != token.KwMod || lx.Next().Kind != token.Ident {
		t.Fatalf("Next after Peek returned wrong tokens")
	}
}

func TestTokenTooLong(t *testing.T) {
	toks, bag := lexAll(t, strings.Repeat("a", 64*1024+1)+" b")
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", toks[0].Kind)
	}
	if bag.Len() == 0 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %+v", bag.Items())
	}
	if toks[1].Kind != token.EOF {
		t.Fatalf("lexer should stop after an oversized token, got %v", toks[1].Kind)
	}
}
