package lexer

import (
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/token"
)

// Lexer turns one file into tokens. Trivia before a token is attached to
// it as Leading; trivia before EOF is dropped.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	peeked *token.Token
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.peeked == nil {
		tok := lx.scan()
		lx.peeked = &tok
	}
	return *lx.peeked
}

// Next consumes a token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if tok := lx.peeked; tok != nil {
		lx.peeked = nil
		return *tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		at := lx.cursor.Off
		return token.Token{Kind: token.EOF, Span: source.Span{File: lx.file.ID, Start: at, End: at}}
	}

	tok := lx.dispatch(lx.cursor.Peek())
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.skipToEnd()
		tok.Kind = token.Invalid
	}
	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) dispatch(ch byte) token.Token {
	switch {
	case ch == '_':
		// "_" и "__" без продолжения - пунктуация
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '_' && isIdentContinueByte(b1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	case ch >= utf8RuneSelf, isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanQuote()
	}
	return lx.scanOperatorOrPunct()
}

// Tokenize lexes the whole file, EOF included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
