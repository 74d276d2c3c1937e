package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"danube/internal/source"
	"danube/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// untilEOF trims anything after the first EOF token.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints one numbered line per token with its position
// and the kinds of its leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range untilEOF(tokens) {
		line := fmt.Sprintf("%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += " at " + formatSpan(tok.Span, fs)
		if kinds := triviaKinds(tok.Leading); kinds != nil {
			line += " (leading: " + strings.Join(kinds, ", ") + ")"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span, Leading: triviaKinds(tok.Leading)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// triviaKinds is nil for no trivia so JSON omits the field.
func triviaKinds(trivia []token.Trivia) []string {
	if len(trivia) == 0 {
		return nil
	}
	out := make([]string, len(trivia))
	for i, tr := range trivia {
		out[i] = tr.Kind.String()
	}
	return out
}
