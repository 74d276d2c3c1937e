// Package token defines lexical token kinds and trivia for the Danube front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream.
//   - Primitive type names (i32, bool, str, ...) are identifiers. They are
//     declared by the builtin prelude, not recognized by the lexer.
package token
