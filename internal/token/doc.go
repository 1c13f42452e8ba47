// Package token defines lexical token kinds and trivia.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End); synthetic tokens
//     (Indent, Dedent, the EOF Newline) have empty spans and empty Text.
//   - Comments never appear in the significant token stream. They are
//     attached as Leading trivia of the next token and classified as
//     own-line or suffix comments.
//   - Soft keywords (match, case, type) are identifiers.
package token
