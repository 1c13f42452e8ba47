package token

import (
	"pyparse/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Int, Float, Imag, String:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLayout reports whether the token is a Newline, Indent or Dedent.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}
