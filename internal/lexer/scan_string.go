package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// scanString reads a string literal whose prefix (if any) starts at start
// and whose opening quote is under the cursor. Escapes are skipped, not decoded.
func (lx *Lexer) scanString(start Mark) token.Token {
	q := lx.cursor.Bump()
	triple := lx.cursor.PeekAt(0) == q && lx.cursor.PeekAt(1) == q
	if triple {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if b2 := lx.cursor.Bump(); b2 == '\n' {
				lx.physHasCode = false
			}
			continue
		case b == q && !triple:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
		case b == q && lx.cursor.PeekAt(1) == q && lx.cursor.PeekAt(2) == q:
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
		case b == '\n' && !triple:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case b == '\n':
			lx.physHasCode = false
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if triple {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated triple-quoted string literal")
	} else {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
