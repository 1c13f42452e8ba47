package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var (
	ops3 = []struct {
		text string
		kind token.Kind
	}{
		{"**=", token.StarStarAssign},
		{"//=", token.SlashSlashAssign},
		{">>=", token.ShrAssign},
		{"<<=", token.ShlAssign},
		{"...", token.Ellipsis},
	}
	ops2 = []struct {
		text string
		kind token.Kind
	}{
		{"**", token.StarStar},
		{"//", token.SlashSlash},
		{"<<", token.Shl},
		{">>", token.Shr},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"==", token.EqEq},
		{"!=", token.BangEq},
		{"->", token.Arrow},
		{":=", token.ColonAssign},
		{"+=", token.PlusAssign},
		{"-=", token.MinusAssign},
		{"*=", token.StarAssign},
		{"/=", token.SlashAssign},
		{"%=", token.PercentAssign},
		{"@=", token.AtAssign},
		{"&=", token.AmpAssign},
		{"|=", token.PipeAssign},
		{"^=", token.CaretAssign},
	}
	ops1 = map[byte]token.Kind{
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Star,
		'/': token.Slash,
		'%': token.Percent,
		'@': token.At,
		'&': token.Amp,
		'|': token.Pipe,
		'^': token.Caret,
		'~': token.Tilde,
		'<': token.Lt,
		'>': token.Gt,
		'(': token.LParen,
		')': token.RParen,
		'[': token.LBracket,
		']': token.RBracket,
		'{': token.LBrace,
		'}': token.RBrace,
		',': token.Comma,
		':': token.Colon,
		'.': token.Dot,
		';': token.Semicolon,
		'=': token.Assign,
	}
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range ops3 {
		if lx.cursor.EatSeq(op.text) {
			return emit(op.kind)
		}
	}
	for _, op := range ops2 {
		if lx.cursor.EatSeq(op.text) {
			return emit(op.kind)
		}
	}

	b := lx.cursor.Peek()
	k, ok := ops1[b]
	if !ok {
		lx.bumpRune()
		tok := emit(token.Invalid)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteChar(tok.Text))
		return tok
	}
	lx.cursor.Bump()

	switch k {
	case token.LParen, token.LBracket, token.LBrace:
		lx.depth++
	case token.RParen, token.RBracket, token.RBrace:
		if lx.depth == 0 {
			lx.errLex(diag.LexUnbalancedBracket, lx.cursor.SpanFrom(start), "unmatched '"+string(b)+"'")
		} else {
			lx.depth--
		}
	}
	return emit(k)
}

func quoteChar(s string) string {
	return "'" + s + "'"
}
