package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// scanNumber читает целые (dec/hex/oct/bin), вещественные и мнимые литералы.
// '_' допускается только между цифрами.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Int
	ok := true

	if b0, b1 := lx.cursor.PeekAt(0), lx.cursor.PeekAt(1); b0 == '0' && isRadixMarker(b1) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		var digit func(byte) bool
		switch b1 | 0x20 {
		case 'x':
			digit = isHex
		case 'o':
			digit = isOct
		default:
			digit = isBin
		}
		lx.cursor.Eat('_')
		ok = lx.eatDigits(digit)
		return lx.finishNumber(start, kind, ok)
	}

	leadingZero := lx.cursor.Peek() == '0'
	nonZero := false
	if isDec(lx.cursor.Peek()) {
		for p := lx.cursor.Off; p < lx.cursor.limit && (isDec(lx.file.Content[p]) || lx.file.Content[p] == '_'); p++ {
			if c := lx.file.Content[p]; c != '0' && c != '_' {
				nonZero = true
			}
		}
		ok = lx.eatDigits(isDec)
	}

	if lx.cursor.Peek() == '.' {
		kind = token.Float
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			ok = lx.eatDigits(isDec) && ok
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.Float
			ok = lx.eatDigits(isDec) && ok
		} else {
			lx.cursor.Reset(m)
			ok = false
		}
	}

	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.Imag
	}

	// "0777" запрещён, "000" разрешён
	if kind == token.Int && leadingZero && nonZero {
		ok = false
	}
	return lx.finishNumber(start, kind, ok)
}

// eatDigits consumes digits with single '_' separators; false on a dangling or doubled '_'.
func (lx *Lexer) eatDigits(digit func(byte) bool) bool {
	if !digit(lx.cursor.Peek()) {
		return false
	}
	for {
		for digit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() != '_' {
			return true
		}
		lx.cursor.Bump()
		if !digit(lx.cursor.Peek()) {
			return false
		}
	}
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind, ok bool) token.Token {
	// хвост из букв/цифр делает литерал некорректным: 12abc, 0x1g
	for b := lx.cursor.Peek(); isIdentContinueByte(b); b = lx.cursor.Peek() {
		lx.cursor.Bump()
		ok = false
	}
	sp := lx.cursor.SpanFrom(start)
	if !ok {
		lx.errLex(diag.LexBadNumber, sp, "invalid numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func isRadixMarker(b byte) bool {
	switch b | 0x20 {
	case 'x', 'o', 'b':
		return true
	}
	return false
}
