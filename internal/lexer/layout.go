package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// scanLineStart measures the indentation of a logical line start.
// Blank and comment-only lines are consumed as trivia and false is returned;
// otherwise the Indent/Dedent tokens for the line are queued and true is returned.
func (lx *Lexer) scanLineStart() bool {
	start := lx.cursor.Mark()
	var lvl indentLevel
measure:
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lvl.width++
			lvl.alt++
		case '\t':
			lvl.width = (lvl.width/tabSize + 1) * tabSize
			lvl.alt++
		case '\f':
			lvl = indentLevel{}
		default:
			break measure
		}
		lx.cursor.Bump()
	}
	if sp := lx.cursor.SpanFrom(start); !sp.Empty() {
		lx.pushTrivia(token.TriviaSpace, sp)
	}

	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF():
		return true
	case b == '#':
		lx.scanComment()
		lx.eatNewlineTrivia()
		return false
	case b == '\n':
		lx.eatNewlineTrivia()
		return false
	}

	lx.atLineStart = false
	lx.applyIndent(lvl, lx.cursor.SpanFrom(start))
	return true
}

func (lx *Lexer) applyIndent(lvl indentLevel, sp source.Span) {
	top := lx.indents[len(lx.indents)-1]
	at := lx.emptySpan()

	switch {
	case lvl.width == top.width:
		if lvl.alt != top.alt {
			lx.errLex(diag.LexTabSpaceMix, sp, "inconsistent use of tabs and spaces in indentation")
		}
	case lvl.width > top.width:
		if lvl.alt <= top.alt {
			lx.errLex(diag.LexTabSpaceMix, sp, "inconsistent use of tabs and spaces in indentation")
		}
		lx.indents = append(lx.indents, lvl)
		lx.queue = append(lx.queue, token.Token{Kind: token.Indent, Span: at})
	default:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1].width > lvl.width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: at})
		}
		top = lx.indents[len(lx.indents)-1]
		if top.width != lvl.width {
			lx.errLex(diag.LexBadDedent, sp, "unindent does not match any outer indentation level")
		} else if top.alt != lvl.alt {
			lx.errLex(diag.LexTabSpaceMix, sp, "inconsistent use of tabs and spaces in indentation")
		}
	}
}

func (lx *Lexer) eatNewlineTrivia() {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\n') {
		lx.physHasCode = false
		lx.pushTrivia(token.TriviaNewline, lx.cursor.SpanFrom(start))
	}
}
