package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// collectInlineTrivia собирает trivia внутри логической строки:
//   - ' ', '\t', '\f' коалесцируются в один TriviaSpace
//   - '#...' до '\n' -> TriviaSuffixComment или TriviaLineComment
//   - '\\' + '\n' -> TriviaContinuation
//   - '\n' внутри скобок -> TriviaNewline
//
// Останавливается перед значимым байтом, перед '\n' вне скобок или на EOF.
func (lx *Lexer) collectInlineTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\f':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, lx.cursor.SpanFrom(start))
		case '#':
			lx.scanComment()
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.Eat('\n') {
				lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected character after line continuation character")
				if lx.cursor.EOF() {
					return
				}
				continue
			}
			lx.physHasCode = false
			lx.pushTrivia(token.TriviaContinuation, lx.cursor.SpanFrom(start))
		case '\n':
			if lx.depth == 0 {
				return
			}
			lx.cursor.Bump()
			lx.physHasCode = false
			lx.pushTrivia(token.TriviaNewline, lx.cursor.SpanFrom(start))
		default:
			return
		}
	}
}

// scanComment reads '#' up to the end of the physical line.
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	kind := token.TriviaLineComment
	if lx.physHasCode {
		kind = token.TriviaSuffixComment
	}
	tv := lx.pushTrivia(kind, lx.cursor.SpanFrom(start))
	lx.comments = append(lx.comments, tv)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, sp source.Span) token.Trivia {
	tv := token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp), InBrackets: lx.depth > 0}
	lx.hold = append(lx.hold, tv)
	return tv
}
