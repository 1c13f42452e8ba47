package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

type indentLevel struct {
	width uint32 // tabs expanded to tabSize
	alt   uint32 // tabs counted as one column
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look  *token.Token   // 1 элементный буфер для Peek
	queue []token.Token  // готовые токены (Indent/Dedent перед значимым)
	hold  []token.Trivia // накопленные leading trivia

	indents     []indentLevel
	depth       int  // вложенность скобок
	atLineStart bool // следующий байт начинает логическую строку
	lineHasCode bool // в текущей логической строке был значимый токен
	physHasCode bool // в текущей физической строке был значимый токен
	done        bool

	comments []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []indentLevel{{}},
		atLineStart: true,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if len(lx.queue) == 0 {
		lx.fill()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Comments returns every comment seen so far in source order.
func (lx *Lexer) Comments() []token.Trivia {
	return lx.comments
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// fill pushes at least one token onto the queue.
func (lx *Lexer) fill() {
	if lx.done {
		lx.queue = append(lx.queue, lx.eofToken())
		return
	}
	for {
		if lx.atLineStart && lx.depth == 0 {
			if !lx.scanLineStart() {
				continue
			}
		}

		lx.collectInlineTrivia()

		if lx.cursor.EOF() {
			lx.finish()
			return
		}

		if lx.cursor.Peek() == '\n' {
			// depth == 0 здесь: внутри скобок перевод строки ушёл в trivia
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.physHasCode = false
			lx.atLineStart = true
			if !lx.lineHasCode {
				lx.pushTrivia(token.TriviaNewline, lx.cursor.SpanFrom(start))
				continue
			}
			lx.lineHasCode = false
			sp := lx.cursor.SpanFrom(start)
			lx.queue = append(lx.queue, lx.takeLeading(token.Token{Kind: token.Newline, Span: sp, Text: "\n"}))
			return
		}

		tok := lx.scanToken()
		lx.lineHasCode = true
		lx.physHasCode = true
		lx.queue = append(lx.queue, lx.takeLeading(tok))
		return
	}
}

func (lx *Lexer) scanToken() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch), ch >= 0x80:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(start)
	default:
		tok = lx.scanOperatorOrPunct()
	}
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.SkipToEOF()
		tok.Kind = token.Invalid
		tok.Text = ""
	}
	return tok
}

// finish queues the implicit Newline, the closing Dedents and EOF.
func (lx *Lexer) finish() {
	at := lx.emptySpan()
	if lx.lineHasCode {
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: at})
		lx.lineHasCode = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: at})
	}
	lx.queue = append(lx.queue, lx.eofToken())
	lx.done = true
}

func (lx *Lexer) eofToken() token.Token {
	return lx.takeLeading(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
}

func (lx *Lexer) takeLeading(tok token.Token) token.Token {
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
