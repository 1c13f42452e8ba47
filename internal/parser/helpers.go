package parser

import (
	"slices"
	"strconv"

	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// advance — съедает следующий токен и обновляет lastSpan.
// Layout-токены span не двигают: конец statement — последний значимый токен.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind == token.Invalid {
		// лексер уже сообщил об ошибке
		panic(bailout{})
	}
	if !tok.IsLayout() && tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// accept съедает токен, если он нужного вида.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect — ожидаем конкретный токен, иначе ошибка и прерывание разбора.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.checkInvalid()
	p.fail(code, p.getDiagnosticSpan(), msg+", got "+describe(p.peek()))
	return token.Token{}
}

// getDiagnosticSpan — лучший span для диагностики: для EOF и
// синтетических токенов это позиция сразу после последнего значимого токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Span.Empty() || peek.Kind == token.EOF || peek.Kind == token.Newline {
		if p.lastSpan.End > 0 {
			return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		}
	}
	return peek.Span
}

// checkInvalid: Invalid от лексера уже отрепортен, дублировать не нужно.
func (p *Parser) checkInvalid() {
	if p.at(token.Invalid) {
		panic(bailout{})
	}
}

// fail репортит ошибку и прерывает проход.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
	panic(bailout{})
}

// unexpected — общая ошибка для текущего токена.
func (p *Parser) unexpected(what string) {
	p.checkInvalid()
	p.fail(diag.SynUnexpectedToken, p.getDiagnosticSpan(), "unexpected "+describe(p.peek())+", expected "+what)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false // нет reporter или достигли лимита
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// parseIdent — ожидает Ident и интернирует его с NFKC-нормализацией.
func (p *Parser) parseIdent() (source.StringID, source.Span) {
	if !p.at(token.Ident) {
		p.checkInvalid()
		p.fail(diag.SynExpectIdentifier, p.getDiagnosticSpan(), "expected identifier, got "+describe(p.peek()))
	}
	tok := p.advance()
	return p.arenas.Strings.InternIdent([]byte(tok.Text)), tok.Span
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Strings.Intern(s)
}

func (p *Parser) emptySpan() source.Span {
	sp := p.peek().Span
	return source.Span{File: sp.File, Start: sp.Start, End: sp.Start}
}

// spanFrom — от начала start до последнего значимого токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	case token.Ident:
		return "name " + strconv.Quote(tok.Text)
	case token.Int, token.Float, token.Imag:
		return "number " + tok.Text
	case token.String:
		return "string literal"
	}
	return strconv.Quote(tok.Text)
}
