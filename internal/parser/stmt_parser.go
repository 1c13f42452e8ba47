package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// parseStmt — stmt: simple_stmt | compound_stmt.
// Простая строка может дать несколько statement через ';'.
func (p *Parser) parseStmt() []ast.StmtID {
	switch p.peek().Kind {
	case token.KwIf:
		return []ast.StmtID{p.parseIfStmt()}
	case token.KwWhile:
		return []ast.StmtID{p.parseWhileStmt()}
	case token.KwFor:
		return []ast.StmtID{p.parseForStmt(false, p.peek().Span)}
	case token.KwTry:
		return []ast.StmtID{p.parseTryStmt()}
	case token.KwWith:
		return []ast.StmtID{p.parseWithStmt(false, p.peek().Span)}
	case token.KwDef:
		return []ast.StmtID{p.parseFuncDef(nil, false, p.peek().Span)}
	case token.KwClass:
		return []ast.StmtID{p.parseClassDef(nil)}
	case token.At:
		return []ast.StmtID{p.parseDecorated()}
	case token.KwAsync:
		return []ast.StmtID{p.parseAsyncStmt()}
	case token.Indent:
		p.fail(diag.SynUnexpectedIndent, p.peek().Span, "unexpected indent")
	}
	return p.parseSimpleLine()
}

// parseSimpleLine — simple_stmt: small_stmt (';' small_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleLine() []ast.StmtID {
	stmts := []ast.StmtID{p.parseSmallStmt()}
	for p.accept(token.Semicolon) {
		if p.atOr(token.Newline, token.EOF) {
			break
		}
		stmts = append(stmts, p.parseSmallStmt())
	}
	if !p.accept(token.Newline) && !p.at(token.EOF) {
		p.checkInvalid()
		p.fail(diag.SynExpectNewline, p.getDiagnosticSpan(), "expected end of line, got "+describe(p.peek()))
	}
	return stmts
}

// parseSuite — suite: simple_stmt | NEWLINE INDENT stmt+ DEDENT.
// Ожидает, что ':' уже съеден.
func (p *Parser) parseSuite() []ast.StmtID {
	if !p.accept(token.Newline) {
		if p.at(token.EOF) {
			p.fail(diag.SynExpectIndent, p.getDiagnosticSpan(), "expected an indented block")
		}
		return p.parseSimpleLine()
	}
	if !p.at(token.Indent) {
		p.checkInvalid()
		p.fail(diag.SynExpectIndent, p.getDiagnosticSpan(), "expected an indented block")
	}
	p.advance()
	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		if p.accept(token.Newline) {
			continue
		}
		body = append(body, p.parseStmt()...)
	}
	p.accept(token.Dedent)
	return body
}

// parseBlockHeaderEnd — ':' перед suite.
func (p *Parser) parseBlockHeaderEnd(what string) []ast.StmtID {
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+what)
	return p.parseSuite()
}
