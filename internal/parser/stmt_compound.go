package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// parseIfStmt — if_stmt: 'if' namedexpr_test ':' suite ('elif' namedexpr_test ':' suite)* ['else' ':' suite]
// elif сворачивается во вложенный If внутри Orelse.
func (p *Parser) parseIfStmt() ast.StmtID {
	start := p.advance().Span
	return p.parseIfRest(start)
}

func (p *Parser) parseIfRest(start source.Span) ast.StmtID {
	test := p.parseNamedTest()
	body := p.parseBlockHeaderEnd("if condition")
	var orelse []ast.StmtID
	switch {
	case p.at(token.KwElif):
		elifStart := p.advance().Span
		orelse = []ast.StmtID{p.parseIfRest(elifStart)}
	case p.accept(token.KwElse):
		orelse = p.parseBlockHeaderEnd("'else'")
	}
	return p.arenas.Stmts.NewCond(ast.StmtIf, p.spanFrom(start), test, body, orelse)
}

// parseWhileStmt — while_stmt: 'while' namedexpr_test ':' suite ['else' ':' suite]
func (p *Parser) parseWhileStmt() ast.StmtID {
	start := p.advance().Span
	test := p.parseNamedTest()
	body := p.parseBlockHeaderEnd("while condition")
	var orelse []ast.StmtID
	if p.accept(token.KwElse) {
		orelse = p.parseBlockHeaderEnd("'else'")
	}
	return p.arenas.Stmts.NewCond(ast.StmtWhile, p.spanFrom(start), test, body, orelse)
}

// parseForStmt — for_stmt: 'for' exprlist 'in' testlist ':' suite ['else' ':' suite]
func (p *Parser) parseForStmt(isAsync bool, start source.Span) ast.StmtID {
	p.expect(token.KwFor, diag.SynUnexpectedToken, "expected 'for'")
	target := p.parseExprList()
	p.checkTarget(target, "for loop")
	if !p.at(token.KwIn) {
		p.checkInvalid()
		p.fail(diag.SynForMissingIn, p.getDiagnosticSpan(), "expected 'in' after for-loop target, got "+describe(p.peek()))
	}
	p.advance()
	iter := p.parseTestList(true)
	body := p.parseBlockHeaderEnd("for-loop header")
	var orelse []ast.StmtID
	if p.accept(token.KwElse) {
		orelse = p.parseBlockHeaderEnd("'else'")
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(start), ast.StmtForData{
		Target:  target,
		Iter:    iter,
		Body:    body,
		Orelse:  orelse,
		IsAsync: isAsync,
	})
}

// parseTryStmt — try_stmt: 'try' ':' suite ((except_clause ':' suite)+ ['else' ':' suite]
// ['finally' ':' suite] | 'finally' ':' suite)
func (p *Parser) parseTryStmt() ast.StmtID {
	start := p.advance().Span
	data := ast.StmtTryData{Body: p.parseBlockHeaderEnd("'try'")}
	for p.at(token.KwExcept) {
		hstart := p.advance().Span
		h := ast.ExceptHandler{Type: ast.NoExprID}
		if !p.at(token.Colon) {
			h.Type = p.parseTest()
			if p.accept(token.KwAs) {
				h.Name, _ = p.parseIdent()
			}
		}
		h.Body = p.parseBlockHeaderEnd("except clause")
		h.Span = p.spanFrom(hstart)
		data.Handlers = append(data.Handlers, h)
	}
	if len(data.Handlers) > 0 && p.accept(token.KwElse) {
		data.Orelse = p.parseBlockHeaderEnd("'else'")
	}
	if p.accept(token.KwFinally) {
		data.Finalbody = p.parseBlockHeaderEnd("'finally'")
	}
	if len(data.Handlers) == 0 && len(data.Finalbody) == 0 {
		p.checkInvalid()
		p.fail(diag.SynTryWithoutHandler, p.getDiagnosticSpan(), "expected 'except' or 'finally' block")
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(start), data)
}

// parseWithStmt — with_stmt: 'with' with_item (',' with_item)* ':' suite
func (p *Parser) parseWithStmt(isAsync bool, start source.Span) ast.StmtID {
	p.expect(token.KwWith, diag.SynUnexpectedToken, "expected 'with'")
	var items []ast.WithItem
	for {
		item := ast.WithItem{Context: p.parseTest(), Vars: ast.NoExprID}
		if p.accept(token.KwAs) {
			item.Vars = p.parseExpr()
			p.checkTarget(item.Vars, "with statement")
		}
		items = append(items, item)
		if !p.accept(token.Comma) {
			break
		}
	}
	body := p.parseBlockHeaderEnd("with statement")
	return p.arenas.Stmts.NewWith(p.spanFrom(start), ast.StmtWithData{Items: items, Body: body, IsAsync: isAsync})
}

// parseFuncDef — funcdef: 'def' NAME parameters ['->' test] ':' suite
func (p *Parser) parseFuncDef(decorators []ast.ExprID, isAsync bool, start source.Span) ast.StmtID {
	p.expect(token.KwDef, diag.SynUnexpectedToken, "expected 'def'")
	name, _ := p.parseIdent()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	args := p.parseParams(token.RParen, true)
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list")
	returns := ast.NoExprID
	if p.accept(token.Arrow) {
		returns = p.parseTest()
	}
	body := p.parseBlockHeaderEnd("function signature")
	return p.arenas.Stmts.NewFunctionDef(p.spanFrom(start), ast.StmtFunctionDefData{
		Name:       name,
		Args:       args,
		Body:       body,
		Decorators: decorators,
		Returns:    returns,
		IsAsync:    isAsync,
	})
}

// parseClassDef — classdef: 'class' NAME ['(' [arglist] ')'] ':' suite
func (p *Parser) parseClassDef(decorators []ast.ExprID) ast.StmtID {
	start := p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'").Span
	name, _ := p.parseIdent()
	data := ast.StmtClassDefData{Name: name, Decorators: decorators}
	if p.accept(token.LParen) {
		data.Bases, data.Keywords = p.parseArgs(token.RParen)
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close class bases")
	}
	data.Body = p.parseBlockHeaderEnd("class header")
	return p.arenas.Stmts.NewClassDef(p.spanFrom(start), data)
}

// parseDecorated — decorators (classdef | funcdef | async_funcdef)
func (p *Parser) parseDecorated() ast.StmtID {
	var decorators []ast.ExprID
	for p.accept(token.At) {
		decorators = append(decorators, p.parseNamedTest())
		if !p.accept(token.Newline) {
			p.checkInvalid()
			p.fail(diag.SynExpectNewline, p.getDiagnosticSpan(), "expected end of line after decorator, got "+describe(p.peek()))
		}
	}
	switch tok := p.peek(); tok.Kind {
	case token.KwDef:
		return p.parseFuncDef(decorators, false, tok.Span)
	case token.KwClass:
		return p.parseClassDef(decorators)
	case token.KwAsync:
		p.advance()
		if p.at(token.KwDef) {
			return p.parseFuncDef(decorators, true, tok.Span)
		}
	}
	p.checkInvalid()
	p.fail(diag.SynDecoratorNotDefine, p.getDiagnosticSpan(), "decorator must be followed by 'def' or 'class', got "+describe(p.peek()))
	return ast.NoStmtID
}

// parseAsyncStmt — async_stmt: 'async' (funcdef | with_stmt | for_stmt)
func (p *Parser) parseAsyncStmt() ast.StmtID {
	start := p.advance().Span
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(nil, true, start)
	case token.KwFor:
		return p.parseForStmt(true, start)
	case token.KwWith:
		return p.parseWithStmt(true, start)
	}
	p.unexpected("'def', 'for' or 'with' after 'async'")
	return ast.NoStmtID
}
