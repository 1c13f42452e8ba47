package parser

import (
	"strings"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// parseSmallStmt выбирает распознаватель по первому токену.
func (p *Parser) parseSmallStmt() ast.StmtID {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.KwPass:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtPass, start)
	case token.KwBreak:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtBreak, start)
	case token.KwContinue:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtContinue, start)
	case token.KwDel:
		return p.parseDelStmt()
	case token.KwReturn:
		p.advance()
		value := ast.NoExprID
		if !p.atSimpleEnd() {
			value = p.parseTestList(true)
		}
		return p.arenas.Stmts.NewValue(ast.StmtReturn, p.spanFrom(start), value)
	case token.KwRaise:
		return p.parseRaiseStmt()
	case token.KwGlobal, token.KwNonlocal:
		return p.parseNamesStmt()
	case token.KwAssert:
		p.advance()
		test := p.parseTest()
		msg := ast.NoExprID
		if p.accept(token.Comma) {
			msg = p.parseTest()
		}
		return p.arenas.Stmts.NewAssert(p.spanFrom(start), test, msg)
	case token.KwImport:
		return p.parseImportStmt()
	case token.KwFrom:
		return p.parseFromImportStmt()
	}
	return p.parseExprStmt()
}

// atSimpleEnd — конец small_stmt.
func (p *Parser) atSimpleEnd() bool {
	return p.atOr(token.Newline, token.Semicolon, token.EOF)
}

// parseExprStmt — expr_stmt: testlist_star_expr (annassign | augassign (yield_expr|testlist) |
// ('=' (yield_expr|testlist_star_expr))*)
func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	parenthesized := p.at(token.LParen)
	first := p.parseYieldOrTestList()

	switch tok := p.peek(); {
	case tok.Kind == token.Colon:
		p.advance()
		switch p.arenas.Exprs.Get(first).Kind {
		case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		case ast.ExprTuple, ast.ExprList:
			p.fail(diag.SynInvalidTarget, p.arenas.Exprs.Get(first).Span, "only single target (not tuple) can be annotated")
		default:
			p.fail(diag.SynInvalidTarget, p.arenas.Exprs.Get(first).Span, "illegal target for annotation")
		}
		ann := p.parseTest()
		value := ast.NoExprID
		if p.accept(token.Assign) {
			value = p.parseYieldOrTestList()
		}
		simple := !parenthesized && p.arenas.Exprs.Get(first).Kind == ast.ExprName
		return p.arenas.Stmts.NewAnnAssign(p.spanFrom(start), first, ann, value, simple)

	case tok.Kind.IsAugAssign():
		p.advance()
		if k := p.arenas.Exprs.Get(first).Kind; k != ast.ExprName && k != ast.ExprAttribute && k != ast.ExprSubscript {
			p.fail(diag.SynInvalidTarget, p.arenas.Exprs.Get(first).Span,
				"'"+p.describeExpr(first)+"' is an illegal expression for augmented assignment")
		}
		base, _ := tok.Kind.AugBase()
		op, _ := binaryOpFor(base)
		value := p.parseYieldOrTestList()
		return p.arenas.Stmts.NewAugAssign(p.spanFrom(start), first, op, value)

	case tok.Kind == token.Assign:
		targets := []ast.ExprID{first}
		value := first
		for p.accept(token.Assign) {
			value = p.parseYieldOrTestList()
			targets = append(targets, value)
		}
		targets = targets[:len(targets)-1]
		for _, t := range targets {
			p.checkTarget(t, "assignment")
		}
		return p.arenas.Stmts.NewAssign(p.spanFrom(start), targets, value)
	}
	return p.arenas.Stmts.NewValue(ast.StmtExpr, p.spanFrom(start), first)
}

// parseYieldOrTestList — yield_expr | testlist_star_expr
func (p *Parser) parseYieldOrTestList() ast.ExprID {
	if p.at(token.KwYield) {
		return p.parseYieldExpr()
	}
	return p.parseTestList(true)
}

func (p *Parser) parseDelStmt() ast.StmtID {
	start := p.advance().Span
	var targets []ast.ExprID
	for {
		t := p.parseStarOrExpr()
		p.checkTarget(t, "del")
		targets = append(targets, t)
		if !p.accept(token.Comma) || p.atSimpleEnd() {
			break
		}
	}
	return p.arenas.Stmts.NewDelete(p.spanFrom(start), targets)
}

// parseRaiseStmt — raise_stmt: 'raise' [test ['from' test]]
func (p *Parser) parseRaiseStmt() ast.StmtID {
	start := p.advance().Span
	exc, cause := ast.NoExprID, ast.NoExprID
	if !p.atSimpleEnd() {
		exc = p.parseTest()
		if p.accept(token.KwFrom) {
			cause = p.parseTest()
		}
	}
	return p.arenas.Stmts.NewRaise(p.spanFrom(start), exc, cause)
}

func (p *Parser) parseNamesStmt() ast.StmtID {
	tok := p.advance()
	kind := ast.StmtGlobal
	if tok.Kind == token.KwNonlocal {
		kind = ast.StmtNonlocal
	}
	var names []source.StringID
	for {
		name, _ := p.parseIdent()
		names = append(names, name)
		if !p.accept(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewNames(kind, p.spanFrom(tok.Span), names)
}

// parseImportStmt — import_name: 'import' dotted_as_names
func (p *Parser) parseImportStmt() ast.StmtID {
	start := p.advance().Span
	var names []ast.ImportAlias
	for {
		aliasStart := p.peek().Span
		name := p.parseDottedName()
		alias := ast.ImportAlias{Name: p.intern(name)}
		if p.accept(token.KwAs) {
			alias.AsName, _ = p.parseIdent()
		}
		alias.Span = p.spanFrom(aliasStart)
		names = append(names, alias)
		if !p.accept(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewImport(p.spanFrom(start), names)
}

// parseFromImportStmt — import_from: 'from' (('.' | '...')* dotted_name | ('.' | '...')+)
// 'import' ('*' | '(' import_as_names ')' | import_as_names)
func (p *Parser) parseFromImportStmt() ast.StmtID {
	start := p.advance().Span
	var level uint32
	for {
		if p.accept(token.Dot) {
			level++
		} else if p.accept(token.Ellipsis) {
			level += 3
		} else {
			break
		}
	}
	module := source.NoStringID
	if p.at(token.Ident) {
		module = p.intern(p.parseDottedName())
	} else if level == 0 {
		p.fail(diag.SynExpectIdentifier, p.getDiagnosticSpan(), "expected module name after 'from', got "+describe(p.peek()))
	}
	p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import'")

	if tok := p.peek(); tok.Kind == token.Star {
		p.advance()
		star := ast.ImportAlias{Name: p.intern("*"), Span: tok.Span}
		return p.arenas.Stmts.NewImportFrom(p.spanFrom(start), module, level, []ast.ImportAlias{star})
	}
	parens := p.accept(token.LParen)
	var names []ast.ImportAlias
	for {
		aliasStart := p.peek().Span
		name, _ := p.parseIdent()
		alias := ast.ImportAlias{Name: name}
		if p.accept(token.KwAs) {
			alias.AsName, _ = p.parseIdent()
		}
		alias.Span = p.spanFrom(aliasStart)
		names = append(names, alias)
		if !p.accept(token.Comma) {
			break
		}
		if parens && p.at(token.RParen) {
			break
		}
		if !parens && p.atSimpleEnd() {
			p.fail(diag.SynUnexpectedToken, p.getDiagnosticSpan(), "trailing comma not allowed without surrounding parentheses")
		}
	}
	if parens {
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close import list")
	}
	return p.arenas.Stmts.NewImportFrom(p.spanFrom(start), module, level, names)
}

// parseDottedName — dotted_name: NAME ('.' NAME)*
func (p *Parser) parseDottedName() string {
	var sb strings.Builder
	for {
		name, _ := p.parseIdent()
		sb.WriteString(p.arenas.Name(name))
		if !p.accept(token.Dot) {
			break
		}
		sb.WriteByte('.')
	}
	return sb.String()
}
