package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// parseTestList — testlist_star_expr (allowStar) или testlist.
// Запятая превращает результат в Tuple без скобок.
func (p *Parser) parseTestList(allowStar bool) ast.ExprID {
	first := p.parseTestOrStar(allowStar)
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.accept(token.Comma) {
		if !startsExpr(p.peek().Kind) {
			break
		}
		elts = append(elts, p.parseTestOrStar(allowStar))
	}
	span := p.arenas.Exprs.Get(first).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, elts)
}

func (p *Parser) parseTestOrStar(allowStar bool) ast.ExprID {
	if allowStar && p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseTest()
}

// parseExprList — exprlist: (expr|star_expr) (',' (expr|star_expr))* [',']
// Используется для целей for и comprehension: на 'in' останавливается.
func (p *Parser) parseExprList() ast.ExprID {
	first := p.parseStarOrExpr()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.accept(token.Comma) {
		if p.at(token.KwIn) || !startsExpr(p.peek().Kind) {
			break
		}
		elts = append(elts, p.parseStarOrExpr())
	}
	span := p.arenas.Exprs.Get(first).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, elts)
}

func (p *Parser) parseStarOrExpr() ast.ExprID {
	if p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseExpr()
}

// parseStarExpr — star_expr: '*' expr
func (p *Parser) parseStarExpr() ast.ExprID {
	start := p.advance().Span
	value := p.parseExpr()
	return p.arenas.Exprs.NewValue(ast.ExprStarred, p.spanFrom(start), value)
}

// parseNamedTest — namedexpr_test: test [':=' test]
func (p *Parser) parseNamedTest() ast.ExprID {
	target := p.parseTest()
	if !p.at(token.ColonAssign) {
		return target
	}
	opTok := p.advance()
	if p.arenas.Exprs.Get(target).Kind != ast.ExprName {
		p.fail(diag.SynInvalidTarget, opTok.Span, "cannot use assignment expressions with "+p.describeExpr(target))
	}
	value := p.parseTest()
	span := p.arenas.Exprs.Get(target).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewNamed(span, target, value)
}

// parseTest — test: or_test ['if' or_test 'else' test] | lambdef
func (p *Parser) parseTest() ast.ExprID {
	if p.at(token.KwLambda) {
		return p.parseLambda(true)
	}
	body := p.parseOrTest()
	if !p.at(token.KwIf) {
		return body
	}
	p.advance()
	test := p.parseOrTest()
	p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in conditional expression")
	orelse := p.parseTest()
	span := p.arenas.Exprs.Get(body).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewIfExp(span, test, body, orelse)
}

// parseTestNoCond — test_nocond: or_test | lambdef_nocond
func (p *Parser) parseTestNoCond() ast.ExprID {
	if p.at(token.KwLambda) {
		return p.parseLambda(false)
	}
	return p.parseOrTest()
}

// parseLambda — lambdef: 'lambda' [varargslist] ':' test
func (p *Parser) parseLambda(allowCond bool) ast.ExprID {
	start := p.advance().Span
	args := p.parseParams(token.Colon, false)
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lambda parameters")
	var body ast.ExprID
	if allowCond {
		body = p.parseTest()
	} else {
		body = p.parseTestNoCond()
	}
	return p.arenas.Exprs.NewLambda(p.spanFrom(start), args, body)
}

// parseOrTest / parseAndTest собирают цепочки в один BoolOp.
func (p *Parser) parseOrTest() ast.ExprID {
	return p.parseBoolChain(token.KwOr, ast.BoolOr, p.parseAndTest)
}

func (p *Parser) parseAndTest() ast.ExprID {
	return p.parseBoolChain(token.KwAnd, ast.BoolAnd, p.parseNotTest)
}

func (p *Parser) parseBoolChain(kw token.Kind, op ast.BoolOp, operand func() ast.ExprID) ast.ExprID {
	first := operand()
	if !p.at(kw) {
		return first
	}
	values := []ast.ExprID{first}
	for p.accept(kw) {
		values = append(values, operand())
	}
	span := p.arenas.Exprs.Get(first).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewBoolOp(span, op, values)
}

// parseNotTest — not_test: 'not' not_test | comparison
func (p *Parser) parseNotTest() ast.ExprID {
	if p.at(token.KwNot) {
		start := p.advance().Span
		operand := p.parseNotTest()
		return p.arenas.Exprs.NewUnary(p.spanFrom(start), ast.UnaryNot, operand)
	}
	return p.parseComparison()
}

// parseComparison — comparison: expr (comp_op expr)*
func (p *Parser) parseComparison() ast.ExprID {
	left := p.parseExpr()
	var (
		ops         []ast.CmpOp
		comparators []ast.ExprID
	)
	for {
		op, ok := compareOps[p.peek().Kind]
		if !ok {
			break
		}
		switch p.advance().Kind {
		case token.KwNot:
			// после выражения 'not' возможен только как 'not in'
			p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after 'not'")
		case token.KwIs:
			if p.accept(token.KwNot) {
				op = ast.CmpIsNot
			}
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseExpr())
	}
	if len(ops) == 0 {
		return left
	}
	span := p.arenas.Exprs.Get(left).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewCompare(span, left, ops, comparators)
}

// parseExpr — expr: xor_expr ('|' xor_expr)* и ниже, до term включительно.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precBitOr)
}

// parseBinaryExpr реализует precedence climbing для бинарных операторов.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	left := p.parseFactor()
	for {
		info, ok := binaryOps[p.peek().Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinaryExpr(info.prec + 1)
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, info.op, left, right)
	}
}

// parseFactor — factor: ('+'|'-'|'~') factor | power
func (p *Parser) parseFactor() ast.ExprID {
	if op, ok := unaryOps[p.peek().Kind]; ok {
		start := p.advance().Span
		operand := p.parseFactor()
		return p.arenas.Exprs.NewUnary(p.spanFrom(start), op, operand)
	}
	return p.parsePower()
}

// parsePower — power: atom_expr ['**' factor]; правоассоциативен через factor.
func (p *Parser) parsePower() ast.ExprID {
	base := p.parseAwaitPrimary()
	if !p.accept(token.StarStar) {
		return base
	}
	exp := p.parseFactor()
	span := p.arenas.Exprs.Get(base).Span.Cover(p.arenas.Exprs.Get(exp).Span)
	return p.arenas.Exprs.NewBinary(span, ast.BinaryPow, base, exp)
}

// parseAwaitPrimary — atom_expr: ['await'] atom trailer*
func (p *Parser) parseAwaitPrimary() ast.ExprID {
	if p.at(token.KwAwait) {
		start := p.advance().Span
		value := p.parsePrimaryWithSuffix()
		return p.arenas.Exprs.NewValue(ast.ExprAwait, p.spanFrom(start), value)
	}
	return p.parsePrimaryWithSuffix()
}

// parseYieldExpr — yield_expr: 'yield' ['from' test | testlist_star_expr]
func (p *Parser) parseYieldExpr() ast.ExprID {
	start := p.advance().Span
	if p.accept(token.KwFrom) {
		value := p.parseTest()
		return p.arenas.Exprs.NewValue(ast.ExprYieldFrom, p.spanFrom(start), value)
	}
	value := ast.NoExprID
	if startsExpr(p.peek().Kind) {
		value = p.parseTestList(true)
	}
	return p.arenas.Exprs.NewValue(ast.ExprYield, p.spanFrom(start), value)
}
