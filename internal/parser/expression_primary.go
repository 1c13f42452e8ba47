package parser

import (
	"strings"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// parsePrimaryWithSuffix — atom trailer*, trailer: '(' [arglist] ')' | '[' subscriptlist ']' | '.' NAME
func (p *Parser) parsePrimaryWithSuffix() ast.ExprID {
	x := p.parseAtom()
	for {
		start := p.arenas.Exprs.Get(x).Span
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args, keywords := p.parseArgs(token.RParen)
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call arguments")
			x = p.arenas.Exprs.NewCall(p.spanFrom(start), x, args, keywords)
		case token.LBracket:
			p.advance()
			index := p.parseSubscriptList()
			p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close subscript")
			x = p.arenas.Exprs.NewSubscript(p.spanFrom(start), x, index)
		case token.Dot:
			p.advance()
			attr, _ := p.parseIdent()
			x = p.arenas.Exprs.NewAttribute(p.spanFrom(start), x, attr)
		default:
			return x
		}
	}
}

// parseAtom — atom: '(' [yield_expr|testlist_comp] ')' | '[' [testlist_comp] ']' |
// '{' [dictorsetmaker] '}' | NAME | NUMBER | STRING+ | '...' | 'None' | 'True' | 'False'
func (p *Parser) parseAtom() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		name, sp := p.parseIdent()
		return p.arenas.Exprs.NewName(sp, name)
	case token.Int:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstInt, p.intern(tok.Text), nil)
	case token.Float:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstFloat, p.intern(tok.Text), nil)
	case token.Imag:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstImag, p.intern(tok.Text), nil)
	case token.String:
		return p.parseStrings()
	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstNone, source.NoStringID, nil)
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstTrue, source.NoStringID, nil)
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstFalse, source.NoStringID, nil)
	case token.Ellipsis:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstEllipsis, source.NoStringID, nil)
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	}
	p.checkInvalid()
	p.fail(diag.SynExpectExpression, p.getDiagnosticSpan(), "expected expression, got "+describe(tok))
	return ast.NoExprID
}

// parseStrings склеивает соседние строковые литералы в одну константу.
func (p *Parser) parseStrings() ast.ExprID {
	start := p.peek().Span
	var (
		parts []source.StringID
		texts []string
		bytes bool
	)
	for p.at(token.String) {
		tok := p.advance()
		isBytes := isBytesLiteral(tok.Text)
		if len(parts) > 0 && isBytes != bytes {
			p.fail(diag.SynUnexpectedToken, tok.Span, "cannot mix bytes and nonbytes literals")
		}
		bytes = isBytes
		parts = append(parts, p.intern(tok.Text))
		texts = append(texts, tok.Text)
	}
	kind := ast.ConstStr
	if bytes {
		kind = ast.ConstBytes
	}
	if len(parts) == 1 {
		parts = nil
	}
	return p.arenas.Exprs.NewConst(p.spanFrom(start), kind, p.intern(strings.Join(texts, " ")), parts)
}

// isBytesLiteral смотрит на префикс до кавычки.
func isBytesLiteral(text string) bool {
	prefix, _, _ := strings.Cut(strings.ReplaceAll(text, `"`, `'`), `'`)
	return strings.ContainsAny(prefix, "bB")
}

// parseParenAtom — '(' ')' | '(' yield_expr ')' | '(' namedexpr_test comp_for ')' | '(' testlist_comp ')'
func (p *Parser) parseParenAtom() ast.ExprID {
	start := p.advance().Span
	if p.accept(token.RParen) {
		return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), nil)
	}
	if p.at(token.KwYield) {
		x := p.parseYieldExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return x
	}
	first := p.parseNamedOrStar()
	if p.atOr(token.KwFor, token.KwAsync) {
		gens := p.parseCompFor()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close generator expression")
		return p.arenas.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(start), first, ast.NoExprID, gens)
	}
	if !p.at(token.Comma) {
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		if p.arenas.Exprs.Get(first).Kind == ast.ExprStarred {
			p.fail(diag.SynUnexpectedToken, p.arenas.Exprs.Get(first).Span, "cannot use starred expression here")
		}
		return first
	}
	elts := p.parseSeqTail(first, token.RParen)
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple")
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), elts)
}

// parseListAtom — '[' [testlist_comp] ']'
func (p *Parser) parseListAtom() ast.ExprID {
	start := p.advance().Span
	if p.accept(token.RBracket) {
		return p.arenas.Exprs.NewSeq(ast.ExprList, p.spanFrom(start), nil)
	}
	first := p.parseNamedOrStar()
	if p.atOr(token.KwFor, token.KwAsync) {
		gens := p.parseCompFor()
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close list comprehension")
		return p.arenas.Exprs.NewComp(ast.ExprListComp, p.spanFrom(start), first, ast.NoExprID, gens)
	}
	elts := p.parseSeqTail(first, token.RBracket)
	p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close list")
	return p.arenas.Exprs.NewSeq(ast.ExprList, p.spanFrom(start), elts)
}

// parseBraceAtom — '{' [dictorsetmaker] '}'
func (p *Parser) parseBraceAtom() ast.ExprID {
	start := p.advance().Span
	if p.accept(token.RBrace) {
		return p.arenas.Exprs.NewDict(p.spanFrom(start), nil, nil)
	}

	// dict: (test ':' test | '**' expr) ...
	if p.at(token.StarStar) || !p.at(token.Star) {
		key, value := p.parseDictEntry()
		if key.IsValid() && value == ast.NoExprID {
			// это set: key на самом деле первый элемент
			return p.parseSetRest(start, key)
		}
		if key.IsValid() && p.atOr(token.KwFor, token.KwAsync) {
			gens := p.parseCompFor()
			p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close dict comprehension")
			return p.arenas.Exprs.NewComp(ast.ExprDictComp, p.spanFrom(start), key, value, gens)
		}
		keys, values := []ast.ExprID{key}, []ast.ExprID{value}
		for p.accept(token.Comma) {
			if p.at(token.RBrace) {
				break
			}
			k, v := p.parseDictEntry()
			if v == ast.NoExprID {
				p.expect(token.Colon, diag.SynExpectColon, "expected ':' in dict entry")
			}
			keys, values = append(keys, k), append(values, v)
		}
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close dict")
		return p.arenas.Exprs.NewDict(p.spanFrom(start), keys, values)
	}
	return p.parseSetRest(start, p.parseStarExpr())
}

// parseDictEntry — test ':' test | '**' expr. Для голого test без ':'
// возвращает (test, NoExprID), чтобы вызывающий мог свернуть в set.
func (p *Parser) parseDictEntry() (ast.ExprID, ast.ExprID) {
	if p.accept(token.StarStar) {
		return ast.NoExprID, p.parseExpr()
	}
	key := p.parseNamedTest()
	if !p.accept(token.Colon) {
		return key, ast.NoExprID
	}
	return key, p.parseTest()
}

func (p *Parser) parseSetRest(start source.Span, first ast.ExprID) ast.ExprID {
	if p.atOr(token.KwFor, token.KwAsync) {
		gens := p.parseCompFor()
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close set comprehension")
		return p.arenas.Exprs.NewComp(ast.ExprSetComp, p.spanFrom(start), first, ast.NoExprID, gens)
	}
	elts := p.parseSeqTail(first, token.RBrace)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close set")
	return p.arenas.Exprs.NewSeq(ast.ExprSet, p.spanFrom(start), elts)
}

// parseSeqTail — (',' (namedexpr_test|star_expr))* [','] до closer.
func (p *Parser) parseSeqTail(first ast.ExprID, closer token.Kind) []ast.ExprID {
	elts := []ast.ExprID{first}
	for p.accept(token.Comma) {
		if p.at(closer) {
			break
		}
		elts = append(elts, p.parseNamedOrStar())
	}
	return elts
}

func (p *Parser) parseNamedOrStar() ast.ExprID {
	if p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseNamedTest()
}

// parseCompFor — comp_for: ['async'] 'for' exprlist 'in' or_test [comp_iter]
// comp_iter: comp_for | 'if' test_nocond [comp_iter]
func (p *Parser) parseCompFor() []ast.Comprehension {
	var gens []ast.Comprehension
	for p.atOr(token.KwFor, token.KwAsync) {
		gen := ast.Comprehension{IsAsync: p.accept(token.KwAsync)}
		p.expect(token.KwFor, diag.SynUnexpectedToken, "expected 'for' after 'async'")
		gen.Target = p.parseExprList()
		p.checkTarget(gen.Target, "comprehension")
		if !p.at(token.KwIn) {
			p.checkInvalid()
			p.fail(diag.SynForMissingIn, p.getDiagnosticSpan(), "expected 'in' in comprehension, got "+describe(p.peek()))
		}
		p.advance()
		gen.Iter = p.parseOrTest()
		for p.accept(token.KwIf) {
			gen.Ifs = append(gen.Ifs, p.parseTestNoCond())
		}
		gens = append(gens, gen)
	}
	return gens
}

// parseArgs — arglist: argument (',' argument)* [','] до closer.
// argument: test [comp_for] | test ':=' test | test '=' test | '**' test | '*' test
func (p *Parser) parseArgs(closer token.Kind) ([]ast.ExprID, []ast.Keyword) {
	var (
		args     []ast.ExprID
		keywords []ast.Keyword
	)
	for !p.at(closer) {
		start := p.peek().Span
		switch {
		case p.accept(token.StarStar):
			value := p.parseTest()
			keywords = append(keywords, ast.Keyword{Value: value, Span: p.spanFrom(start)})
		case p.accept(token.Star):
			value := p.parseTest()
			args = append(args, p.arenas.Exprs.NewValue(ast.ExprStarred, p.spanFrom(start), value))
		default:
			x := p.parseTest()
			if p.at(token.Assign) {
				// keyword: разобрали test, теперь проверяем, что это имя
				name, ok := p.arenas.Exprs.Name(x)
				if !ok {
					p.fail(diag.SynBadArguments, p.arenas.Exprs.Get(x).Span, "expression cannot contain assignment, perhaps you meant \"==\"?")
				}
				p.advance()
				value := p.parseTest()
				keywords = append(keywords, ast.Keyword{Name: name.Name, Value: value, Span: p.spanFrom(start)})
				break
			}
			switch {
			case p.at(token.ColonAssign):
				opTok := p.advance()
				if p.arenas.Exprs.Get(x).Kind != ast.ExprName {
					p.fail(diag.SynInvalidTarget, opTok.Span, "cannot use assignment expressions with "+p.describeExpr(x))
				}
				value := p.parseTest()
				x = p.arenas.Exprs.NewNamed(p.spanFrom(start), x, value)
			case p.atOr(token.KwFor, token.KwAsync):
				gens := p.parseCompFor()
				x = p.arenas.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(start), x, ast.NoExprID, gens)
				if len(args) > 0 || len(keywords) > 0 || p.at(token.Comma) {
					p.fail(diag.SynBadArguments, p.arenas.Exprs.Get(x).Span, "generator expression must be parenthesized")
				}
			}
			if len(keywords) > 0 {
				p.fail(diag.SynBadArguments, p.arenas.Exprs.Get(x).Span, positionalAfterKeyword(keywords))
			}
			args = append(args, x)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	return args, keywords
}

func positionalAfterKeyword(keywords []ast.Keyword) string {
	if keywords[len(keywords)-1].Name == source.NoStringID {
		return "positional argument follows keyword argument unpacking"
	}
	return "positional argument follows keyword argument"
}

// parseSubscriptList — subscriptlist: subscript (',' subscript)* [',']
func (p *Parser) parseSubscriptList() ast.ExprID {
	first := p.parseSubscript()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.accept(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elts = append(elts, p.parseSubscript())
	}
	span := p.arenas.Exprs.Get(first).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, elts)
}

// parseSubscript — subscript: test | [test] ':' [test] [sliceop], sliceop: ':' [test]
func (p *Parser) parseSubscript() ast.ExprID {
	start := p.peek().Span
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		lower = p.parseNamedTest()
		if !p.at(token.Colon) {
			return lower
		}
	}
	p.advance()
	upper, step := ast.NoExprID, ast.NoExprID
	if !p.atOr(token.Colon, token.Comma, token.RBracket) {
		upper = p.parseTest()
	}
	if p.accept(token.Colon) && !p.atOr(token.Comma, token.RBracket) {
		step = p.parseTest()
	}
	return p.arenas.Exprs.NewSlice(p.spanFrom(start), lower, upper, step)
}
