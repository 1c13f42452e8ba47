package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/diag"
)

// checkTarget проверяет, что выражение можно использовать как цель
// присваивания, del или цикла.
func (p *Parser) checkTarget(id ast.ExprID, context string) {
	x := p.arenas.Exprs.Get(id)
	switch x.Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return
	case ast.ExprStarred:
		if context == "del" {
			break
		}
		v, _ := p.arenas.Exprs.Value(id)
		p.checkTarget(v.Value, context)
		return
	case ast.ExprTuple, ast.ExprList:
		seq, _ := p.arenas.Exprs.Seq(id)
		for _, elt := range seq.Elts {
			p.checkTarget(elt, context)
		}
		return
	}
	p.fail(diag.SynInvalidTarget, x.Span, "cannot assign to "+p.describeExpr(id)+" in "+context)
}

// describeExpr — человекочитаемое имя вида выражения для сообщений.
func (p *Parser) describeExpr(id ast.ExprID) string {
	x := p.arenas.Exprs.Get(id)
	switch x.Kind {
	case ast.ExprConst:
		return "literal"
	case ast.ExprCall:
		return "function call"
	case ast.ExprBinary, ast.ExprUnary, ast.ExprBoolOp:
		return "operator"
	case ast.ExprCompare:
		return "comparison"
	case ast.ExprLambda:
		return "lambda"
	case ast.ExprIfExp:
		return "conditional expression"
	case ast.ExprYield, ast.ExprYieldFrom:
		return "yield expression"
	case ast.ExprAwait:
		return "await expression"
	case ast.ExprNamed:
		return "named expression"
	case ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp:
		return "comprehension"
	case ast.ExprGenerator:
		return "generator expression"
	case ast.ExprDict:
		return "dict literal"
	case ast.ExprSet:
		return "set display"
	case ast.ExprTuple:
		return "tuple"
	case ast.ExprAttribute:
		return "attribute"
	case ast.ExprSubscript:
		return "subscript"
	case ast.ExprStarred:
		return "starred"
	}
	return x.Kind.String()
}
