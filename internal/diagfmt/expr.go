package diagfmt

import (
	"strings"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// Уровни приоритета для печати выражений; чем больше, тем сильнее связывание.
const (
	precLowest = iota // yield, :=
	precLambda
	precIfExp
	precOr
	precAnd
	precNot
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precUnary
	precPower
	precAwait
	precPrimary
	precAtom
)

// FormatExpr renders an expression back to source form with the minimal
// parentheses its structure needs.
func FormatExpr(b *ast.Builder, id ast.ExprID) string {
	p := exprPrinter{b: b}
	p.expr(id, precLowest)
	return p.sb.String()
}

type exprPrinter struct {
	b  *ast.Builder
	sb strings.Builder
}

func (p *exprPrinter) write(parts ...string) {
	for _, s := range parts {
		p.sb.WriteString(s)
	}
}

func (p *exprPrinter) name(id source.StringID) string {
	return p.b.Name(id)
}

func binaryPrec(op ast.BinaryOp) int {
	switch op {
	case ast.BinaryBitOr:
		return precBitOr
	case ast.BinaryBitXor:
		return precBitXor
	case ast.BinaryBitAnd:
		return precBitAnd
	case ast.BinaryShl, ast.BinaryShr:
		return precShift
	case ast.BinaryAdd, ast.BinarySub:
		return precArith
	case ast.BinaryPow:
		return precPower
	default:
		return precTerm
	}
}

func (p *exprPrinter) prec(id ast.ExprID) int {
	e := p.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprNamed, ast.ExprYield, ast.ExprYieldFrom:
		return precLowest
	case ast.ExprLambda:
		return precLambda
	case ast.ExprIfExp:
		return precIfExp
	case ast.ExprBoolOp:
		if d, _ := p.b.Exprs.BoolOp(id); d.Op == ast.BoolAnd {
			return precAnd
		}
		return precOr
	case ast.ExprCompare:
		return precCompare
	case ast.ExprBinary:
		d, _ := p.b.Exprs.Binary(id)
		return binaryPrec(d.Op)
	case ast.ExprUnary:
		if d, _ := p.b.Exprs.Unary(id); d.Op == ast.UnaryNot {
			return precNot
		}
		return precUnary
	case ast.ExprAwait:
		return precAwait
	case ast.ExprCall, ast.ExprAttribute, ast.ExprSubscript:
		return precPrimary
	}
	return precAtom
}

func (p *exprPrinter) expr(id ast.ExprID, minPrec int) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		p.write("<?>")
		return
	}
	if p.prec(id) < minPrec {
		p.write("(")
		defer p.write(")")
	}

	exprs := p.b.Exprs
	switch e.Kind {
	case ast.ExprName:
		d, _ := exprs.Name(id)
		p.write(p.name(d.Name))
	case ast.ExprConst:
		d, _ := exprs.Const(id)
		switch {
		case d.Raw != source.NoStringID:
			p.write(p.name(d.Raw))
		case d.Kind == ast.ConstEllipsis:
			p.write("...")
		default:
			p.write(d.Kind.String())
		}
	case ast.ExprBoolOp:
		d, _ := exprs.BoolOp(id)
		self := p.prec(id)
		for i, v := range d.Values {
			if i > 0 {
				p.write(" ", d.Op.String(), " ")
			}
			p.expr(v, self+1)
		}
	case ast.ExprBinary:
		d, _ := exprs.Binary(id)
		self := binaryPrec(d.Op)
		if d.Op == ast.BinaryPow {
			p.expr(d.Left, precAwait)
			p.write(" ** ")
			p.expr(d.Right, precUnary)
			return
		}
		p.expr(d.Left, self)
		p.write(" ", d.Op.String(), " ")
		p.expr(d.Right, self+1)
	case ast.ExprUnary:
		d, _ := exprs.Unary(id)
		if d.Op == ast.UnaryNot {
			p.write("not ")
			p.expr(d.Operand, precNot)
			return
		}
		p.write(d.Op.String())
		p.expr(d.Operand, precUnary)
	case ast.ExprCompare:
		d, _ := exprs.Compare(id)
		p.expr(d.Left, precCompare+1)
		for i, op := range d.Ops {
			p.write(" ", op.String(), " ")
			p.expr(d.Comparators[i], precCompare+1)
		}
	case ast.ExprCall:
		d, _ := exprs.Call(id)
		p.expr(d.Func, precPrimary)
		p.write("(")
		n := 0
		for _, a := range d.Args {
			p.sep(&n)
			p.expr(a, precLambda)
		}
		for _, kw := range d.Keywords {
			p.sep(&n)
			p.keyword(kw)
		}
		p.write(")")
	case ast.ExprAttribute:
		d, _ := exprs.Attribute(id)
		p.expr(d.Value, precPrimary)
		p.write(".", p.name(d.Attr))
	case ast.ExprSubscript:
		d, _ := exprs.Subscript(id)
		p.expr(d.Value, precPrimary)
		p.write("[")
		if tup, ok := exprs.Seq(d.Index); ok && exprs.Get(d.Index).Kind == ast.ExprTuple && len(tup.Elts) > 0 {
			p.elts(tup.Elts, precLambda)
			if len(tup.Elts) == 1 {
				p.write(",")
			}
		} else {
			p.expr(d.Index, precLambda)
		}
		p.write("]")
	case ast.ExprSlice:
		d, _ := exprs.Slice(id)
		p.optional(d.Lower)
		p.write(":")
		p.optional(d.Upper)
		if d.Step.IsValid() {
			p.write(":")
			p.expr(d.Step, precLambda)
		}
	case ast.ExprStarred:
		d, _ := exprs.Value(id)
		p.write("*")
		p.expr(d.Value, precBitOr)
	case ast.ExprTuple:
		d, _ := exprs.Seq(id)
		p.write("(")
		p.elts(d.Elts, precLambda)
		if len(d.Elts) == 1 {
			p.write(",")
		}
		p.write(")")
	case ast.ExprList:
		d, _ := exprs.Seq(id)
		p.write("[")
		p.elts(d.Elts, precLambda)
		p.write("]")
	case ast.ExprSet:
		d, _ := exprs.Seq(id)
		p.write("{")
		p.elts(d.Elts, precLambda)
		p.write("}")
	case ast.ExprDict:
		d, _ := exprs.Dict(id)
		p.write("{")
		for i := range d.Values {
			if i > 0 {
				p.write(", ")
			}
			if !d.Keys[i].IsValid() {
				p.write("**")
				p.expr(d.Values[i], precBitOr)
				continue
			}
			p.expr(d.Keys[i], precLambda)
			p.write(": ")
			p.expr(d.Values[i], precLambda)
		}
		p.write("}")
	case ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp, ast.ExprGenerator:
		p.comprehension(id, e.Kind)
	case ast.ExprLambda:
		d, _ := exprs.Lambda(id)
		p.write("lambda")
		if args := FormatArguments(p.b, d.Args); args != "" {
			p.write(" ", args)
		}
		p.write(": ")
		p.expr(d.Body, precLambda)
	case ast.ExprIfExp:
		d, _ := exprs.IfExp(id)
		p.expr(d.Body, precOr)
		p.write(" if ")
		p.expr(d.Test, precOr)
		p.write(" else ")
		p.expr(d.Orelse, precLambda)
	case ast.ExprYield:
		d, _ := exprs.Value(id)
		p.write("yield")
		if d.Value.IsValid() {
			p.write(" ")
			p.expr(d.Value, precLambda)
		}
	case ast.ExprYieldFrom:
		d, _ := exprs.Value(id)
		p.write("yield from ")
		p.expr(d.Value, precLambda)
	case ast.ExprAwait:
		d, _ := exprs.Value(id)
		p.write("await ")
		p.expr(d.Value, precPrimary)
	case ast.ExprNamed:
		d, _ := exprs.NamedExpr(id)
		p.expr(d.Target, precAtom)
		p.write(" := ")
		p.expr(d.Value, precLambda)
	default:
		p.write("<", e.Kind.String(), ">")
	}
}

func (p *exprPrinter) sep(n *int) {
	if *n > 0 {
		p.write(", ")
	}
	*n++
}

func (p *exprPrinter) elts(ids []ast.ExprID, minPrec int) {
	for i, id := range ids {
		if i > 0 {
			p.write(", ")
		}
		p.expr(id, minPrec)
	}
}

func (p *exprPrinter) optional(id ast.ExprID) {
	if id.IsValid() {
		p.expr(id, precLambda)
	}
}

func (p *exprPrinter) keyword(kw ast.Keyword) {
	if kw.Name == source.NoStringID {
		p.write("**")
		p.expr(kw.Value, precBitOr)
		return
	}
	p.write(p.name(kw.Name), "=")
	p.expr(kw.Value, precLambda)
}

// target печатает цель for без скобок у кортежа: `for a, b in x`.
func (p *exprPrinter) target(id ast.ExprID) {
	if tup, ok := p.b.Exprs.Seq(id); ok && p.b.Exprs.Get(id).Kind == ast.ExprTuple && len(tup.Elts) > 0 {
		p.elts(tup.Elts, precBitOr)
		if len(tup.Elts) == 1 {
			p.write(",")
		}
		return
	}
	p.expr(id, precBitOr)
}

func (p *exprPrinter) comprehension(id ast.ExprID, kind ast.ExprKind) {
	d, _ := p.b.Exprs.Comp(id)
	open, closing := "[", "]"
	switch kind {
	case ast.ExprSetComp, ast.ExprDictComp:
		open, closing = "{", "}"
	case ast.ExprGenerator:
		open, closing = "(", ")"
	}
	p.write(open)
	p.expr(d.Elt, precLambda)
	if kind == ast.ExprDictComp {
		p.write(": ")
		p.expr(d.Value, precLambda)
	}
	for _, g := range d.Generators {
		if g.IsAsync {
			p.write(" async")
		}
		p.write(" for ")
		p.target(g.Target)
		p.write(" in ")
		p.expr(g.Iter, precOr)
		for _, cond := range g.Ifs {
			p.write(" if ")
			p.expr(cond, precOr)
		}
	}
	p.write(closing)
}

// FormatArguments renders a parameter list without the surrounding parentheses.
func FormatArguments(b *ast.Builder, args ast.Arguments) string {
	var parts []string
	arg := func(a ast.Arg, prefix string) string {
		s := prefix + b.Name(a.Name)
		if a.Annotation.IsValid() {
			s += ": " + formatExprAt(b, a.Annotation, precLambda)
		}
		if a.Default.IsValid() {
			if a.Annotation.IsValid() {
				s += " = "
			} else {
				s += "="
			}
			s += formatExprAt(b, a.Default, precLambda)
		}
		return s
	}
	for _, a := range args.PosOnly {
		parts = append(parts, arg(a, ""))
	}
	if len(args.PosOnly) > 0 {
		parts = append(parts, "/")
	}
	for _, a := range args.Args {
		parts = append(parts, arg(a, ""))
	}
	switch {
	case args.Vararg != nil:
		parts = append(parts, arg(*args.Vararg, "*"))
	case len(args.KwOnly) > 0:
		parts = append(parts, "*")
	}
	for _, a := range args.KwOnly {
		parts = append(parts, arg(a, ""))
	}
	if args.Kwarg != nil {
		parts = append(parts, arg(*args.Kwarg, "**"))
	}
	return strings.Join(parts, ", ")
}

func formatExprAt(b *ast.Builder, id ast.ExprID, minPrec int) string {
	p := exprPrinter{b: b}
	p.expr(id, minPrec)
	return p.sb.String()
}

func formatExprList(b *ast.Builder, ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatExprAt(b, id, precLambda)
	}
	return strings.Join(parts, ", ")
}
