package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/lexer"
	"pyparse/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(context.Background(), fs, lx, builder, Options{MaxErrors: 100, Reporter: reporter})
	return builder, res
}

// mustParse разбирает input и падает при любой диагностике.
func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	b, res := parseSource(t, input)
	if res.Failed || res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return b, b.Files.Get(res.File)
}

func parseExprSource(t *testing.T, input string) (*ast.Builder, ExprResult) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("expr.py", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	return builder, ParseExpr(context.Background(), fs, lx, builder, Options{Reporter: reporter})
}

func stmtKinds(b *ast.Builder, ids []ast.StmtID) []ast.StmtKind {
	out := make([]ast.StmtKind, len(ids))
	for i, id := range ids {
		out[i] = b.Stmts.Get(id).Kind
	}
	return out
}

// dumpExpr prints an expression as an s-expression.
func dumpExpr(b *ast.Builder, id ast.ExprID) string {
	if !id.IsValid() {
		return "_"
	}
	e := b.Exprs
	x := e.Get(id)
	list := func(ids []ast.ExprID) string {
		parts := make([]string, len(ids))
		for i, v := range ids {
			parts[i] = dumpExpr(b, v)
		}
		return strings.Join(parts, " ")
	}
	switch x.Kind {
	case ast.ExprName:
		d, _ := e.Name(id)
		return b.Name(d.Name)
	case ast.ExprConst:
		d, _ := e.Const(id)
		if d.Raw == source.NoStringID {
			return d.Kind.String()
		}
		return b.Name(d.Raw)
	case ast.ExprBoolOp:
		d, _ := e.BoolOp(id)
		return "(" + d.Op.String() + " " + list(d.Values) + ")"
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return "(" + d.Op.String() + " " + dumpExpr(b, d.Left) + " " + dumpExpr(b, d.Right) + ")"
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		return "(" + d.Op.String() + " " + dumpExpr(b, d.Operand) + ")"
	case ast.ExprCompare:
		d, _ := e.Compare(id)
		var sb strings.Builder
		sb.WriteString("(cmp " + dumpExpr(b, d.Left))
		for i, op := range d.Ops {
			sb.WriteString(" " + op.String() + " " + dumpExpr(b, d.Comparators[i]))
		}
		return sb.String() + ")"
	case ast.ExprCall:
		d, _ := e.Call(id)
		parts := []string{"call", dumpExpr(b, d.Func)}
		for _, a := range d.Args {
			parts = append(parts, dumpExpr(b, a))
		}
		for _, kw := range d.Keywords {
			if kw.Name == source.NoStringID {
				parts = append(parts, "**"+dumpExpr(b, kw.Value))
			} else {
				parts = append(parts, b.Name(kw.Name)+"="+dumpExpr(b, kw.Value))
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprAttribute:
		d, _ := e.Attribute(id)
		return dumpExpr(b, d.Value) + "." + b.Name(d.Attr)
	case ast.ExprSubscript:
		d, _ := e.Subscript(id)
		return "(idx " + dumpExpr(b, d.Value) + " " + dumpExpr(b, d.Index) + ")"
	case ast.ExprSlice:
		d, _ := e.Slice(id)
		return "(slice " + dumpExpr(b, d.Lower) + " " + dumpExpr(b, d.Upper) + " " + dumpExpr(b, d.Step) + ")"
	case ast.ExprStarred:
		d, _ := e.Value(id)
		return "*" + dumpExpr(b, d.Value)
	case ast.ExprYield, ast.ExprYieldFrom, ast.ExprAwait:
		d, _ := e.Value(id)
		return "(" + x.Kind.String() + " " + dumpExpr(b, d.Value) + ")"
	case ast.ExprTuple, ast.ExprList, ast.ExprSet:
		d, _ := e.Seq(id)
		return "(" + strings.ToLower(x.Kind.String()) + " " + list(d.Elts) + ")"
	case ast.ExprDict:
		d, _ := e.Dict(id)
		parts := []string{"dict"}
		for i, k := range d.Keys {
			if k.IsValid() {
				parts = append(parts, dumpExpr(b, k)+":"+dumpExpr(b, d.Values[i]))
			} else {
				parts = append(parts, "**"+dumpExpr(b, d.Values[i]))
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp, ast.ExprGenerator:
		d, _ := e.Comp(id)
		parts := []string{strings.ToLower(x.Kind.String()), dumpExpr(b, d.Elt)}
		if d.Value.IsValid() {
			parts = append(parts, dumpExpr(b, d.Value))
		}
		for _, g := range d.Generators {
			gen := "(for " + dumpExpr(b, g.Target) + " " + dumpExpr(b, g.Iter)
			for _, cond := range g.Ifs {
				gen += " (if " + dumpExpr(b, cond) + ")"
			}
			parts = append(parts, gen+")")
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprLambda:
		d, _ := e.Lambda(id)
		return "(lambda " + dumpArgs(b, d.Args) + " " + dumpExpr(b, d.Body) + ")"
	case ast.ExprIfExp:
		d, _ := e.IfExp(id)
		return "(ifexp " + dumpExpr(b, d.Test) + " " + dumpExpr(b, d.Body) + " " + dumpExpr(b, d.Orelse) + ")"
	case ast.ExprNamed:
		d, _ := e.NamedExpr(id)
		return "(:= " + dumpExpr(b, d.Target) + " " + dumpExpr(b, d.Value) + ")"
	}
	return "?"
}

func dumpArgs(b *ast.Builder, args ast.Arguments) string {
	var parts []string
	one := func(prefix string, a ast.Arg) {
		s := prefix + b.Name(a.Name)
		if a.Annotation.IsValid() {
			s += ":" + dumpExpr(b, a.Annotation)
		}
		if a.Default.IsValid() {
			s += "=" + dumpExpr(b, a.Default)
		}
		parts = append(parts, s)
	}
	for _, a := range args.PosOnly {
		one("", a)
	}
	if len(args.PosOnly) > 0 {
		parts = append(parts, "/")
	}
	for _, a := range args.Args {
		one("", a)
	}
	if args.Vararg != nil {
		one("*", *args.Vararg)
	} else if len(args.KwOnly) > 0 {
		parts = append(parts, "*")
	}
	for _, a := range args.KwOnly {
		one("", a)
	}
	if args.Kwarg != nil {
		one("**", *args.Kwarg)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
