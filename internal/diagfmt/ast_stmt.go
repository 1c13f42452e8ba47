package diagfmt

import (
	"strings"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// labeledSuite is one nested statement list of a compound statement.
type labeledSuite struct {
	label string
	body  []ast.StmtID
}

// FormatStmtHeader renders a statement as its first source line: the whole
// statement for simple kinds, the header up to ':' for compound kinds.
func FormatStmtHeader(b *ast.Builder, id ast.StmtID) string {
	stmts := b.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return "<?>"
	}
	expr := func(e ast.ExprID) string { return formatExprAt(b, e, precLowest) }

	switch stmt.Kind {
	case ast.StmtPass:
		return "pass"
	case ast.StmtBreak:
		return "break"
	case ast.StmtContinue:
		return "continue"
	case ast.StmtExpr:
		d, _ := stmts.Value(id)
		return expr(d.Value)
	case ast.StmtReturn:
		d, _ := stmts.Value(id)
		if !d.Value.IsValid() {
			return "return"
		}
		return "return " + expr(d.Value)
	case ast.StmtDelete:
		d, _ := stmts.Delete(id)
		return "del " + formatExprList(b, d.Targets)
	case ast.StmtAssign:
		d, _ := stmts.Assign(id)
		var sb strings.Builder
		for _, t := range d.Targets {
			sb.WriteString(expr(t))
			sb.WriteString(" = ")
		}
		sb.WriteString(expr(d.Value))
		return sb.String()
	case ast.StmtAugAssign:
		d, _ := stmts.AugAssign(id)
		return expr(d.Target) + " " + d.Op.String() + "= " + expr(d.Value)
	case ast.StmtAnnAssign:
		d, _ := stmts.AnnAssign(id)
		s := expr(d.Target) + ": " + expr(d.Annotation)
		if d.Value.IsValid() {
			s += " = " + expr(d.Value)
		}
		return s
	case ast.StmtRaise:
		d, _ := stmts.Raise(id)
		s := "raise"
		if d.Exc.IsValid() {
			s += " " + expr(d.Exc)
		}
		if d.Cause.IsValid() {
			s += " from " + expr(d.Cause)
		}
		return s
	case ast.StmtImport, ast.StmtImportFrom:
		d, _ := stmts.Import(id)
		names := make([]string, len(d.Names))
		for i, alias := range d.Names {
			names[i] = b.Name(alias.Name)
			if alias.AsName != source.NoStringID {
				names[i] += " as " + b.Name(alias.AsName)
			}
		}
		if stmt.Kind == ast.StmtImport {
			return "import " + strings.Join(names, ", ")
		}
		return "from " + strings.Repeat(".", int(d.Level)) + b.Name(d.Module) + " import " + strings.Join(names, ", ")
	case ast.StmtGlobal, ast.StmtNonlocal:
		d, _ := stmts.Names(id)
		names := make([]string, len(d.Names))
		for i, n := range d.Names {
			names[i] = b.Name(n)
		}
		return strings.ToLower(stmt.Kind.String()) + " " + strings.Join(names, ", ")
	case ast.StmtAssert:
		d, _ := stmts.Assert(id)
		s := "assert " + expr(d.Test)
		if d.Msg.IsValid() {
			s += ", " + expr(d.Msg)
		}
		return s
	case ast.StmtIf, ast.StmtWhile:
		d, _ := stmts.Cond(id)
		return strings.ToLower(stmt.Kind.String()) + " " + expr(d.Test) + ":"
	case ast.StmtFor:
		d, _ := stmts.For(id)
		p := exprPrinter{b: b}
		p.target(d.Target)
		return asyncPrefix(d.IsAsync) + "for " + p.sb.String() + " in " + formatExprAt(b, d.Iter, precLambda) + ":"
	case ast.StmtFunctionDef:
		d, _ := stmts.FunctionDef(id)
		s := asyncPrefix(d.IsAsync) + "def " + b.Name(d.Name) + "(" + FormatArguments(b, d.Args) + ")"
		if d.Returns.IsValid() {
			s += " -> " + expr(d.Returns)
		}
		return s + ":"
	case ast.StmtClassDef:
		d, _ := stmts.ClassDef(id)
		s := "class " + b.Name(d.Name)
		if len(d.Bases)+len(d.Keywords) > 0 {
			p := exprPrinter{b: b}
			n := 0
			for _, base := range d.Bases {
				p.sep(&n)
				p.expr(base, precLambda)
			}
			for _, kw := range d.Keywords {
				p.sep(&n)
				p.keyword(kw)
			}
			s += "(" + p.sb.String() + ")"
		}
		return s + ":"
	case ast.StmtWith:
		d, _ := stmts.With(id)
		items := make([]string, len(d.Items))
		for i, item := range d.Items {
			items[i] = formatExprAt(b, item.Context, precLambda)
			if item.Vars.IsValid() {
				items[i] += " as " + formatExprAt(b, item.Vars, precBitOr)
			}
		}
		return asyncPrefix(d.IsAsync) + "with " + strings.Join(items, ", ") + ":"
	case ast.StmtTry:
		return "try:"
	}
	return "<" + stmt.Kind.String() + ">"
}

func asyncPrefix(isAsync bool) string {
	if isAsync {
		return "async "
	}
	return ""
}

// stmtDecorators returns the decorator expressions of def and class.
func stmtDecorators(b *ast.Builder, id ast.StmtID) []ast.ExprID {
	if d, ok := b.Stmts.FunctionDef(id); ok {
		return d.Decorators
	}
	if d, ok := b.Stmts.ClassDef(id); ok {
		return d.Decorators
	}
	return nil
}

// stmtSuites lists nested suites with the clause that introduces them.
func stmtSuites(b *ast.Builder, id ast.StmtID) []labeledSuite {
	stmts := b.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return nil
	}
	var out []labeledSuite
	add := func(label string, body []ast.StmtID) {
		if len(body) > 0 {
			out = append(out, labeledSuite{label: label, body: body})
		}
	}
	switch stmt.Kind {
	case ast.StmtIf, ast.StmtWhile:
		d, _ := stmts.Cond(id)
		add("body", d.Body)
		add("else", d.Orelse)
	case ast.StmtFor:
		d, _ := stmts.For(id)
		add("body", d.Body)
		add("else", d.Orelse)
	case ast.StmtFunctionDef, ast.StmtClassDef, ast.StmtWith:
		for _, suite := range stmts.Suites(id) {
			add("body", suite)
		}
	case ast.StmtTry:
		d, _ := stmts.Try(id)
		add("body", d.Body)
		for _, h := range d.Handlers {
			label := "except"
			if h.Type.IsValid() {
				label += " " + formatExprAt(b, h.Type, precLambda)
			}
			if h.Name != source.NoStringID {
				label += " as " + b.Name(h.Name)
			}
			add(label, h.Body)
		}
		add("else", d.Orelse)
		add("finally", d.Finalbody)
	}
	return out
}

func directiveNames(b *ast.Builder, id ast.StmtID) []string {
	ds := b.Stmts.Directives(id)
	if len(ds) == 0 {
		return nil
	}
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = b.Name(d.Name)
	}
	return names
}
