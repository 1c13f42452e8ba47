package pyparse

import (
	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// Program is a successfully parsed module with directives attached.
type Program struct {
	Builder *ast.Builder
	File    *ast.File
	FileID  ast.FileID
	Source  *source.File
}

// Body returns the top-level statements in source order.
func (p *Program) Body() []ast.StmtID {
	return p.File.Body
}

// Stmt returns the statement node for id, or nil.
func (p *Program) Stmt(id ast.StmtID) *ast.Stmt {
	return p.Builder.Stmts.Get(id)
}

// Directives returns the directive identifiers attached to id in source order.
// Compound statements and statements without directives yield an empty list.
func (p *Program) Directives(id ast.StmtID) []string {
	ds := p.Builder.Stmts.Directives(id)
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = p.Builder.Name(d.Name)
	}
	return out
}

// Walk visits every statement in source order; returning false skips the
// statement's nested suites.
func (p *Program) Walk(fn func(id ast.StmtID, depth int) bool) {
	ast.WalkStmts(p.Builder.Stmts, p.File.Body, fn)
}

// Position returns the start location of a statement.
func (p *Program) Position(id ast.StmtID) source.LineCol {
	stmt := p.Stmt(id)
	if stmt == nil {
		return source.LineCol{}
	}
	return p.Source.Position(stmt.Span.Start)
}

// Expression is a successfully parsed standalone expression.
type Expression struct {
	Builder *ast.Builder
	Expr    ast.ExprID
	Source  *source.File
}

// Kind returns the kind of the root expression node.
func (e *Expression) Kind() ast.ExprKind {
	return e.Builder.Exprs.Get(e.Expr).Kind
}
