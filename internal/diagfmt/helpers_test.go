package diagfmt

import (
	"context"
	"testing"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/lexer"
	"pyparse/internal/parser"
	"pyparse/internal/source"
)

type parsed struct {
	fs     *source.FileSet
	b      *ast.Builder
	fileID ast.FileID
}

// parseAttached разбирает input и раскладывает директивы с префиксом " nac3:".
func parseAttached(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	srcID := fs.AddVirtual("test.py", []byte(input))
	src := fs.Get(srcID)
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(src, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{Reporter: reporter})
	if res.Failed || bag.HasErrors() {
		t.Fatalf("parse failed for %q: %d diagnostics", input, bag.Len())
	}
	comments := directive.Collect(directive.WithPrefix(" nac3:"), src, lx.Comments())
	if _, err := directive.Attach(context.Background(), b, res.File, src, comments); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	return parsed{fs: fs, b: b, fileID: res.File}
}

func parseExpr(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	fs := source.NewFileSet()
	srcID := fs.AddVirtual("expr.py", []byte(input))
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(srcID), lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseExpr(context.Background(), fs, lx, b, parser.Options{Reporter: reporter})
	if res.Failed || bag.HasErrors() {
		t.Fatalf("parse failed for %q: %d diagnostics", input, bag.Len())
	}
	return b, res.Expr
}
