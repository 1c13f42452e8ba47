// Package pyparse parses Python-like source into an arena-backed syntax tree
// and attaches prefixed directive comments to simple statements.
package pyparse

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/driver"
	"pyparse/internal/lexer"
	"pyparse/internal/parser"
	"pyparse/internal/source"
)

const (
	defaultFileName       = "<input>"
	defaultMaxDiagnostics = 100
)

type config struct {
	prefix         *string
	fileName       string
	maxDiagnostics int
}

// Option configures one parse call.
type Option func(*config)

// WithDirectivePrefix enables directive recognition for comments whose body
// starts with prefix. Without it directives are disabled.
func WithDirectivePrefix(prefix string) Option {
	return func(c *config) { c.prefix = &prefix }
}

// WithFileName sets the name used in positions and diagnostics.
func WithFileName(name string) Option {
	return func(c *config) { c.fileName = name }
}

// WithMaxDiagnostics caps collected diagnostics; n <= 0 means no limit.
func WithMaxDiagnostics(n int) Option {
	return func(c *config) { c.maxDiagnostics = n }
}

func newConfig(opts []Option) config {
	cfg := config{fileName: defaultFileName, maxDiagnostics: defaultMaxDiagnostics}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) filter() directive.Filter {
	if c.prefix == nil {
		return directive.Disabled()
	}
	return directive.WithPrefix(*c.prefix)
}

// ParseProgram parses a whole program and attaches directives.
// On failure the returned error is a *ParseError and no tree is returned.
func ParseProgram(src string, opts ...Option) (*Program, error) {
	cfg := newConfig(opts)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(cfg.fileName, []byte(src))

	res := driver.ParseSource(context.Background(), fs, fileID, driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		Filter:         cfg.filter(),
	})
	if res.Failed() {
		return nil, newParseError(fs, res.Bag, res.AttachErr)
	}
	return &Program{
		Builder: res.Builder,
		File:    res.Builder.Files.Get(res.FileID),
		FileID:  res.FileID,
		Source:  res.File,
	}, nil
}

// ParseStatement parses interactive input: one compound statement, or one
// line of simple statements separated by ';'. Empty input yields an empty
// program. Directives attach exactly as in ParseProgram.
func ParseStatement(src string, opts ...Option) (*Program, error) {
	p, err := ParseProgram(src, opts...)
	if err != nil {
		return nil, err
	}
	body := p.Body()
	if len(body) < 2 {
		return p, nil
	}
	first := p.Stmt(body[0])
	line := p.Position(body[0]).Line
	for _, id := range body[1:] {
		if first.Kind.CarriesDirectives() && p.Position(id).Line == line {
			continue
		}
		d := diag.NewError(diag.SynMultipleStatements, p.Stmt(id).Span, "multiple statements found while compiling a single statement")
		return nil, &ParseError{
			Code:        d.Code,
			Message:     d.Message,
			Pos:         p.Position(id),
			Span:        d.Primary,
			Diagnostics: []diag.Diagnostic{d},
		}
	}
	return p, nil
}

// ParseExpression parses a single expression. The directive prefix is
// accepted for symmetry with ParseProgram; expressions have no directive slot.
func ParseExpression(src string, opts ...Option) (*Expression, error) {
	cfg := newConfig(opts)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(cfg.fileName, []byte(src))
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(cfg.maxDiagnostics, 0))
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}
	bag := diag.NewBag(cfg.maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{Stmts: 1}, nil)
	res := parser.ParseExpr(context.Background(), fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	if res.Failed || bag.HasErrors() {
		return nil, newParseError(fs, bag, nil)
	}
	return &Expression{Builder: builder, Expr: res.Expr, Source: file}, nil
}
