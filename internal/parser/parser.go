package parser

import (
	"context"
	"fmt"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/lexer"
	"pyparse/internal/source"
	"pyparse/internal/token"
	"pyparse/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
	// Failed is set when the pass stopped on a syntax or lexical error.
	Failed bool
}

type ExprResult struct {
	Expr   ast.ExprID
	Bag    *diag.Bag
	Failed bool
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего значимого токена
}

// bailout прерывает разбор на первой ошибке; ловится в run.
type bailout struct{}

// ParseFile разбирает программу целиком. Требует уже созданный lexer.
// Первая синтаксическая ошибка останавливает проход: она уже в Reporter,
// Result.Failed выставлен, а File содержит то, что успели построить.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "parse_file", trace.ParentSpan(ctx))
	p := newParser(fs, lx, arenas, opts)
	p.file = arenas.Files.New(p.emptySpan())

	failed := p.run(p.parseFileBody)
	span.WithExtra("stmts", fmt.Sprint(len(arenas.Files.Get(p.file).Body))).End(statusDetail(failed))
	return Result{
		File:   p.file,
		Bag:    bagOf(opts.Reporter),
		Failed: failed,
	}
}

// ParseExpr разбирает одиночное выражение (eval input), допускаются
// завершающие переводы строк.
func ParseExpr(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) ExprResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "parse_expr", trace.ParentSpan(ctx))
	p := newParser(fs, lx, arenas, opts)

	expr := ast.NoExprID
	failed := p.run(func() {
		expr = p.parseTestList(false)
		for p.at(token.Newline) {
			p.advance()
		}
		if !p.at(token.EOF) {
			p.fail(diag.SynTrailingInput, p.peek().Span, "unexpected "+describe(p.peek())+" after expression")
		}
	})
	span.End(statusDetail(failed))
	if failed {
		expr = ast.NoExprID
	}
	return ExprResult{
		Expr:   expr,
		Bag:    bagOf(opts.Reporter),
		Failed: failed,
	}
}

func newParser(fs *source.FileSet, lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	p := &Parser{
		lx:     lx,
		arenas: arenas,
		fs:     fs,
		opts:   opts,
	}
	p.lastSpan = p.emptySpan()
	return p
}

// run выполняет fn и превращает bailout в флаг неудачи.
// Любая другая паника пробрасывается дальше.
func (p *Parser) run(fn func()) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			failed = true
		}
	}()
	fn()
	return p.opts.CurrentErrors > 0
}

// parseFileBody — file_input: (NEWLINE | stmt)* ENDMARKER
func (p *Parser) parseFileBody() {
	file := p.arenas.Files.Get(p.file)
	start := p.peek().Span
	for !p.at(token.EOF) {
		switch {
		case p.at(token.Newline):
			p.advance()
		case p.at(token.Indent):
			p.fail(diag.SynUnexpectedIndent, p.peek().Span, "unexpected indent")
		default:
			file.Body = append(file.Body, p.parseStmt()...)
		}
	}
	file.Span = start.Cover(p.lastSpan)
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

func statusDetail(failed bool) string {
	if failed {
		return "failed"
	}
	return "ok"
}
