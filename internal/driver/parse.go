package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/lexer"
	"pyparse/internal/observ"
	"pyparse/internal/parser"
	"pyparse/internal/source"
	"pyparse/internal/trace"
)

type ParseResult struct {
	Path       string
	FileSet    *source.FileSet
	File       *source.File // nil when the file could not be loaded
	Builder    *ast.Builder
	FileID     ast.FileID
	Bag        *diag.Bag
	Placements []directive.Placement
	AttachErr  error          // directive attachment failure, also in Bag
	Timing     *observ.Report // set with Options.Timings
}

// Failed reports whether the file produced no usable tree.
func (r *ParseResult) Failed() bool {
	return r.File == nil || r.Bag.HasErrors() || r.AttachErr != nil
}

// Parse loads filePath and runs lexing, parsing and directive attachment.
// The returned error covers I/O only; syntax and directive errors are in Bag.
func Parse(ctx context.Context, filePath string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSource(ctx, fs, fileID, opts), nil
}

// ParseSource parses a file already registered in fs.
func ParseSource(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *ParseResult {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.ParentSpan(ctx)).WithExtra("path", file.Path)
	ctx = trace.WithParent(ctx, span)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	res := &ParseResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Builder: ast.NewBuilder(ast.Hints{}, nil),
		Bag:     bag,
	}
	timer := observ.NewTimer()
	started := time.Now()
	stage := StageParse
	defer func() {
		if opts.Timings {
			report := timer.Report()
			res.Timing = &report
		}
		status := StatusDone
		if res.Failed() {
			status = StatusError
		}
		emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: status, Err: res.AttachErr, Elapsed: time.Since(started)})
		span.End(string(status))
	}()

	emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusWorking})
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("max diagnostics: %w", err))
	}
	idx := timer.Begin("parse")
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(ctx, fs, lx, res.Builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	res.FileID = parsed.File
	timer.End(idx, strconv.Itoa(len(res.Builder.Files.Get(parsed.File).Body))+" top-level statements")
	if parsed.Failed || bag.HasErrors() {
		return res
	}

	stage = StageAttach
	emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusWorking})
	idx = timer.Begin("attach")
	comments := directive.Collect(opts.Filter, file, lx.Comments())
	res.Placements, res.AttachErr = directive.Attach(ctx, res.Builder, res.FileID, file, comments)
	timer.End(idx, strconv.Itoa(len(res.Placements))+" directives")
	if res.AttachErr != nil {
		if d, ok := directive.Diagnostic(res.AttachErr); ok {
			d.Primary.File = fileID
			bag.Add(d)
		}
	}
	return res
}
