package fuzztests

import (
	"context"
	"testing"
	"time"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/driver"
	"pyparse/internal/lexer"
	"pyparse/internal/parser"
	"pyparse/internal/source"
	"pyparse/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		reporter := &diag.BagReporter{Bag: diag.NewBag(128)}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseFile(context.Background(), fs, lx, builder, parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})
		if res.Failed {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzAttachDirectives runs the whole pipeline with directives enabled;
// a successful attachment must place every directive on a simple statement.
func FuzzAttachDirectives(f *testing.F) {
	addCorpusSeeds(f)
	opts := driver.Options{MaxDiagnostics: 128, Filter: directive.WithPrefix("nac3:")}
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		fs := source.NewFileSet()
		res := driver.ParseSource(context.Background(), fs, fs.AddVirtual("fuzz.py", input), opts)
		if res.Failed() {
			return
		}
		for _, pl := range res.Placements {
			stmt := res.Builder.Stmts.Get(pl.Stmt)
			if stmt == nil || !stmt.Kind.CarriesDirectives() {
				t.Fatalf("directive %q placed on %v\ninput: %q", pl.Name, stmt, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// отдельные случаи для восстановления после ошибок
	f.Add([]byte("if x:\npass\n"))                // missing indent
	f.Add([]byte("def f(:\n"))                    // broken parameter list
	f.Add([]byte("x = (((((((((\n"))              // unclosed brackets
	f.Add([]byte("  x\n y\n"))                    // inconsistent dedent
	f.Add([]byte("with a as b, c as:\n    pass")) // missing target
	f.Add([]byte("'''unterminated"))              // open string

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.py", input))
			reporter := &diag.BagReporter{Bag: diag.NewBag(128)}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})
			_ = parser.ParseFile(ctx, fs, lx, ast.NewBuilder(ast.Hints{}, nil), parser.Options{
				Reporter:  reporter,
				MaxErrors: 128,
			})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
