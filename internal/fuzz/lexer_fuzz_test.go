package fuzztests

import (
	"testing"

	"pyparse/internal/diag"
	"pyparse/internal/lexer"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		for range 2*len(input) + 64 {
			tok := lx.Next()
			if tok.Kind == token.EOF || tok.Kind == token.Invalid {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF for %d bytes", len(input))
	})
}
