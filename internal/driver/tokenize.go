package driver

import (
	"pyparse/internal/diag"
	"pyparse/internal/lexer"
	"pyparse/internal/source"
	"pyparse/internal/token"
)

type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Comments []token.Trivia
	Bag      *diag.Bag
}

// Tokenize reads path and returns its significant token stream up to EOF.
// Lexical errors land in Bag; the stream still ends with EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet:  fs,
		File:     file,
		Tokens:   tokens,
		Comments: lx.Comments(),
		Bag:      bag,
	}, nil
}
