package lexer

import (
	"pyparse/internal/diag"
	"pyparse/internal/source"
)

// maxTokenLength bounds a single token; longer input is reported and skipped.
const maxTokenLength = 1 << 16

// tabSize is the column a tab advances to a multiple of.
const tabSize = 8

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
