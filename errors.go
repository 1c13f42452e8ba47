package pyparse

import (
	"fmt"

	"pyparse/internal/diag"
	"pyparse/internal/source"
)

// ParseError is the single structured failure of a parse call.
// Err holds the typed directive error (*directive.AlignmentError,
// *directive.PlacementError, *directive.InternalError) when there is one.
type ParseError struct {
	Code        diag.Code
	Message     string
	Pos         source.LineCol // zero when the failure has no source location
	Span        source.Span
	Diagnostics []diag.Diagnostic
	Err         error
}

func (e *ParseError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Pos, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(fs *source.FileSet, bag *diag.Bag, cause error) *ParseError {
	items := bag.Items()
	pe := &ParseError{
		Diagnostics: append([]diag.Diagnostic(nil), items...),
		Err:         cause,
	}
	first, ok := firstError(items)
	if !ok {
		pe.Code = diag.UnknownCode
		pe.Message = "parse failed"
		if cause != nil {
			pe.Message = cause.Error()
		}
		return pe
	}
	pe.Code = first.Code
	pe.Message = first.Message
	pe.Span = first.Primary
	if !first.Code.IsInternal() && int(first.Primary.File) < fs.Len() {
		pe.Pos = fs.Get(first.Primary.File).Position(first.Primary.Start)
	}
	return pe
}

func firstError(items []diag.Diagnostic) (diag.Diagnostic, bool) {
	for _, d := range items {
		if d.Severity == diag.SevError {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}
