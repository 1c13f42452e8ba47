package directive

import (
	"errors"
	"fmt"
	"testing"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/source"
)

func TestDiagnosticMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code diag.Code
	}{
		{"alignment", &AlignmentError{Comment: source.LineCol{Line: 1, Col: 5}, Statement: source.LineCol{Line: 2, Col: 1}}, diag.DirAlignment},
		{"placement", &PlacementError{Comment: source.LineCol{Line: 1, Col: 1}, Reason: "does not apply to any statement"}, diag.DirPlacement},
		{"distribution", &InternalError{Op: "distribute", Err: ast.ErrNoDirectiveSlot}, diag.InternalDistribution},
		{"double attach", &InternalError{Op: "attach", Err: fmt.Errorf("x: %w", ast.ErrAlreadyAttached)}, diag.InternalDoubleAttach},
		{"wrapped", fmt.Errorf("file a.py: %w", &PlacementError{Reason: "r"}), diag.DirPlacement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Diagnostic(tt.err)
			if !ok || d.Code != tt.code {
				t.Fatalf("Diagnostic(%v) = %v, %v; want code %v", tt.err, d.Code, ok, tt.code)
			}
			if d.Severity != diag.SevError {
				t.Fatalf("severity = %v", d.Severity)
			}
		})
	}
	if _, ok := Diagnostic(errors.New("other")); ok {
		t.Fatalf("foreign errors must not map")
	}
}

func TestAlignmentDiagnosticHasNote(t *testing.T) {
	d, _ := Diagnostic(&AlignmentError{StatementSpan: source.Span{Start: 4, End: 9}})
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 4 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestPlacementErrorMessage(t *testing.T) {
	err := &PlacementError{Comment: source.LineCol{Line: 3, Col: 2}, Reason: "does not apply to any statement"}
	want := "config comment at line 3 column 2 does not apply to any statement"
	if err.Error() != want {
		t.Fatalf("got %q", err.Error())
	}
}
