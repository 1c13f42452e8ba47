package directive

import (
	"errors"
	"fmt"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/source"
)

// ErrInternal marks defects in the attachment pass itself. It is never
// produced by user input accepted by the grammar.
var ErrInternal = errors.New("directive: internal invariant violated")

// AlignmentError: a directive's column differs from the statement it targets.
type AlignmentError struct {
	Name          string
	Comment       source.LineCol
	Statement     source.LineCol
	CommentSpan   source.Span
	StatementSpan source.Span
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf(
		"config comment at top must have the same indentation with what it applies, comment at %s, statement at %s",
		e.Comment, e.Statement,
	)
}

// PlacementError: a directive sits where no statement can own it.
type PlacementError struct {
	Name    string
	Comment source.LineCol
	Span    source.Span
	Reason  string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("config comment at %s %s", e.Comment, e.Reason)
}

// InternalError wraps a broken invariant; errors.Is(err, ErrInternal) holds.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("directive: internal error in %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Err}
}

// Diagnostic converts an attachment error into a diagnostic.
func Diagnostic(err error) (diag.Diagnostic, bool) {
	var (
		align     *AlignmentError
		placement *PlacementError
		internal  *InternalError
	)
	switch {
	case errors.As(err, &align):
		d := diag.NewError(diag.DirAlignment, align.CommentSpan, align.Error())
		return d.WithNote(align.StatementSpan, "statement this comment would apply to"), true
	case errors.As(err, &placement):
		return diag.NewError(diag.DirPlacement, placement.Span, placement.Error()), true
	case errors.As(err, &internal):
		code := diag.InternalDistribution
		if errors.Is(internal.Err, ast.ErrAlreadyAttached) {
			code = diag.InternalDoubleAttach
		}
		return diag.NewError(code, source.Span{}, internal.Error()), true
	}
	return diag.Diagnostic{}, false
}
