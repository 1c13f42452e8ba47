package directive

import (
	"slices"

	"pyparse/internal/source"
)

// Resolution is the merged directive list for one statement location.
type Resolution struct {
	Above []Comment
	End   []Comment
}

// Merged returns above directives followed by the end directives.
func (r Resolution) Merged() []Comment {
	return slices.Concat(r.Above, r.End)
}

// Resolve validates an above-run against the statement it targets and
// merges it with the optional end comment. Only the first comment of the
// run is checked: a run shares one column by construction.
func Resolve(above []Comment, end *Comment, stmt source.Span, stmtLoc source.LineCol) (Resolution, error) {
	if len(above) > 0 && above[0].Loc.Col != stmtLoc.Col {
		return Resolution{}, &AlignmentError{
			Name:          above[0].Name,
			Comment:       above[0].Loc,
			Statement:     stmtLoc,
			CommentSpan:   above[0].Span,
			StatementSpan: stmt,
		}
	}
	res := Resolution{Above: slices.Clone(above)}
	if end != nil {
		res.End = []Comment{*end}
	}
	return res, nil
}
