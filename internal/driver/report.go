package driver

import (
	"pyparse/internal/ast"
	"pyparse/internal/directive"
	"pyparse/internal/source"
)

// DirectiveEntry is one attached directive in a cached report.
type DirectiveEntry struct {
	Name        string
	CommentLine uint32
	CommentCol  uint32
	Kind        uint8 // ast.StmtKind
	StmtLine    uint32
	StmtCol     uint32
}

// DirectiveReport lists the directives of one file in attachment order.
type DirectiveReport struct {
	Path    string
	Entries []DirectiveEntry
}

func newDirectiveReport(path string, placements []directive.Placement) DirectiveReport {
	report := DirectiveReport{Path: path, Entries: make([]DirectiveEntry, 0, len(placements))}
	for _, p := range placements {
		report.Entries = append(report.Entries, DirectiveEntry{
			Name:        p.Name,
			CommentLine: p.Comment.Line,
			CommentCol:  p.Comment.Col,
			Kind:        uint8(p.Kind),
			StmtLine:    p.StmtLoc.Line,
			StmtCol:     p.StmtLoc.Col,
		})
	}
	return report
}

// Occurrences converts the report for a directive.Registry.
func (r DirectiveReport) Occurrences() []directive.Occurrence {
	out := make([]directive.Occurrence, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = directive.Occurrence{
			Name:      e.Name,
			Path:      r.Path,
			Comment:   source.LineCol{Line: e.CommentLine, Col: e.CommentCol},
			Kind:      ast.StmtKind(e.Kind),
			Statement: source.LineCol{Line: e.StmtLine, Col: e.StmtCol},
		}
	}
	return out
}
