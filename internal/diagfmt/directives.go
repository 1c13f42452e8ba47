package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"pyparse/internal/directive"
)

// OccurrenceJSON is one directive in the JSON listing.
type OccurrenceJSON struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	CommentLine uint32 `json:"comment_line"`
	CommentCol  uint32 `json:"comment_col"`
	Statement   string `json:"statement"`
	StmtLine    uint32 `json:"stmt_line"`
	StmtCol     uint32 `json:"stmt_col"`
}

// FormatDirectivesText prints one directive per line in registry order:
//
//	path:line:col  name  -> Kind at line:col
func FormatDirectivesText(w io.Writer, occs []directive.Occurrence) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range occs {
		fmt.Fprintf(tw, "%s:%d:%d\t%s\t-> %s at %d:%d\n",
			o.Path, o.Comment.Line, o.Comment.Col,
			o.Name,
			o.Kind, o.Statement.Line, o.Statement.Col)
	}
	return tw.Flush()
}

// FormatDirectivesJSON writes the directive listing as a JSON array.
func FormatDirectivesJSON(w io.Writer, occs []directive.Occurrence) error {
	out := make([]OccurrenceJSON, len(occs))
	for i, o := range occs {
		out[i] = OccurrenceJSON{
			Name:        o.Name,
			Path:        o.Path,
			CommentLine: o.Comment.Line,
			CommentCol:  o.Comment.Col,
			Statement:   o.Kind.String(),
			StmtLine:    o.Statement.Line,
			StmtCol:     o.Statement.Col,
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
