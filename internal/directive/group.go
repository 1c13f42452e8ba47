package directive

import (
	"slices"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// lineGroup is a maximal sequence of simple statements of one suite that
// follow each other on one physical line (`a = 1; b = 2`).
type lineGroup struct {
	stmts    []ast.StmtID
	span     source.Span    // first statement
	start    source.LineCol // first statement
	firstRow uint32
	lastRow  uint32 // row of the last statement's final token

	above []Comment
	end   []Comment // end comment, then block-end runs
}

// buildGroups walks every suite of body and returns the line groups
// ordered by their first statement.
func buildGroups(stmts *ast.Stmts, file *source.File, body []ast.StmtID) []*lineGroup {
	var groups []*lineGroup
	ast.WalkSuites(stmts, body, func(suite []ast.StmtID, _ int) {
		var cur *lineGroup
		for _, id := range suite {
			stmt := stmts.Get(id)
			if !stmt.Kind.CarriesDirectives() {
				cur = nil
				continue
			}
			start := file.Position(stmt.Span.Start)
			lastRow := start.Line
			if stmt.Span.End > stmt.Span.Start {
				lastRow = file.Position(stmt.Span.End - 1).Line
			}
			if cur != nil && start.Line == cur.lastRow {
				cur.stmts = append(cur.stmts, id)
				cur.lastRow = lastRow
				continue
			}
			cur = &lineGroup{
				stmts:    []ast.StmtID{id},
				span:     stmt.Span,
				start:    start,
				firstRow: start.Line,
				lastRow:  lastRow,
			}
			groups = append(groups, cur)
		}
	})
	slices.SortFunc(groups, func(a, b *lineGroup) int {
		return int(a.span.Start) - int(b.span.Start)
	})
	return groups
}

func (g *lineGroup) covers(row uint32) bool {
	return row >= g.firstRow && row <= g.lastRow
}
