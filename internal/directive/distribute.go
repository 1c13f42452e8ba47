package directive

import (
	"fmt"

	"pyparse/internal/ast"
)

// Distribute splits the directives of one physical line between its
// statements: the first gets above, the last gets end, interior statements
// get an empty list. A single statement gets above followed by end.
//
// Every statement must carry a directive slot; a compound kind here is a
// defect of the caller and yields an *InternalError.
func Distribute(stmts *ast.Stmts, line []ast.StmtID, above, end []ast.Directive) ([][]ast.Directive, error) {
	if len(line) == 0 {
		if len(above)+len(end) > 0 {
			return nil, &InternalError{Op: "distribute", Err: fmt.Errorf("%d directives for an empty line", len(above)+len(end))}
		}
		return nil, nil
	}
	for _, id := range line {
		stmt := stmts.Get(id)
		if stmt == nil {
			return nil, &InternalError{Op: "distribute", Err: fmt.Errorf("statement %d does not exist", id)}
		}
		if !stmt.Kind.CarriesDirectives() {
			return nil, &InternalError{Op: "distribute", Err: fmt.Errorf("%s statement %d: %w", stmt.Kind, id, ast.ErrNoDirectiveSlot)}
		}
	}

	out := make([][]ast.Directive, len(line))
	for i := range out {
		out[i] = []ast.Directive{}
	}
	last := len(line) - 1
	if last == 0 {
		out[0] = append(append(out[0], above...), end...)
		return out, nil
	}
	out[0] = append(out[0], above...)
	out[last] = append(out[last], end...)
	return out, nil
}
