package directive

import (
	"errors"

	"pyparse/internal/source"
)

// runState tracks one above-run from its first comment to its owner.
type runState uint8

const (
	runCollecting       runState = iota // comments keep matching the column
	runAwaitingStatement                // closed, owner not yet chosen
	runResolved                         // merged into a statement, terminal
)

func (s runState) String() string {
	switch s {
	case runCollecting:
		return "collecting"
	case runAwaitingStatement:
		return "awaiting statement"
	case runResolved:
		return "resolved"
	}
	return "unknown"
}

var errRunState = errors.New("run is not awaiting a statement")

// run is a maximal sequence of own-line directives at one column.
type run struct {
	comments []Comment
	state    runState
}

func (r *run) col() uint32 {
	return r.comments[0].Loc.Col
}

func (r *run) first() Comment {
	return r.comments[0]
}

// push grows a collecting run; false means c starts a new one.
func (r *run) push(c Comment) bool {
	if r.state != runCollecting || c.Loc.Col != r.col() {
		return false
	}
	r.comments = append(r.comments, c)
	return true
}

func (r *run) close() {
	if r.state == runCollecting {
		r.state = runAwaitingStatement
	}
}

// resolve hands the run to the statement at loc. A run resolves once.
func (r *run) resolve(stmt source.Span, loc source.LineCol) ([]Comment, error) {
	if r.state != runAwaitingStatement {
		return nil, &InternalError{Op: "resolve " + r.state.String() + " run", Err: errRunState}
	}
	r.state = runResolved
	res, err := Resolve(r.comments, nil, stmt, loc)
	if err != nil {
		return nil, err
	}
	return res.Above, nil
}

// splitRuns cuts a gap into runs of consecutive same-column comments.
func splitRuns(gap []Comment) []*run {
	var runs []*run
	var cur *run
	for _, c := range gap {
		if cur != nil && cur.push(c) {
			continue
		}
		if cur != nil {
			cur.close()
		}
		cur = &run{comments: []Comment{c}}
		runs = append(runs, cur)
	}
	if cur != nil {
		cur.close()
	}
	return runs
}
