package directive

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"pyparse/internal/ast"
	"pyparse/internal/source"
	"pyparse/internal/trace"
)

// Placement records where one directive ended up.
type Placement struct {
	Name    string
	Comment source.LineCol
	Stmt    ast.StmtID
	Kind    ast.StmtKind
	StmtLoc source.LineCol
}

// Attach writes the directive list of every simple statement of fileID
// exactly once. Statements without directives get an empty list, so after a
// successful call every slot is attached. On error nothing is written.
func Attach(ctx context.Context, b *ast.Builder, fileID ast.FileID, src *source.File, comments []Comment) ([]Placement, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "attach_directives", trace.ParentSpan(ctx))
	defer span.End("")

	file := b.Files.Get(fileID)
	if file == nil {
		return nil, &InternalError{Op: "attach", Err: fmt.Errorf("file %d does not exist", fileID)}
	}
	groups := buildGroups(b.Stmts, src, file.Body)

	a := assigner{groups: groups, pendingIdx: -1}
	for _, c := range comments {
		if err := a.add(c); err != nil {
			return nil, err
		}
	}
	if err := a.flush(); err != nil {
		return nil, err
	}

	// все списки считаются до первой записи в дерево
	lists := make([][][]ast.Directive, len(groups))
	for i, g := range groups {
		var err error
		lists[i], err = Distribute(b.Stmts, g.stmts, toDirectives(b, g.above), toDirectives(b, g.end))
		if err != nil {
			return nil, err
		}
	}

	var placements []Placement
	for i, g := range groups {
		for j, id := range g.stmts {
			ds := lists[i][j]
			if err := b.Stmts.SetDirectives(id, ds); err != nil {
				return nil, &InternalError{Op: "attach", Err: err}
			}
			if len(ds) == 0 {
				continue
			}
			stmt := b.Stmts.Get(id)
			loc := src.Position(stmt.Span.Start)
			for _, d := range ds {
				placements = append(placements, Placement{
					Name:    b.Name(d.Name),
					Comment: d.Loc,
					Stmt:    id,
					Kind:    stmt.Kind,
					StmtLoc: loc,
				})
			}
			trace.Point(tracer, trace.ScopeNode, "directive", stmt.Kind.String()+" at "+loc.String()+": "+strconv.Itoa(len(ds)), span.ID())
		}
	}
	span.WithExtra("directives", strconv.Itoa(len(placements)))
	return placements, nil
}

func toDirectives(b *ast.Builder, cs []Comment) []ast.Directive {
	if len(cs) == 0 {
		return nil
	}
	out := make([]ast.Directive, len(cs))
	for i, c := range cs {
		out[i] = ast.Directive{Name: b.Strings.Intern(c.Name), Span: c.Span, Loc: c.Loc}
	}
	return out
}

// assigner routes comments, in source order, to line groups.
// Own-line comments wait in the gap before the next group until the gap is
// complete; the gap is then split into runs and every run finds its owner.
type assigner struct {
	groups     []*lineGroup
	pending    []Comment
	pendingIdx int // gap index of pending, -1 when empty
}

// gapIndex — число групп, начинающихся до off.
func (a *assigner) gapIndex(off uint32) int {
	return sort.Search(len(a.groups), func(i int) bool {
		return a.groups[i].span.Start > off
	})
}

func (a *assigner) group(i int) *lineGroup {
	if i < 0 || i >= len(a.groups) {
		return nil
	}
	return a.groups[i]
}

func (a *assigner) add(c Comment) error {
	if c.OwnLine && c.Nested {
		// ни одна группа не начинается внутри скобок заголовка
		return placementError(c, "is inside the brackets of a statement")
	}
	idx := a.gapIndex(c.Span.Start)
	prev := a.group(idx - 1)
	inside := prev != nil && prev.covers(c.Loc.Line)
	gap := c.OwnLine && !inside

	if a.pendingIdx >= 0 && (!gap || idx != a.pendingIdx) {
		if err := a.flush(); err != nil {
			return err
		}
	}
	switch {
	case gap:
		a.pendingIdx = idx
		a.pending = append(a.pending, c)
	case !c.OwnLine && prev != nil && c.Loc.Line == prev.lastRow:
		prev.end = append(prev.end, c)
	case c.OwnLine:
		return placementError(c, "is inside a statement that spans several lines")
	default:
		return placementError(c, "does not trail the last line of a simple statement")
	}
	return nil
}

// flush resolves the pending gap. prev is the group before the gap, next
// the group after it; either may be absent.
func (a *assigner) flush() error {
	if a.pendingIdx < 0 {
		return nil
	}
	gap, idx := a.pending, a.pendingIdx
	a.pending, a.pendingIdx = nil, -1

	prev, next := a.group(idx-1), a.group(idx)
	runs := splitRuns(gap)
	for i, r := range runs {
		last := i == len(runs)-1
		switch {
		case next != nil && r.col() == next.start.Col && last:
			above, err := r.resolve(next.span, next.start)
			if err != nil {
				return err
			}
			next.above = above
		case prev != nil && r.col() == prev.start.Col && (next == nil || next.start.Col < prev.start.Col):
			// конец блока: комментарий глубже следующей строки
			tail, err := r.resolve(prev.span, prev.start)
			if err != nil {
				return err
			}
			prev.end = append(prev.end, tail...)
		case next != nil && r.col() == next.start.Col:
			return placementError(r.first(), "is separated from the statement below by comments at another indentation")
		case next != nil:
			_, err := r.resolve(next.span, next.start)
			return mustFail(err)
		case prev != nil:
			_, err := r.resolve(prev.span, prev.start)
			return mustFail(err)
		default:
			return placementError(r.first(), "does not apply to any statement")
		}
	}
	return nil
}

// mustFail: resolve against a misaligned statement has to report.
func mustFail(err error) error {
	if err == nil {
		return &InternalError{Op: "flush", Err: fmt.Errorf("misaligned run resolved without error")}
	}
	return err
}

func placementError(c Comment, reason string) error {
	return &PlacementError{Name: c.Name, Comment: c.Loc, Span: c.Span, Reason: reason}
}
