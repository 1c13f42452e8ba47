package directive

import (
	"cmp"
	"slices"
	"sync"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// Occurrence is one attached directive found in a source file.
type Occurrence struct {
	Name      string
	Path      string
	Comment   source.LineCol
	Kind      ast.StmtKind
	Statement source.LineCol
}

// Registry collects directive occurrences across files. Safe for concurrent use.
type Registry struct {
	mu          sync.Mutex
	occurrences []Occurrence
	byName      map[string][]int // name -> indices into occurrences
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		occurrences: make([]Occurrence, 0),
		byName:      make(map[string][]int),
	}
}

// Add registers one occurrence.
func (r *Registry) Add(occ Occurrence) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.occurrences)
	r.occurrences = append(r.occurrences, occ)
	r.byName[occ.Name] = append(r.byName[occ.Name], idx)
}

// AddPlacements registers the result of one Attach call.
func (r *Registry) AddPlacements(path string, placements []Placement) {
	for _, p := range placements {
		r.Add(Occurrence{
			Name:      p.Name,
			Path:      path,
			Comment:   p.Comment,
			Kind:      p.Kind,
			Statement: p.StmtLoc,
		})
	}
}

// CollectFromFile registers the directives already attached to fileID.
func (r *Registry) CollectFromFile(builder *ast.Builder, fileID ast.FileID, src *source.File) {
	file := builder.Files.Get(fileID)
	if file == nil || src == nil {
		return
	}
	ast.WalkStmts(builder.Stmts, file.Body, func(id ast.StmtID, _ int) bool {
		ds := builder.Stmts.Directives(id)
		if len(ds) == 0 {
			return true
		}
		stmt := builder.Stmts.Get(id)
		loc := src.Position(stmt.Span.Start)
		for _, d := range ds {
			r.Add(Occurrence{
				Name:      builder.Name(d.Name),
				Path:      src.Path,
				Comment:   d.Loc,
				Kind:      stmt.Kind,
				Statement: loc,
			})
		}
		return true
	})
}

// All returns every occurrence ordered by path and comment position.
func (r *Registry) All() []Occurrence {
	r.mu.Lock()
	out := slices.Clone(r.occurrences)
	r.mu.Unlock()
	sortOccurrences(out)
	return out
}

// FilterByName returns occurrences of the given names; empty names means all.
func (r *Registry) FilterByName(names []string) []Occurrence {
	if len(names) == 0 {
		return r.All()
	}
	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	r.mu.Lock()
	var out []Occurrence
	for _, name := range names {
		for _, idx := range r.byName[name] {
			out = append(out, r.occurrences[idx])
		}
	}
	r.mu.Unlock()
	sortOccurrences(out)
	return out
}

// Names returns the distinct directive names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the total number of occurrences.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.occurrences)
}

func sortOccurrences(occs []Occurrence) {
	slices.SortStableFunc(occs, func(a, b Occurrence) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Comment.Line, b.Comment.Line),
			cmp.Compare(a.Comment.Col, b.Comment.Col),
			cmp.Compare(a.Name, b.Name),
		)
	})
}
