package directive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/lexer"
	"pyparse/internal/parser"
	"pyparse/internal/source"
)

const testPrefix = " nac3:"

type attached struct {
	b          *ast.Builder
	fileID     ast.FileID
	file       *ast.File
	src        *source.File
	placements []Placement
	err        error
}

func attachSource(t *testing.T, input string, f Filter) attached {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	src := fs.Get(fileID)
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(src, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{Reporter: reporter})
	if res.Failed || bag.HasErrors() {
		t.Fatalf("parse failed for %q: %d diagnostics", input, bag.Len())
	}
	comments := Collect(f, src, lx.Comments())
	placements, err := Attach(context.Background(), b, res.File, src, comments)
	return attached{b: b, fileID: res.File, file: b.Files.Get(res.File), src: src, placements: placements, err: err}
}

func mustAttach(t *testing.T, input string) attached {
	t.Helper()
	a := attachSource(t, input, WithPrefix(testPrefix))
	if a.err != nil {
		t.Fatalf("attach failed: %v", a.err)
	}
	return a
}

// simpleDirectives lists, for every simple statement in source order,
// its source text and attached directive names.
func (a attached) simpleDirectives() []string {
	var out []string
	ast.WalkStmts(a.b.Stmts, a.file.Body, func(id ast.StmtID, _ int) bool {
		stmt := a.b.Stmts.Get(id)
		if !stmt.Kind.CarriesDirectives() {
			return true
		}
		names := []string{}
		for _, d := range a.b.Stmts.Directives(id) {
			names = append(names, a.b.Name(d.Name))
		}
		text := string(a.src.Content[stmt.Span.Start:stmt.Span.End])
		out = append(out, text+" "+"["+strings.Join(names, ",")+"]")
		return true
	})
	return out
}

func TestMultiStatementLineDistribution(t *testing.T) {
	input := `# nac3: smallsingle1
# nac3: smallsingle3
a = 3; a + 3; b = a;  # nac3: notif
`
	a := mustAttach(t, input)
	want := []string{
		"a = 3 [smallsingle1,smallsingle3]",
		"a + 3 []",
		"b = a [notif]",
	}
	if diff := cmp.Diff(want, a.simpleDirectives()); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedBlockDirectives(t *testing.T) {
	input := `for i in (1, '12'):
    # nac3: comment
    i = i;
    # nac3: cc
    print(i)
`
	a := mustAttach(t, input)
	want := []string{"i = i [comment]", "print(i) [cc]"}
	if diff := cmp.Diff(want, a.simpleDirectives()); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
}

func TestAlignmentErrorNamesBothLocations(t *testing.T) {
	a := attachSource(t, "    # nac3: d\nx = 1\n", WithPrefix(testPrefix))
	var align *AlignmentError
	if !errors.As(a.err, &align) {
		t.Fatalf("expected AlignmentError, got %v", a.err)
	}
	if align.Comment != (source.LineCol{Line: 1, Col: 5}) || align.Statement != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("unexpected locations: comment %s, statement %s", align.Comment, align.Statement)
	}
	want := "config comment at top must have the same indentation with what it applies, " +
		"comment at line 1 column 5, statement at line 2 column 1"
	if a.err.Error() != want {
		t.Fatalf("message:\n got %q\nwant %q", a.err.Error(), want)
	}
	if a.placements != nil {
		t.Fatalf("no placements expected on failure")
	}
	for _, id := range a.file.Body {
		if cfg, ok := a.b.Stmts.Config(id); ok && cfg.Attached {
			t.Fatalf("failed attach must not write any slot")
		}
	}
}

func TestDirectivePlacement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "deeper comment marks end of block",
			input: "for i in x:\n    a = 1\n    # nac3: end\nb = 2\n",
			want:  []string{"a = 1 [end]", "b = 2 []"},
		},
		{
			name:  "comment enters block",
			input: "x = 1\nfor i in y:\n    # nac3: first\n    a = 1\n",
			want:  []string{"x = 1 []", "a = 1 [first]"},
		},
		{
			name:  "inline compound body takes end comment",
			input: "if x: a = 1  # nac3: inline\n",
			want:  []string{"a = 1 [inline]"},
		},
		{
			name:  "inline body with several statements",
			input: "while x: a = 1; b = 2  # nac3: last\n",
			want:  []string{"a = 1 []", "b = 2 [last]"},
		},
		{
			name:  "ordinary comments do not break a run",
			input: "# nac3: a\n# plain comment\n# nac3: b\nx = 1\n",
			want:  []string{"x = 1 [a,b]"},
		},
		{
			name:  "above before end",
			input: "# nac3: a\nx = 1  # nac3: b\n",
			want:  []string{"x = 1 [a,b]"},
		},
		{
			name:  "trailing tail at end of file",
			input: "x = 1\n# nac3: tail\n",
			want:  []string{"x = 1 [tail]"},
		},
		{
			name:  "empty identifier",
			input: "# nac3:\nx = 1\n",
			want:  []string{"x = 1 []"},
		},
		{
			name: "block end then next statement",
			input: "for i in x:\n    for j in y:\n        a = 1\n        # nac3: inner_end\n" +
				"# nac3: next\nb = 2\n",
			want: []string{"a = 1 [inner_end]", "b = 2 [next]"},
		},
		{
			name:  "end comment after a multi-line statement",
			input: "x = [\n    1,\n]  # nac3: e\n",
			want:  []string{"x = [\n    1,\n] [e]"},
		},
		{
			name:  "nested class and def",
			input: "class A:\n    def f(self):\n        for i in x:\n            # nac3: body\n            pass\n        # nac3: ret\n        return 1\n",
			want:  []string{"pass [body]", "return 1 [ret]"},
		},
		{
			name:  "prefix whitespace is not significant",
			input: "#nac3: x\nx = 1\n",
			want:  []string{"x = 1 [x]"},
		},
		{
			name:  "run after two-level dedent",
			input: "for i in x:\n    if y:\n        b = 2\n    # nac3: d\n    z = 3\n",
			want:  []string{"b = 2 []", "z = 3 [d]"},
		},
		{
			name:  "tail at end of file follows end comment",
			input: "a = 1  # nac3: e\n# nac3: t\n",
			want:  []string{"a = 1 [e,t]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAttach(t, tt.input)
			if diff := cmp.Diff(tt.want, a.simpleDirectives()); diff != "" {
				t.Fatalf("directives mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmptyIdentifierIsKept(t *testing.T) {
	a := mustAttach(t, "# nac3:\nx = 1\n")
	ds := a.b.Stmts.Directives(a.file.Body[0])
	if len(ds) != 1 || a.b.Name(ds[0].Name) != "" {
		t.Fatalf("expected one empty directive, got %d", len(ds))
	}
}

func TestPlacementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"suffix on compound header", "for i in x:  # nac3: bad\n    a = 1\n"},
		{"own line inside brackets", "x = [\n    # nac3: bad\n    1,\n]\n"},
		{"own line inside if header", "if (a and\n    # nac3: x\n    b):\n    y = 1\n"},
		{"own line inside def parameters", "def f(a,\n    # nac3: x\n    b):\n    pass\n"},
		{"suffix inside if header", "if (a and  # nac3: x\n    b):\n    y = 1\n"},
		{"suffix on continuation line", "x = [1,  # nac3: bad\n  2]\n"},
		{"no statements", "# nac3: lonely\n"},
		{"run separated by another column", "# nac3: a\n    # nac3: b\nx = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := attachSource(t, tt.input, WithPrefix(testPrefix))
			var placement *PlacementError
			if !errors.As(a.err, &placement) {
				t.Fatalf("expected PlacementError, got %v", a.err)
			}
			if placement.Name == "" {
				t.Fatalf("placement error must name the directive")
			}
		})
	}
}

func TestCommentAboveCompoundStatementFails(t *testing.T) {
	a := attachSource(t, "# nac3: d\nfor i in y:\n    a = 1\n", WithPrefix(testPrefix))
	var align *AlignmentError
	if !errors.As(a.err, &align) {
		t.Fatalf("expected AlignmentError, got %v", a.err)
	}
	if align.Statement != (source.LineCol{Line: 3, Col: 5}) {
		t.Fatalf("statement location = %s", align.Statement)
	}
}

func TestDedentToUnrelatedColumnFails(t *testing.T) {
	input := "for i in x:\n    for j in y:\n        a = 1\n    # nac3: d\nb = 2\n"
	a := attachSource(t, input, WithPrefix(testPrefix))
	var align *AlignmentError
	if !errors.As(a.err, &align) {
		t.Fatalf("expected AlignmentError, got %v", a.err)
	}
	if align.Comment != (source.LineCol{Line: 4, Col: 5}) || align.Statement != (source.LineCol{Line: 5, Col: 1}) {
		t.Fatalf("locations: %s / %s", align.Comment, align.Statement)
	}
}

func TestDisabledFilterAttachesEmptyLists(t *testing.T) {
	input := "    # nac3: misaligned\nx = 1; y = 2  # nac3: e\nfor i in z:  # nac3: header\n    pass\n"
	a := attachSource(t, input, Disabled())
	if a.err != nil {
		t.Fatalf("disabled filter must never fail: %v", a.err)
	}
	ast.WalkStmts(a.b.Stmts, a.file.Body, func(id ast.StmtID, _ int) bool {
		cfg, ok := a.b.Stmts.Config(id)
		if !ok {
			return true
		}
		if !cfg.Attached || len(cfg.Directives) != 0 {
			t.Fatalf("statement %d: attached=%v directives=%d", id, cfg.Attached, len(cfg.Directives))
		}
		return true
	})
	if len(a.placements) != 0 {
		t.Fatalf("no placements expected, got %d", len(a.placements))
	}
}

func TestAttachIsDeterministic(t *testing.T) {
	input := "# nac3: a\nx = 1; y = 2  # nac3: b\nfor i in z:\n    # nac3: c\n    pass\n    # nac3: d\nw = 3\n"
	first := mustAttach(t, input)
	second := mustAttach(t, input)
	if diff := cmp.Diff(first.placements, second.placements); diff != "" {
		t.Fatalf("placements differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.simpleDirectives(), second.simpleDirectives()); diff != "" {
		t.Fatalf("attachment differs (-first +second):\n%s", diff)
	}
}

func TestPlacementsReportStatement(t *testing.T) {
	a := mustAttach(t, "x = 1\nif x:\n    # nac3: keep\n    y = 2\n")
	if len(a.placements) != 1 {
		t.Fatalf("expected one placement, got %d", len(a.placements))
	}
	want := []Placement{{
		Name:    "keep",
		Comment: source.LineCol{Line: 3, Col: 5},
		Stmt:    a.placements[0].Stmt,
		Kind:    ast.StmtAssign,
		StmtLoc: source.LineCol{Line: 4, Col: 5},
	}}
	if diff := cmp.Diff(want, a.placements); diff != "" {
		t.Fatalf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestSecondAttachIsInternalError(t *testing.T) {
	a := mustAttach(t, "x = 1\n")
	_, err := Attach(context.Background(), a.b, a.fileID, a.src, nil)
	if !errors.Is(err, ErrInternal) || !errors.Is(err, ast.ErrAlreadyAttached) {
		t.Fatalf("expected internal double-attach error, got %v", err)
	}
	d, ok := Diagnostic(err)
	if !ok || d.Code != diag.InternalDoubleAttach {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}
