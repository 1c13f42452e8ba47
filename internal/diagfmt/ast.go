package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// FormatASTPretty prints the statement tree of a file:
//
//	├─ Expr 1:1 f(x)  # directives: gen
//	└─ If 2:1 if x:
//	   └─ body
//	      └─ Pass 3:5 pass
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	tp := treePrinter{w: w, b: b, fs: fs}
	tp.suite(file.Body, "")
	return tp.err
}

type treePrinter struct {
	w   io.Writer
	b   *ast.Builder
	fs  *source.FileSet
	err error
}

func (tp *treePrinter) line(format string, args ...any) {
	if tp.err != nil {
		return
	}
	_, tp.err = fmt.Fprintf(tp.w, format+"\n", args...)
}

func branch(last bool) (head, tail string) {
	if last {
		return "└─ ", "   "
	}
	return "├─ ", "│  "
}

func (tp *treePrinter) suite(body []ast.StmtID, prefix string) {
	for i, id := range body {
		head, tail := branch(i == len(body)-1)
		tp.stmt(id, prefix+head, prefix+tail)
	}
}

func (tp *treePrinter) stmt(id ast.StmtID, first, rest string) {
	stmt := tp.b.Stmts.Get(id)
	if stmt == nil {
		tp.line("%s<nil>", first)
		return
	}
	text := fmt.Sprintf("%s%s %s %s", first, stmt.Kind, tp.pos(stmt.Span), FormatStmtHeader(tp.b, id))
	if names := directiveNames(tp.b, id); len(names) > 0 {
		text += "  # directives: " + strings.Join(names, ", ")
	}
	tp.line("%s", text)

	type group struct {
		label string
		exprs []ast.ExprID
		body  []ast.StmtID
	}
	var groups []group
	if decos := stmtDecorators(tp.b, id); len(decos) > 0 {
		groups = append(groups, group{label: "decorators", exprs: decos})
	}
	for _, s := range stmtSuites(tp.b, id) {
		groups = append(groups, group{label: s.label, body: s.body})
	}
	for i, g := range groups {
		head, tail := branch(i == len(groups)-1)
		tp.line("%s%s%s", rest, head, g.label)
		for j, e := range g.exprs {
			eh, _ := branch(j == len(g.exprs)-1)
			tp.line("%s%s@%s", rest+tail, eh, FormatExpr(tp.b, e))
		}
		tp.suite(g.body, rest+tail)
	}
}

func (tp *treePrinter) pos(span source.Span) string {
	if tp.fs == nil || int(span.File) >= tp.fs.Len() {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	lc := tp.fs.Get(span.File).Position(span.Start)
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// StmtJSON is one statement of the JSON tree dump.
type StmtJSON struct {
	Kind       string      `json:"kind"`
	Line       uint32      `json:"line,omitempty"`
	Col        uint32      `json:"col,omitempty"`
	Span       source.Span `json:"span"`
	Text       string      `json:"text"`
	Directives []string    `json:"directives,omitempty"`
	Decorators []string    `json:"decorators,omitempty"`
	Suites     []SuiteJSON `json:"suites,omitempty"`
}

// SuiteJSON is a nested statement list with its clause label.
type SuiteJSON struct {
	Label string     `json:"label"`
	Body  []StmtJSON `json:"body"`
}

// FileJSON is the JSON tree dump of one file.
type FileJSON struct {
	Path string     `json:"path,omitempty"`
	Body []StmtJSON `json:"body"`
}

// BuildASTJSON converts the statement tree of a file into its JSON shape.
func BuildASTJSON(b *ast.Builder, fileID ast.FileID, fs *source.FileSet) (FileJSON, error) {
	file := b.Files.Get(fileID)
	if file == nil {
		return FileJSON{}, fmt.Errorf("file %d not found", fileID)
	}
	out := FileJSON{Body: buildSuiteJSON(b, file.Body, fs)}
	if f := lookupFile(fs, file.Span); f != nil {
		out.Path = f.Path
	}
	return out, nil
}

// FormatASTJSON writes the JSON tree dump of a file.
func FormatASTJSON(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	out, err := BuildASTJSON(b, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func buildSuiteJSON(b *ast.Builder, body []ast.StmtID, fs *source.FileSet) []StmtJSON {
	out := make([]StmtJSON, 0, len(body))
	for _, id := range body {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		node := StmtJSON{
			Kind:       stmt.Kind.String(),
			Span:       stmt.Span,
			Text:       FormatStmtHeader(b, id),
			Directives: directiveNames(b, id),
		}
		if f := lookupFile(fs, stmt.Span); f != nil {
			lc := f.Position(stmt.Span.Start)
			node.Line, node.Col = lc.Line, lc.Col
		}
		for _, e := range stmtDecorators(b, id) {
			node.Decorators = append(node.Decorators, FormatExpr(b, e))
		}
		for _, s := range stmtSuites(b, id) {
			node.Suites = append(node.Suites, SuiteJSON{Label: s.label, Body: buildSuiteJSON(b, s.body, fs)})
		}
		out = append(out, node)
	}
	return out
}

// FormatASTOutline prints one statement per line, indented by nesting depth:
//
//	1:1 If if a:
//	  2:5 Pass pass [gen]
func FormatASTOutline(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	tp := treePrinter{w: w, b: b, fs: fs}
	ast.WalkStmts(b.Stmts, file.Body, func(id ast.StmtID, depth int) bool {
		stmt := b.Stmts.Get(id)
		text := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), tp.pos(stmt.Span), stmt.Kind, FormatStmtHeader(b, id))
		if stmt.Kind.CarriesDirectives() {
			text += " [" + strings.Join(directiveNames(b, id), ", ") + "]"
		}
		tp.line("%s", text)
		return tp.err == nil
	})
	return tp.err
}
