package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pyparse/internal/ast"
	"pyparse/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within file content bounds
// 2) every statement span is non-empty and belongs to sf
// 3) a statement span covers the spans of its nested suites
// 4) statements of one suite follow each other without overlap
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	bounds := source.Span{File: sf.ID, Start: 0, End: lenContent}
	return checkSuite(b.Stmts, f.Body, bounds)
}

func checkSuite(stmts *ast.Stmts, suite []ast.StmtID, parent source.Span) error {
	var prevEnd uint32
	for i, id := range suite {
		stmt := stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", stmt.Kind, sp)
		}
		if sp.File != parent.File {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", stmt.Kind, sp.File, parent.File)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("%s span %v is outside enclosing span %v", stmt.Kind, sp, parent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps previous statement ending at %d", stmt.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
		for _, child := range stmts.Suites(id) {
			if err := checkSuite(stmts, child, sp); err != nil {
				return err
			}
		}
	}
	return nil
}
