package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyparse/internal/diag"
	"pyparse/internal/source"
)

func prettyString(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1\ny = $\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 10, End: 11}, "unknown character '$'"))

	got := prettyString(bag, fs, PrettyOpts{})
	want := strings.Join([]string{
		"test.py:2:5: ERROR LEX1001: unknown character '$'",
		"   2 | y = $",
		"     |     ^",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/test.py", []byte("a = 1\nb = 2\nc = 3\n"))
	bag := diag.NewBag(0)
	d := diag.NewError(diag.DirAlignment, source.Span{File: id, Start: 6, End: 11}, "misaligned").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "see here")
	bag.Add(d)

	got := prettyString(bag, fs, PrettyOpts{Context: 1, ShowNotes: true, PathMode: PathModeBasename})
	want := strings.Join([]string{
		"test.py:2:1: ERROR DIR4001: misaligned",
		"   1 | a = 1",
		"   2 | b = 2",
		"     | ^~~~~",
		"   3 | c = 3",
		"note: test.py:1:1: see here",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyKeepsTabs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte("\tfoo\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 1, End: 4}, "bad"))

	got := prettyString(bag, fs, PrettyOpts{})
	if !strings.Contains(got, "     | \t^~~\n") {
		t.Errorf("caret line should keep the tab:\n%q", got)
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read missing.py"))

	got := prettyString(bag, nil, PrettyOpts{Context: 2})
	if want := "ERROR IO3001: cannot read missing.py\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.py", []byte("x\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "bad"))

	if got := prettyString(bag, fs, PrettyOpts{Color: true}); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", got)
	}
	if got := prettyString(bag, fs, PrettyOpts{Color: false}); strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected ANSI escapes, got %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1\ny = $\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 10, End: 11}, "unknown character '$'").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "n"))
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "second"))

	got := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, Max: 1})
	want := DiagnosticsOutput{
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1001",
			Title:    "Unknown character",
			Message:  "unknown character '$'",
			Location: LocationJSON{File: "test.py", StartByte: 10, EndByte: 11, StartLine: 2, StartCol: 5, EndLine: 2, EndCol: 6},
		}},
		Count: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}

	withNotes := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true})
	if withNotes.Count != 2 || len(withNotes.Diagnostics[0].Notes) != 1 {
		t.Fatalf("unexpected output: %+v", withNotes)
	}
	if loc := withNotes.Diagnostics[0].Notes[0].Location; loc.File != "test.py" || loc.StartLine != 0 {
		t.Errorf("note location = %+v", loc)
	}
}
