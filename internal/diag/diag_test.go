package diag

import (
	"testing"

	"pyparse/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	sp := source.Span{}
	if !bag.Add(New(SevWarning, LexInfo, sp, "w")) {
		t.Fatal("first add rejected")
	}
	if bag.HasErrors() {
		t.Fatal("warning counted as error")
	}
	bag.Add(NewError(SynUnexpectedToken, sp, "e"))
	if bag.Add(NewError(SynUnexpectedToken, sp, "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("len=%d errors=%v", bag.Len(), bag.HasErrors())
	}
	first, ok := bag.First()
	if !ok || first.Message != "e" {
		t.Fatalf("First = %+v", first)
	}
}

func TestBagSortDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewError(LexBadNumber, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewError(LexBadNumber, source.Span{Start: 1, End: 2}, "a again"))
	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 || items[0].Code != LexBadNumber || items[1].Code != SynUnexpectedToken {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexBadDedent:         "LEX1004",
		SynExpectColon:       "SYN2004",
		DirAlignment:         "DIR4001",
		InternalDistribution: "INT9001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if !InternalDoubleAttach.IsInternal() || DirPlacement.IsInternal() {
		t.Fatal("IsInternal misclassifies")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.py", []byte("a\n    b\n"))
	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: id, Start: 6, End: 7}, "second\nline").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "see here"),
		New(SevWarning, DirPlacement, source.Span{File: id, Start: 0, End: 1}, "first"),
	}
	want := "warning DIR4002 sample.py:1:1 first\n" +
		"note SYN2001 sample.py:1:1 see here\n" +
		"error SYN2001 sample.py:2:5 second line"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "x", nil)
	r.Report(LexUnknownChar, SevError, sp, "x", nil)
	ReportError(r, LexUnknownChar, sp, "y").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}
