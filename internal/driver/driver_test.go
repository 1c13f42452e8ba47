package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions() Options {
	return Options{MaxDiagnostics: 20, Filter: directive.WithPrefix("nac3:"), Jobs: 2}
}

func TestParseReportsAlignmentDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "# nac3: unroll\nfor i in x:\n    pass\n")
	res, err := Parse(context.Background(), path, testOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Failed() || res.AttachErr == nil {
		t.Fatalf("directive above a compound statement must fail")
	}
	first, ok := res.Bag.First()
	if !ok || first.Code != diag.DirAlignment {
		t.Fatalf("expected alignment diagnostic, got %+v", first)
	}
}

func TestParseRecordsPlacementsAndTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "b.py", "for i in x:\n    # nac3: unroll\n    y = i\n")
	opts := testOptions()
	opts.Timings = true
	res, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Bag.Items())
	}
	if len(res.Placements) != 1 || res.Placements[0].Name != "unroll" {
		t.Fatalf("placements = %+v", res.Placements)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("timing = %+v", res.Timing)
	}
}

func TestParseSyntaxErrorSkipsAttach(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.py", "x = (1,\n")
	res, err := Parse(context.Background(), path, testOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Failed() || res.AttachErr != nil || res.Placements != nil {
		t.Fatalf("syntax error must stop before attachment")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(context.Background(), filepath.Join(t.TempDir(), "none.py"), testOptions()); err == nil {
		t.Fatalf("expected I/O error")
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "t.py", "x = 1  # note\n")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Ident, token.Assign, token.Int, token.Newline, token.EOF}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(res.Comments) != 1 || res.Comments[0].Text != "# note" {
		t.Fatalf("comments = %+v", res.Comments)
	}
}

func TestListSourcesSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "pass\n")
	writeFile(t, dir, "pkg/a.py", "pass\n")
	writeFile(t, dir, ".venv/lib.py", "pass\n")
	writeFile(t, dir, "notes.txt", "x\n")
	files, err := ListSources(dir)
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	want := []string{filepath.Join(dir, "b.py"), filepath.Join(dir, "pkg", "a.py")}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range s.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestParseDirOrdersResultsAndReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.py", "x = 1\n")
	writeFile(t, dir, "a.py", "def f(:\n")
	writeFile(t, dir, "m.py", "# nac3: k\ny = 2\n")
	sink := &recordingSink{}
	opts := testOptions()
	opts.Progress = sink

	results, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if diff := cmp.Diff([]string{"a.py", "m.py", "z.py"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if !results[0].Failed() || results[1].Failed() || results[2].Failed() {
		t.Fatalf("unexpected failure flags")
	}
	want := map[string]Status{"a.py": StatusError, "m.py": StatusDone, "z.py": StatusDone}
	if diff := cmp.Diff(want, sink.final()); diff != "" {
		t.Fatalf("final statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectDirectivesUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "# nac3: unroll\nx = 1\n")
	writeFile(t, dir, "b.py", "y = 2  # nac3: keep\n")
	writeFile(t, dir, "bad.py", "    # nac3: d\nz = 3\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := testOptions()
	opts.Cache = cache

	first, err := CollectDirectives(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CollectDirectives: %v", err)
	}
	if first.CacheHits != 0 || len(first.Reports) != 2 || len(first.Failures) != 1 {
		t.Fatalf("first run: hits=%d reports=%d failures=%d", first.CacheHits, len(first.Reports), len(first.Failures))
	}
	if diff := cmp.Diff([]string{"keep", "unroll"}, first.Registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	second, err := CollectDirectives(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CollectDirectives: %v", err)
	}
	if second.CacheHits != 2 {
		t.Fatalf("second run: hits=%d", second.CacheHits)
	}
	if diff := cmp.Diff(first.Registry.All(), second.Registry.All()); diff != "" {
		t.Fatalf("cached registry differs (-first +second):\n%s", diff)
	}

	opts.Filter = directive.WithPrefix("other:")
	third, err := CollectDirectives(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CollectDirectives: %v", err)
	}
	if third.CacheHits != 0 || third.Registry.Len() != 0 {
		t.Fatalf("prefix change must miss the cache: hits=%d len=%d", third.CacheHits, third.Registry.Len())
	}
}
