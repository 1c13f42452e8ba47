package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelGatesScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopePass, "parse", 0).End("ok")
	Begin(tr, ScopeFile, "file:a.py", 0).End("")
	out := buf.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (ok)") {
		t.Fatalf("pass span missing: %q", out)
	}
	if strings.Contains(out, "a.py") {
		t.Fatalf("file scope leaked at phase level: %q", out)
	}
}

func TestNDJSONEvent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	root := Begin(tr, ScopeDriver, "run", 0)
	root.WithExtra("files", "3").End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d", len(lines))
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev.Kind != "end" || ev.Extra["files"] != "3" || ev.SpanID != root.ID() {
		t.Fatalf("unexpected end event: %+v", ev)
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	tr := FromContext(context.Background())
	if tr.Enabled() {
		t.Fatal("default tracer must be disabled")
	}
	span := Begin(tr, ScopePass, "x", 7)
	if span.ID() != 7 {
		t.Fatalf("inert span must report parent id, got %d", span.ID())
	}
	if d := span.End(""); d != 0 {
		t.Fatalf("inert span duration %v", d)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("Detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
}
