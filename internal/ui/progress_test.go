package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"pyparse/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	m := newProgressModel("parse", []string{"a.py", "b.py"}, nil)

	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "parsing" {
		t.Errorf("status = %q, want parsing", got)
	}
	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageAttach, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.py", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.py", Stage: driver.StageParse, Status: driver.StatusDone})

	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Errorf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if got := m.fraction(); got != 1.0 {
		t.Errorf("fraction = %v, want 1", got)
	}
}

func TestFractionByStage(t *testing.T) {
	m := newProgressModel("parse", []string{"a.py", "b.py"}, nil)
	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageAttach, Status: driver.StatusWorking})
	if got, want := m.fraction(), 0.4; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("fraction = %v, want %v", got, want)
	}
}

func TestRunLevelEventSetsStageLabel(t *testing.T) {
	m := newProgressModel("parse", []string{"a.py"}, nil)
	m.applyEvent(driver.Event{Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.stageLabel != "parsing" {
		t.Errorf("stage label = %q", m.stageLabel)
	}
	if view := m.View(); !strings.Contains(view, "parse (parsing)") || !strings.Contains(view, "a.py") {
		t.Errorf("view missing header or file:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); runewidth.StringWidth(got) > 6 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}

func TestViewSummarizesOutcomes(t *testing.T) {
	m := newProgressModel("parse", []string{"a.py", "b.py", "c.py"}, nil)
	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageAttach, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.applyEvent(driver.Event{File: "b.py", Stage: driver.StageParse, Status: driver.StatusError})
	if m.items[0].elapsed != 3*time.Millisecond {
		t.Errorf("elapsed = %v", m.items[0].elapsed)
	}
	view := m.View()
	if !strings.Contains(view, "1/3 parsed") || !strings.Contains(view, "1 failed") {
		t.Errorf("view missing summary:\n%s", view)
	}
}
