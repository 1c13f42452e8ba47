package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyparse/internal/diagfmt"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// execute runs the CLI inside dir and returns stdout, stderr and the error.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseOutline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "# nac3: gen\nx = 1\nif x:\n    pass\n")

	out, stderr, err := execute(t, dir, "--prefix", " nac3:", "parse", "a.py")
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr)
	}
	want := "2:1 Assign x = 1 [gen]\n3:1 If if x:\n  4:5 Pass pass []\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAlignmentFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "    # nac3: x\na = 1\n")

	_, stderr, err := execute(t, dir, "--prefix", " nac3:", "--color", "off", "parse", "bad.py")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(stderr, "bad.py:1:5: ERROR DIR4001: config comment at top must have the same indentation") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestParseUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyparse.toml", "[directives]\nprefix = \"tool:\"\n")
	writeFile(t, dir, "a.py", "x = 1  # tool: fast\n")

	out, stderr, err := execute(t, dir, "parse", "a.py")
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr)
	}
	if !strings.Contains(out, "[fast]") {
		t.Errorf("output = %q", out)
	}

	out, _, err = execute(t, dir, "--no-directives", "parse", "a.py")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out, "x = 1 []") {
		t.Errorf("output = %q", out)
	}
}

func TestParseDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "a = 1\n")
	writeFile(t, dir, "b.py", "b = (\n")

	out, _, err := execute(t, dir, "parse", "--format", "json", ".")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("expected one failure, got %v", err)
	}
	var got map[string]*diagfmt.FileJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if a := got["a.py"]; a == nil || len(a.Body) != 1 {
		t.Errorf("a.py = %+v", a)
	}
	if b, ok := got["b.py"]; !ok || b != nil {
		t.Errorf("b.py = %+v", b)
	}
}

func TestDirectivesCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f():\n    # nac3: kernel\n    return 1\n")
	writeFile(t, dir, "b.py", "x = 1  # nac3: host\n")

	out, stderr, err := execute(t, dir, "--prefix", " nac3:", "directives", "--format", "json", ".")
	if err != nil {
		t.Fatalf("directives: %v\n%s", err, stderr)
	}
	var got []diagfmt.OccurrenceJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	names := make([]string, len(got))
	for i, o := range got {
		names[i] = o.Path + ":" + o.Name + ":" + o.Statement
	}
	if diff := cmp.Diff([]string{"a.py:kernel:Return", "b.py:host:Assign"}, names); diff != "" {
		t.Errorf("directives mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := execute(t, dir, "directives", "."); err == nil {
		t.Errorf("expected an error without a prefix")
	}
}

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1  # c\n")

	out, _, err := execute(t, dir, "tokenize", "--comments", "a.py")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if out != "1:8 SuffixComment # c\n" {
		t.Errorf("comments = %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "pyparse" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestReadModes(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want uiMode
	}{{"", uiModeAuto}, {"ON", uiModeOn}, {" off ", uiModeOff}} {
		got, err := readUIMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("expected error for invalid ui mode")
	}
	mode := uiModeOff
	if err := mode.Set("Auto"); err != nil || mode != uiModeAuto || mode.enabled(true) {
		t.Errorf("Set(Auto) = %q, %v", mode, err)
	}
	if err := mode.Set("on"); err != nil || !mode.enabled(true) {
		t.Errorf("Set(on) = %q, %v", mode, err)
	}
	if on, err := readColorMode("on", os.Stderr); err != nil || !on {
		t.Errorf("readColorMode(on) = %v, %v", on, err)
	}
	if _, err := readColorMode("blue", os.Stderr); err == nil {
		t.Errorf("expected error for invalid color mode")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")

	if _, _, err := execute(t, dir, "--cpu-profile", "cpu.out", "--mem-profile", "mem.out", "parse", "a.py"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, name := range []string{"cpu.out", "mem.out"} {
		if info, err := os.Stat(filepath.Join(dir, name)); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestDiagnosticFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "    # nac3: x\na = 1\n")

	_, stderr, err := execute(t, dir, "--prefix", " nac3:", "--diag-format", "short", "parse", "bad.py")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.HasPrefix(stderr, "error DIR4001 bad.py:1:5 config comment at top") {
		t.Errorf("short stderr = %q", stderr)
	}

	_, stderr, _ = execute(t, dir, "--prefix", " nac3:", "--diag-format", "json", "parse", "bad.py")
	var got diagfmt.DiagnosticsOutput
	// cobra дописывает "Error: ..." после JSON
	if err := json.NewDecoder(strings.NewReader(stderr)).Decode(&got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stderr)
	}
	if got.Count != 1 || got.Diagnostics[0].Code != "DIR4001" {
		t.Errorf("json diagnostics = %+v", got)
	}

	if _, _, err := execute(t, dir, "--diag-format", "xml", "parse", "bad.py"); err == nil {
		t.Errorf("expected error for unknown diag format")
	}
}

func TestParseRejectsUnknownUIMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")

	_, _, err := execute(t, dir, "parse", "--ui=sometimes", ".")
	if err == nil || !strings.Contains(err.Error(), "invalid --ui value") {
		t.Fatalf("expected ui mode error, got %v", err)
	}
	out, _, err := execute(t, dir, "parse", "--ui=off", ".")
	if err != nil || !strings.Contains(out, "x = 1") {
		t.Fatalf("parse --ui=off: %v\n%s", err, out)
	}
}
