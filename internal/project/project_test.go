package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func ptr[T any](v T) *T { return &v }

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[directives]\nprefix = \" nac3:\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	want, _ = filepath.Abs(want)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[directives]
prefix = " nac3:"
enabled = true

[parse]
max_diagnostics = 5
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	want := &Manifest{
		Path:       path,
		Directives: DirectivesSection{Prefix: ptr(" nac3:"), Enabled: ptr(true)},
		Parse:      ParseSection{MaxDiagnostics: ptr(5)},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unknown key", "[parse]\nthreads = 3\n", nil},
		{"negative jobs", "[parse]\njobs = -1\n", ErrNegativeValue},
		{"bad toml", "[directives\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, t.TempDir(), tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("error %v is not %v", err, tt.target)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	manifest := &Manifest{
		Directives: DirectivesSection{Prefix: ptr("nac3:")},
		Parse:      ParseSection{MaxDiagnostics: ptr(7), Jobs: ptr(2)},
	}
	tests := []struct {
		name string
		m    *Manifest
		o    Overrides
		want Settings
	}{
		{"defaults", nil, Overrides{}, Settings{MaxDiagnostics: DefaultMaxDiagnostics}},
		{"manifest", manifest, Overrides{}, Settings{DirectivesEnabled: true, Prefix: "nac3:", MaxDiagnostics: 7, Jobs: 2}},
		{"flags win", manifest, Overrides{Prefix: ptr("x:"), MaxDiagnostics: ptr(1)}, Settings{DirectivesEnabled: true, Prefix: "x:", MaxDiagnostics: 1, Jobs: 2}},
		{"no directives", manifest, Overrides{NoDirectives: true}, Settings{Prefix: "nac3:", MaxDiagnostics: 7, Jobs: 2}},
		{"disabled in manifest", &Manifest{Directives: DirectivesSection{Prefix: ptr("p:"), Enabled: ptr(false)}}, Overrides{}, Settings{Prefix: "p:", MaxDiagnostics: DefaultMaxDiagnostics}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.m, tt.o)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveRejectsEmptyPrefix(t *testing.T) {
	if _, err := Resolve(nil, Overrides{Prefix: ptr("  ")}); !errors.Is(err, ErrEmptyPrefix) {
		t.Fatalf("expected ErrEmptyPrefix, got %v", err)
	}
}
