package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
	if got := Colored(true); !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored(true) = %q", got)
	}

	Version = "dev"
	if got := Colored(true); got != "dev" {
		t.Errorf("non-semver version should be returned as is, got %q", got)
	}
}

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := Info(false); got != "pyparse 1.2.3\n" {
		t.Errorf("Info = %q", got)
	}

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	want := "pyparse 1.2.3\ncommit: abc123def456\nbuilt:  2024-01-15T10:30:00Z\n"
	if got := Info(false); got != want {
		t.Errorf("Info = %q, want %q", got, want)
	}
}
