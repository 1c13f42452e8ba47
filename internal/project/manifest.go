package project

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded pyparse.toml. Pointer fields distinguish an
// absent key from an explicit zero.
type Manifest struct {
	Path       string
	Directives DirectivesSection
	Parse      ParseSection
}

type DirectivesSection struct {
	Prefix  *string
	Enabled *bool
}

type ParseSection struct {
	MaxDiagnostics *int
	Jobs           *int
}

var (
	// ErrEmptyPrefix: directives enabled with an empty prefix would match every comment.
	ErrEmptyPrefix = errors.New("directives.prefix must not be empty")
	// ErrNegativeValue is returned for negative counts in [parse].
	ErrNegativeValue = errors.New("value must not be negative")
)

type manifestFile struct {
	Directives struct {
		Prefix  string `toml:"prefix"`
		Enabled bool   `toml:"enabled"`
	} `toml:"directives"`
	Parse struct {
		MaxDiagnostics int `toml:"max_diagnostics"`
		Jobs           int `toml:"jobs"`
	} `toml:"parse"`
}

// LoadManifest parses a pyparse.toml. Unknown keys are an error.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	m := &Manifest{Path: path}
	if meta.IsDefined("directives", "prefix") {
		m.Directives.Prefix = &cfg.Directives.Prefix
	}
	if meta.IsDefined("directives", "enabled") {
		m.Directives.Enabled = &cfg.Directives.Enabled
	}
	if meta.IsDefined("parse", "max_diagnostics") {
		if cfg.Parse.MaxDiagnostics < 0 {
			return nil, fmt.Errorf("%s: parse.max_diagnostics: %w", path, ErrNegativeValue)
		}
		m.Parse.MaxDiagnostics = &cfg.Parse.MaxDiagnostics
	}
	if meta.IsDefined("parse", "jobs") {
		if cfg.Parse.Jobs < 0 {
			return nil, fmt.Errorf("%s: parse.jobs: %w", path, ErrNegativeValue)
		}
		m.Parse.Jobs = &cfg.Parse.Jobs
	}
	return m, nil
}

// LoadNearest finds and loads the manifest above startDir; nil when none exists.
func LoadNearest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return LoadManifest(path)
}
