package project

import (
	"fmt"
	"strings"
)

// DefaultMaxDiagnostics applies when neither a flag nor the manifest sets a limit.
const DefaultMaxDiagnostics = 100

// Settings are the effective options of one CLI run.
type Settings struct {
	DirectivesEnabled bool
	Prefix            string
	MaxDiagnostics    int
	Jobs              int // 0 means GOMAXPROCS
}

// Overrides carry command-line values; nil means "not given".
type Overrides struct {
	Prefix         *string
	NoDirectives   bool
	MaxDiagnostics *int
	Jobs           *int
}

// Defaults: directives disabled, DefaultMaxDiagnostics, GOMAXPROCS jobs.
func Defaults() Settings {
	return Settings{MaxDiagnostics: DefaultMaxDiagnostics}
}

// Resolve merges flags over the manifest over the defaults. m may be nil.
// A prefix given anywhere enables directives unless disabled explicitly.
func Resolve(m *Manifest, o Overrides) (Settings, error) {
	s := Defaults()
	if m != nil {
		if m.Directives.Prefix != nil {
			s.Prefix = *m.Directives.Prefix
			s.DirectivesEnabled = true
		}
		if m.Directives.Enabled != nil {
			s.DirectivesEnabled = *m.Directives.Enabled
		}
		if m.Parse.MaxDiagnostics != nil {
			s.MaxDiagnostics = *m.Parse.MaxDiagnostics
		}
		if m.Parse.Jobs != nil {
			s.Jobs = *m.Parse.Jobs
		}
	}
	if o.Prefix != nil {
		s.Prefix = *o.Prefix
		s.DirectivesEnabled = true
	}
	if o.NoDirectives {
		s.DirectivesEnabled = false
	}
	if o.MaxDiagnostics != nil {
		s.MaxDiagnostics = *o.MaxDiagnostics
	}
	if o.Jobs != nil {
		s.Jobs = *o.Jobs
	}

	if s.DirectivesEnabled && strings.TrimSpace(s.Prefix) == "" {
		return Settings{}, ErrEmptyPrefix
	}
	if s.MaxDiagnostics < 0 || s.Jobs < 0 {
		return Settings{}, fmt.Errorf("max diagnostics %d, jobs %d: %w", s.MaxDiagnostics, s.Jobs, ErrNegativeValue)
	}
	return s, nil
}
