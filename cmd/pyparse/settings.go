package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyparse/internal/diag"
	"pyparse/internal/diagfmt"
	"pyparse/internal/directive"
	"pyparse/internal/driver"
	"pyparse/internal/project"
	"pyparse/internal/source"
)

// cliSettings are the effective options of one command run.
type cliSettings struct {
	project.Settings
	quiet      bool
	timings    bool
	color      bool
	diagFormat string // pretty|short|json
}

// loadSettings merges flags over the nearest pyparse.toml over defaults.
func loadSettings(cmd *cobra.Command) (cliSettings, error) {
	flags := cmd.Root().PersistentFlags()

	var overrides project.Overrides
	if flags.Changed("prefix") {
		prefix, err := flags.GetString("prefix")
		if err != nil {
			return cliSettings{}, fmt.Errorf("failed to get prefix flag: %w", err)
		}
		overrides.Prefix = &prefix
	}
	noDirectives, err := flags.GetBool("no-directives")
	if err != nil {
		return cliSettings{}, fmt.Errorf("failed to get no-directives flag: %w", err)
	}
	overrides.NoDirectives = noDirectives
	if flags.Changed("max-diagnostics") {
		maxDiagnostics, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return cliSettings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		overrides.MaxDiagnostics = &maxDiagnostics
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return cliSettings{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		overrides.Jobs = &jobs
	}

	manifest, err := project.LoadNearest(".")
	if err != nil {
		return cliSettings{}, err
	}
	settings, err := project.Resolve(manifest, overrides)
	if err != nil {
		return cliSettings{}, err
	}

	out := cliSettings{Settings: settings}
	if out.quiet, err = flags.GetBool("quiet"); err != nil {
		return cliSettings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.timings, err = flags.GetBool("timings"); err != nil {
		return cliSettings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return cliSettings{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	if out.color, err = readColorMode(colorFlag, os.Stderr); err != nil {
		return cliSettings{}, err
	}
	if out.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return cliSettings{}, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch out.diagFormat {
	case "pretty", "short", "json":
	default:
		return cliSettings{}, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", out.diagFormat)
	}
	return out, nil
}

func readColorMode(value string, f *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

func (s cliSettings) filter() directive.Filter {
	if !s.DirectivesEnabled {
		return directive.Disabled()
	}
	return directive.WithPrefix(s.Prefix)
}

func (s cliSettings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.MaxDiagnostics,
		Filter:         s.filter(),
		Jobs:           s.Jobs,
		Timings:        s.timings,
	}
}

func (s cliSettings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		ShowNotes: !s.quiet,
	}
}

// printDiagnostics sorts bag and writes it in the selected diagnostics format.
// Short output needs a FileSet; without one it falls back to pretty headers.
func (s cliSettings) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	switch {
	case s.diagFormat == "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: !s.quiet}); err != nil {
			fmt.Fprintf(w, "failed to encode diagnostics: %v\n", err)
		}
	case s.diagFormat == "short" && fs != nil:
		fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, !s.quiet))
	default:
		diagfmt.Pretty(w, bag, fs, s.prettyOpts())
	}
}
