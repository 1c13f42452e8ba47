package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pyparse/internal/diagfmt"
	"pyparse/internal/driver"
	"pyparse/internal/observ"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.py|directory>",
		Short: "Parse a source file or directory and output the statement tree",
		Long:  `Parse analyzes a source file or all *.py files in a directory, attaches directives and prints the statement trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	ui := uiModeOff
	cmd.Flags().Var(&ui, "ui", "progress UI for directories (auto|on|off)")
	cmd.Flags().Lookup("ui").NoOptDefVal = string(uiModeOn)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "tree":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	mode := uiModeOff
	if f := cmd.Flags().Lookup("ui"); f != nil {
		if m, ok := f.Value.(*uiMode); ok {
			mode = *m
		}
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	opts := settings.driverOptions()

	var results []*driver.ParseResult
	if st.IsDir() {
		if mode.enabled(settings.quiet) {
			results, err = parseDirWithUI(cmd.Context(), target, opts)
		} else {
			results, err = driver.ParseDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		res, err := driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = []*driver.ParseResult{res}
	}

	failed := 0
	for _, r := range results {
		settings.printDiagnostics(cmd.ErrOrStderr(), r.Bag, r.FileSet)
		if r.Failed() {
			failed++
		}
	}

	if err := writeParseOutput(cmd.OutOrStdout(), results, format, settings.quiet || len(results) == 1); err != nil {
		return err
	}
	if settings.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func writeParseOutput(out io.Writer, results []*driver.ParseResult, format string, bare bool) error {
	if format == "json" {
		output := make(map[string]*diagfmt.FileJSON, len(results))
		for _, r := range results {
			if r.Failed() {
				output[r.Path] = nil
				continue
			}
			node, err := diagfmt.BuildASTJSON(r.Builder, r.FileID, r.FileSet)
			if err != nil {
				return err
			}
			output[r.Path] = &node
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	for idx, r := range results {
		if !bare {
			if _, err := fmt.Fprintf(out, "== %s ==\n", r.Path); err != nil {
				return err
			}
		}
		if !r.Failed() {
			var err error
			if format == "tree" {
				err = diagfmt.FormatASTPretty(out, r.Builder, r.FileID, r.FileSet)
			} else {
				err = diagfmt.FormatASTOutline(out, r.Builder, r.FileID, r.FileSet)
			}
			if err != nil {
				return err
			}
		}
		if !bare && idx < len(results)-1 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
	}
	return nil
}

func printTimings(out io.Writer, results []*driver.ParseResult) {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	if len(reports) == 0 {
		return
	}
	title := results[0].Path
	if len(results) > 1 {
		title = fmt.Sprintf("%d files", len(results))
	}
	fmt.Fprint(out, observ.Merge(reports...).Summary(title))
}
