package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyparse/internal/diagfmt"
	"pyparse/internal/driver"
)

func newDirectivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directives [flags] <file.py|directory>",
		Short: "List attached directives",
		Long:  `Directives attaches directive comments in a file or every *.py file of a directory and lists them with the statements they apply to`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDirectives,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse directive reports of unchanged files from the disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the disk cache before collecting")
	cmd.Flags().StringSlice("name", nil, "only list directives with these names")
	return cmd
}

func runDirectives(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	names, err := cmd.Flags().GetStringSlice("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !settings.DirectivesEnabled {
		return fmt.Errorf("directives are disabled: pass --prefix or set [directives] prefix in pyparse.toml")
	}

	opts := settings.driverOptions()
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("pyparse")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	res, err := driver.CollectDirectives(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("collecting directives failed: %w", err)
	}
	for _, f := range res.Failures {
		settings.printDiagnostics(cmd.ErrOrStderr(), f.Bag, f.FileSet)
	}

	occs := res.Registry.All()
	if len(names) > 0 {
		occs = res.Registry.FilterByName(names)
	}
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatDirectivesJSON(out, occs)
	} else {
		err = diagfmt.FormatDirectivesText(out, occs)
	}
	if err != nil {
		return err
	}
	if !settings.quiet && useCache {
		fmt.Fprintf(cmd.ErrOrStderr(), "cache: %d of %d files reused\n", res.CacheHits, len(res.Reports))
	}
	if len(res.Failures) > 0 {
		return fmt.Errorf("%d files failed", len(res.Failures))
	}
	return nil
}
