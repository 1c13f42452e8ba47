package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyparse/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pyparse",
		Short:         "Python-like parser with directive comments",
		Long:          `pyparse tokenizes and parses Python-like sources and attaches prefixed directive comments to statements`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				stopProfiling()
				return err
			}
			runCleanup = func() {
				stopTracing()
				stopProfiling()
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			cleanupRun()
		},
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDirectivesCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("prefix", "", "directive comment prefix, e.g. \" nac3:\" (enables directives)")
	flags.Bool("no-directives", false, "disable directive recognition")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")
	return rootCmd
}

// runCleanup stops tracing and profiling of the current command.
var runCleanup func()

func cleanupRun() {
	if runCleanup != nil {
		runCleanup()
		runCleanup = nil
	}
}

// main builds the command tree and executes it.
// If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		cleanupRun()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
