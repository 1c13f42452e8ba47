package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyparse/internal/diagfmt"
	"pyparse/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.py",
		Short: "Tokenize a source file",
		Long:  `Tokenize breaks down a source file into its significant tokens; --comments lists the comment trivia instead`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("comments", false, "print comments with their placement")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	comments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], settings.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	settings.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)

	out := cmd.OutOrStdout()
	switch {
	case comments:
		err = diagfmt.FormatComments(out, result.Comments, result.FileSet)
	case format == "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case format == "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: %d diagnostics", args[0], result.Bag.Len())
	}
	return nil
}
