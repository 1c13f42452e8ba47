// Package diag defines the diagnostic model shared by the lexer, the parser
// and the directive pass.
//
// A Diagnostic is plain data: severity, numeric code, message, primary span
// and optional notes. Producers emit through a Reporter so they never depend
// on storage; BagReporter collects into a Bag that supports limits, stable
// sorting and deduplication. Rendering lives in internal/diagfmt.
//
// Code ranges:
//
//   - 1xxx lexical (LEX)
//   - 2xxx syntax (SYN)
//   - 4xxx directive placement and alignment (DIR)
//   - 9xxx internal defects (INT); these never describe user input
//
// Keep the model deterministic: the CLI caches and diffs diagnostics.
package diag
