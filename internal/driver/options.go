package driver

import "pyparse/internal/directive"

// Options configure a parse run over one file or a directory.
type Options struct {
	MaxDiagnostics int
	Filter         directive.Filter
	Jobs           int          // ParseDir/CollectDirectives; <= 0 means GOMAXPROCS
	Cache          *DiskCache   // directive reports, may be nil
	Progress       ProgressSink // may be nil
	Timings        bool         // fill ParseResult.Timing
}
