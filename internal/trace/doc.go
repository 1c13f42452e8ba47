// Package trace records structured begin/end events for the parse pipeline.
//
// The toolchain has no logging library: user-facing findings are diagnostics
// (internal/diag), and operational output is trace events written as text or
// NDJSON to a stream.
//
//	pyparse parse --trace=- --trace-level=detail src/
//
// Levels gate scopes: phase shows driver and pass boundaries, detail adds
// per-file work, debug adds per-statement directive placement.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
