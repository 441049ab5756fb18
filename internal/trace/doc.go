// Package trace provides structured event tracing for declc.
//
// Tracing is the logging channel of the toolchain: the driver, the
// declaration pass and the declaration core emit events through a Tracer
// rather than printing.
//
//	declc check --trace=- --trace-level=debug base.decl.toml
//
// Implementations: Nop (zero overhead when disabled), StreamTracer
// (immediate text or NDJSON output) and RingTracer (last N events in memory,
// dumped on internal errors).
//
// Levels gate event scopes: LevelPhase shows driver and pass boundaries,
// LevelDetail adds per-module events, LevelDebug adds one event per
// declaration.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "declare", 0)
//	defer span.End("")
package trace
