// Package trace records the timeline of a danube run: driver commands,
// compiler passes (parse, collect, check) and per-wave module work.
//
// Tracing is off unless requested with --trace on the command line or the
// [trace] table of danube.toml:
//
//	danube check --trace=- --trace-level=detail src/main.dn
//
// # Tracers
//
//   - Nop: used when tracing is off; spans cost one interface call
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a run fails
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Every event has a Scope (driver, pass, module, node). The Level decides
// which scopes are kept: error keeps driver events, phase adds passes,
// detail adds modules and debug keeps everything.
//
// # Context propagation
//
// The driver stores the tracer and the current span in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "collect")
//	defer span.End("")
package trace
