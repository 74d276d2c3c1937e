// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (see codes.go), a short Message, the Primary span and optional
// Notes and Fixes. Notes should add new context ("previous definition here")
// rather than repeat the message.
//
// Phases never format or print. They emit through a Reporter, usually via
// ReportError/ReportWarning and a chained ReportBuilder, and the driver
// collects everything into a Bag. Rendering lives in internal/diagfmt.
//
// Code ranges:
//
//	1xxx  lexer
//	2xxx  parser
//	3xxx  name resolution
//	4xxx  I/O
//	5xxx  project / manifest
//	6xxx  observability
package diag
