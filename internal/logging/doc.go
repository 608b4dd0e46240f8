// Package logging assembles structured slog loggers and formatting helpers
// used across the aligner.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can tag log
// lines with work IDs, run IDs, and stages without threading them manually.
// A no-op logger is provided for tests and for wiring code that cannot fail.
package logging
