// Package logs reads the per-run log files the aligner writes.
//
// Last returns the final lines of a file with bounded memory, and Follow
// streams lines appended afterwards, waking on filesystem events rather than
// polling. Callers supply a context to stop following.
package logs
