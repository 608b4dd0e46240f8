// Package workflow aligns every work under the data directory.
//
// The Runner discovers works (directories holding data.db), then processes
// them on a fixed-size worker pool, one work per task. Each work is guarded by
// an exclusive file lock so concurrent runs never write the same database.
// Within a work the runner loads the source text, splits it into candidates,
// reads the stored transcriptions, resolves the alignment through the match
// cache, and writes the results back.
//
// A failure in one work is recorded in the Report and never stops the others.
package workflow
