// Package preflight provides readiness checks for the filesystem paths and
// external tools the aligner depends on.
//
// The CLI "aligner check" command runs RunAll and prints every result, and
// "aligner align" runs it before starting a pass so a missing data directory
// or a broken MeCab install fails fast instead of failing every work.
//
// Each check is gated by its config value; the MeCab probe only runs when
// reading.backend is mecab.
package preflight
