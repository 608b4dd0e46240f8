// Package matchcache remembers alignment results per work so unchanged works
// are not re-scored on every pass.
//
// Entries are keyed by work ID and algorithm version. The version is derived
// from the scoring configuration (weights, top-K, reading backend, splitting
// characters), so changing any of them invalidates every entry at once. Each
// entry also records a digest of the inputs it was computed from; an entry
// whose digest no longer matches the work's transcriptions and source text is
// treated as a miss.
//
// The cache is stored as a JSON file at a configurable path (default:
// ~/.cache/aligner/match_cache.json). Enable it in config.toml:
//
//	[workflow]
//	cache_enabled = true
//
//	[paths]
//	cache_dir = "~/.cache/aligner"
//
// CLI commands for inspection and management:
//
//	aligner cache list
//	aligner cache clear [work...]
package matchcache
