// Package config loads, normalizes, and validates aligner configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ALIGNER_DATA_DIR and ALIGNER_MECAB_PATH. The Config type centralizes every
// knob the CLI and workflow need: where works live, how source text is split,
// which reading backend to run, and the matching weights.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical strategy names, and clear validation errors.
package config
