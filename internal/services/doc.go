// Package services defines shared utilities consumed by the alignment core,
// the workflow runner, and the external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp work identifiers, run identifiers, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     invariant violations, collaborator failures, or configuration problems.
//   - Thin abstractions that make command execution by external tools (the
//     phonetic transcriber) testable.
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability) stays uniform across works.
package services
