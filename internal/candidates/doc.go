// Package candidates splits a work's source text into the ordered,
// sentence-like units that ASR transcriptions are aligned against.
//
// Splitting is character driven: a configurable set of delimiters (newline and
// the ideographic full stop by default) closes the current unit, and the
// delimiter stays attached to the unit it closes so trailing punctuation
// survives denormalization. Buffers consisting only of a delimiter are dropped,
// which keeps consecutive delimiters from producing empty candidates.
//
// Sequences returned here are restartable: ranging over them twice re-scans
// the source rather than consuming it.
package candidates
