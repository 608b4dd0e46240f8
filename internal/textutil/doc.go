// Package textutil provides the text canonicalization used to compare ASR
// output against source text, plus helpers for decoding source files.
//
// Normalization is a fixed pipeline:
//   - Unicode compatibility normalization (NFKC)
//   - every punctuation-class rune becomes a single space
//   - every rune outside the allowed alphabet becomes a space
//   - whitespace runs collapse to one space and the ends are trimmed
//   - whitespace strictly between two non-ASCII runes is removed
//
// The default alphabet keeps printable ASCII, hiragana, katakana, the CJK
// ideograph blocks, and the iteration mark 々. Callers needing a different
// alphabet construct their own Normalizer.
package textutil
