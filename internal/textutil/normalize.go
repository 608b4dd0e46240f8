package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes text for comparison. The zero value is not usable;
// construct one with NewNormalizer or use Default.
type Normalizer struct {
	punctuation *unicode.RangeTable
	alphabet    *unicode.RangeTable
}

var defaultNormalizer = NewNormalizer(Punctuation, JapaneseAlphabet)

// Default returns the normalizer configured for mixed Japanese/Latin text.
func Default() *Normalizer {
	return defaultNormalizer
}

// NewNormalizer builds a normalizer from a punctuation class and an alphabet.
// Nil tables fall back to the defaults.
func NewNormalizer(punctuation, alphabet *unicode.RangeTable) *Normalizer {
	if punctuation == nil {
		punctuation = Punctuation
	}
	if alphabet == nil {
		alphabet = JapaneseAlphabet
	}
	return &Normalizer{punctuation: punctuation, alphabet: alphabet}
}

// Normalize runs text through the default normalizer.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize returns the canonical comparison form of text. Empty or
// all-punctuation input yields the empty string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	// Chain keeps internal buffers, so each call gets its own instance.
	t := transform.Chain(
		norm.NFKC,
		runes.If(runes.In(n.punctuation), runes.Map(toSpace), nil),
		runes.If(runes.NotIn(n.alphabet), runes.Map(toSpace), nil),
	)
	mapped, _, err := transform.String(t, text)
	if err != nil {
		// The transformers above never fail on valid input; fall back to
		// NFKC alone for malformed UTF-8.
		mapped = norm.NFKC.String(text)
	}
	compacted := strings.Join(strings.Fields(mapped), " ")
	return joinNonASCII(compacted)
}

// IsPunctuation reports whether r is in this normalizer's punctuation class.
func (n *Normalizer) IsPunctuation(r rune) bool {
	return unicode.Is(n.punctuation, r)
}

func toSpace(rune) rune { return ' ' }

// joinNonASCII drops single spaces whose neighbours are both outside the
// printable ASCII range. Input must already be space-compacted, so every run
// is one space and its neighbours never change as runs are removed; one pass
// reaches the fixed point.
func joinNonASCII(s string) string {
	if !strings.Contains(s, " ") {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range rs {
		if r == ' ' && i > 0 && i < len(rs)-1 && !isPrintableASCII(rs[i-1]) && !isPrintableASCII(rs[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isPrintableASCII(r rune) bool {
	return r >= 0x20 && r <= 0x7F
}
