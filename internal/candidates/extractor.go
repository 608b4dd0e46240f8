package candidates

import (
	"iter"
	"strings"
)

// DefaultSplittingChars are the delimiters used when none are configured.
var DefaultSplittingChars = []rune{'\n', '。'}

// Token is one piece of scanned source text. Bare delimiters that did not
// close a candidate are reported with Delimiter set.
type Token struct {
	Text      string
	Delimiter bool
}

// Extractor splits source text on a fixed set of delimiter runes.
type Extractor struct {
	splitting map[rune]struct{}
}

// NewExtractor builds an extractor. With no runes it uses DefaultSplittingChars.
func NewExtractor(splitting ...rune) *Extractor {
	if len(splitting) == 0 {
		splitting = DefaultSplittingChars
	}
	set := make(map[rune]struct{}, len(splitting))
	for _, r := range splitting {
		set[r] = struct{}{}
	}
	return &Extractor{splitting: set}
}

// IsSplitting reports whether r closes a candidate.
func (e *Extractor) IsSplitting(r rune) bool {
	_, ok := e.splitting[r]
	return ok
}

// Scan yields every piece of text in order. Concatenating the Text of all
// tokens reproduces the source exactly.
func (e *Extractor) Scan(source string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		start := 0
		for i, r := range source {
			if !e.IsSplitting(r) {
				continue
			}
			end := i + len(string(r))
			piece := source[start:end]
			start = end
			// A buffer holding only the delimiter is not a sentence.
			if !yield(Token{Text: piece, Delimiter: piece == string(r)}) {
				return
			}
		}
		if start < len(source) {
			yield(Token{Text: source[start:]})
		}
	}
}

// Sentences yields the candidate texts of source, skipping bare delimiters.
func (e *Extractor) Sentences(source string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range e.Scan(source) {
			if tok.Delimiter {
				continue
			}
			if !yield(tok.Text) {
				return
			}
		}
	}
}

// Split collects Sentences into a slice.
func (e *Extractor) Split(source string) []string {
	var out []string
	for s := range e.Sentences(source) {
		out = append(out, s)
	}
	return out
}

// ParseSplittingChars converts configured delimiter strings into runes. Each
// entry must be exactly one rune; escape sequences such as "\n" are decoded
// by the TOML layer before they reach here.
func ParseSplittingChars(values []string) []rune {
	out := make([]rune, 0, len(values))
	for _, v := range values {
		rs := []rune(v)
		if len(rs) != 1 {
			continue
		}
		out = append(out, rs[0])
	}
	return out
}

// Join concatenates tokens back into source text.
func Join(tokens iter.Seq[Token]) string {
	var b strings.Builder
	for tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}
