package reading

import (
	"context"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const kanaOffset = 0x60

// Kana folds text to compatibility form and maps katakana onto hiragana.
type Kana struct{}

// Readings implements Transcriber.
func (Kana) Readings(_ context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		folded, _, err := transform.String(transform.Chain(norm.NFKC, runes.Map(toHiragana)), text)
		if err != nil {
			return nil, err
		}
		out[i] = folded
	}
	return out, nil
}

func toHiragana(r rune) rune {
	switch {
	case r >= 'ァ' && r <= 'ヶ':
		return r - kanaOffset
	case r == 'ヽ' || r == 'ヾ':
		return r - kanaOffset
	default:
		return r
	}
}
