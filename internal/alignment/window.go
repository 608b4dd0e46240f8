package alignment

import (
	"context"

	"github.com/jamesohortle/japanese-utilities/internal/fuzzy"
)

type window struct {
	text   string
	source int
}

// windowSizes returns the half-open range of window lengths for a query of n
// runes.
func windowSizes(n int) (lo, hi int) {
	return n - n/2, n + n/2
}

// windows enumerates every substring of each pool candidate's normalized text
// whose length falls in the window range, tagged with its pool position.
func windows(queryLen int, pool []Candidate) []window {
	lo, hi := windowSizes(queryLen)
	var out []window
	for p, c := range pool {
		rs := []rune(c.Normalized)
		for size := lo; size < hi; size++ {
			for i := 0; i+size <= len(rs); i++ {
				out = append(out, window{text: string(rs[i : i+size]), source: p})
			}
		}
	}
	return out
}

// searchWindows returns the window whose reading best matches the reading of
// normT, and the candidate it came from. A nil candidate means nothing matched.
func (m *Matcher) searchWindows(ctx context.Context, normT string, pool []Candidate) (string, *Candidate, error) {
	ws := windows(len([]rune(normT)), pool)
	if len(ws) == 0 {
		return "", nil, nil
	}

	// Transcribe each distinct window once; the query rides along at slot 0.
	texts := []string{normT}
	slot := make(map[string]int, len(ws))
	for _, w := range ws {
		if _, ok := slot[w.text]; !ok {
			slot[w.text] = len(texts)
			texts = append(texts, w.text)
		}
	}
	readings, err := m.readings(ctx, texts)
	if err != nil {
		return "", nil, err
	}
	windowReadings := make([]string, len(ws))
	for i, w := range ws {
		windowReadings[i] = readings[slot[w.text]]
	}

	search := fuzzy.Search{Scorer: fuzzy.Ratio, Cutoff: m.windowCutoff}
	best, ok := search.One(readings[0], windowReadings)
	if !ok {
		return "", nil, nil
	}
	w := ws[best.Index]
	return w.text, &pool[w.source], nil
}
