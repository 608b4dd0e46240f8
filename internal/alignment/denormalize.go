package alignment

// Denormalize maps a normalized fragment back onto the original characters of
// candidate. Spans start on a rune equal to best's first rune and end on one
// equal to its last; the first span whose normalization equals best wins,
// scanning start positions and then end positions in ascending order. A
// punctuation or splitting rune directly after the span is kept. When no span
// reproduces best, best is returned unchanged.
func (m *Matcher) Denormalize(best, candidate string) string {
	if best == "" {
		return best
	}
	b := []rune(best)
	head, tail := b[0], b[len(b)-1]
	rs := []rune(candidate)

	var heads, tails []int
	for i, r := range rs {
		if r == head {
			heads = append(heads, i)
		}
		if r == tail {
			tails = append(tails, i)
		}
	}

	for _, h := range heads {
		for _, t := range tails {
			if t < h {
				continue
			}
			if m.normalizer.Normalize(string(rs[h:t+1])) != best {
				continue
			}
			if t+1 < len(rs) && m.keepsTrailing(rs[t+1]) {
				return string(rs[h : t+2])
			}
			return string(rs[h : t+1])
		}
	}
	return best
}

func (m *Matcher) keepsTrailing(r rune) bool {
	return m.normalizer.IsPunctuation(r) || m.extractor.IsSplitting(r)
}
