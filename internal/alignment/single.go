package alignment

import (
	"context"

	"github.com/jamesohortle/japanese-utilities/internal/fuzzy"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
)

// Align matches one transcription against the candidate list.
func (m *Matcher) Align(ctx context.Context, t Transcription, cands []Candidate) (MatchResult, error) {
	logger := logging.WithContext(ctx, m.logger).With(logging.Int("transcription_index", t.Index))
	if t.Normalized == "" {
		logger.Debug("transcription skipped", logging.Args(logging.DecisionAttrs("single_match", "unmatched", "empty after normalization")...)...)
		return unmatched(t.Index), nil
	}

	pool := m.candidatePool(t, cands)
	if len(pool) == 0 {
		logger.Debug("no candidate cleared threshold", logging.Args(logging.DecisionAttrs("single_match", "unmatched", "empty pool")...)...)
		return unmatched(t.Index), nil
	}
	// A whole candidate equal to the transcription beats any window, which
	// could otherwise tie at 100 inside an earlier, longer candidate.
	for _, c := range pool {
		if c.Normalized != t.Normalized {
			continue
		}
		logger.Debug("exact candidate accepted",
			logging.Args(append(logging.DecisionAttrs("single_match", "exact", "candidate equals transcription"),
				logging.Int("candidate_index", c.Index))...)...)
		return MatchResult{TranscriptionIndex: t.Index, CandidateIndex: c.Index, Text: c.Raw}, nil
	}

	best, source, err := m.searchWindows(ctx, t.Normalized, pool)
	if err != nil {
		return MatchResult{}, err
	}
	if source == nil {
		logger.Debug("no window matched",
			logging.Args(append(logging.DecisionAttrs("single_match", "unmatched", "window search empty"),
				logging.Int("pool_size", len(pool)))...)...)
		return unmatched(t.Index), nil
	}

	text := m.Denormalize(best, source.Raw)
	logger.Debug("window accepted",
		logging.Args(append(logging.DecisionAttrs("single_match", "window", "best reading match"),
			logging.Int("candidate_index", source.Index),
			logging.Int("pool_size", len(pool)),
			logging.String("window", best))...)...)
	return MatchResult{TranscriptionIndex: t.Index, CandidateIndex: source.Index, Text: text}, nil
}

// candidatePool keeps, in order, the candidates whose combined surface and
// phonetic partial similarity clears the threshold.
func (m *Matcher) candidatePool(t Transcription, cands []Candidate) []Candidate {
	var pool []Candidate
	for _, c := range cands {
		if c.Normalized == "" {
			continue
		}
		surface := fuzzy.PartialRatio(t.Normalized, c.Normalized)
		phonetic := fuzzy.PartialRatio(t.Reading, c.Reading)
		if m.weights.poolScore(surface, phonetic) >= m.weights.Threshold {
			pool = append(pool, c)
		}
	}
	return pool
}
