package alignment

import (
	"context"
	"fmt"
	"slices"

	"github.com/jamesohortle/japanese-utilities/internal/fuzzy"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/services"
)

// minRankScore keeps candidates with no similarity at all out of the ranked
// sets, so an unrelated transcription ends up with an empty intersection.
const minRankScore = 1

// AlignWork aligns every transcription of a work, in order. Transcriptions and
// candidates must carry dense indices matching their slice positions.
func (m *Matcher) AlignWork(ctx context.Context, trans []Transcription, cands []Candidate) ([]MatchResult, error) {
	if err := checkDense(trans, cands); err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, m.logger)

	surfaceChoices := make([]string, len(cands))
	phoneticChoices := make([]string, len(cands))
	for i, c := range cands {
		surfaceChoices[i] = c.Normalized
		phoneticChoices[i] = c.Reading
	}
	surfaceSearch := fuzzy.Search{Scorer: fuzzy.PartialRatio, Limit: m.topK, Cutoff: minRankScore}
	phoneticSearch := fuzzy.Search{Scorer: fuzzy.Ratio, Limit: m.topK, Cutoff: minRankScore}

	results := make([]MatchResult, len(trans))
	matched := 0
	for tInd, t := range trans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if t.Normalized == "" {
			results[tInd] = unmatched(tInd)
			continue
		}
		surface := surfaceSearch.Best(t.Normalized, surfaceChoices)
		phonetic := phoneticSearch.Best(t.Reading, phoneticChoices)

		result, err := m.judge(tInd, len(trans), cands, surface, phonetic)
		if err != nil {
			return nil, err
		}
		if result.Matched() {
			matched++
		}
		results[tInd] = result
		logger.Debug("transcription judged",
			logging.Int("transcription_index", tInd),
			logging.Int("candidate_index", result.CandidateIndex),
			logging.Int("surface_candidates", len(surface)),
			logging.Int("phonetic_candidates", len(phonetic)),
		)
	}
	logger.Info("work aligned",
		logging.Int("transcriptions", len(trans)),
		logging.Int("candidates", len(cands)),
		logging.Int("matched", matched),
		logging.String(logging.FieldEventType, "work_aligned"),
	)
	return results, nil
}

// judge intersects the surface and phonetic candidate sets for the
// transcription at tInd of m and picks the winner.
func (m *Matcher) judge(tInd, total int, cands []Candidate, surface, phonetic []fuzzy.Match) (MatchResult, error) {
	surfaceScores, err := scoresByIndex(surface, len(cands))
	if err != nil {
		return MatchResult{}, err
	}
	phoneticScores, err := scoresByIndex(phonetic, len(cands))
	if err != nil {
		return MatchResult{}, err
	}

	var common []int
	for i := range surfaceScores {
		if _, ok := phoneticScores[i]; ok {
			common = append(common, i)
		}
	}
	slices.Sort(common)

	switch len(common) {
	case 0:
		return unmatched(tInd), nil
	case 1:
		i := common[0]
		return MatchResult{TranscriptionIndex: tInd, CandidateIndex: i, Text: cands[i].Raw}, nil
	}

	best, bestScore := -1, 0.0
	for _, i := range common {
		score := m.weights.pairScore(surfaceScores[i], phoneticScores[i], tInd, total, i, len(cands))
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return MatchResult{TranscriptionIndex: tInd, CandidateIndex: best, Text: cands[best].Raw}, nil
}

// scoresByIndex keys ranked matches by candidate index. Duplicate or
// out-of-range indices break the pairing between the two channels.
func scoresByIndex(matches []fuzzy.Match, n int) (map[int]int, error) {
	out := make(map[int]int, len(matches))
	for _, match := range matches {
		if match.Index < 0 || match.Index >= n {
			return nil, services.Wrap(services.ErrInvariant, "alignment", "rank candidates",
				fmt.Sprintf("candidate index %d outside [0,%d)", match.Index, n), nil)
		}
		if _, dup := out[match.Index]; dup {
			return nil, services.Wrap(services.ErrInvariant, "alignment", "rank candidates",
				fmt.Sprintf("candidate index %d ranked twice", match.Index), nil)
		}
		out[match.Index] = match.Score
	}
	return out, nil
}

func checkDense(trans []Transcription, cands []Candidate) error {
	for i, t := range trans {
		if t.Index != i {
			return services.Wrap(services.ErrInvariant, "alignment", "check indices",
				fmt.Sprintf("transcription at position %d has index %d", i, t.Index), nil)
		}
	}
	for i, c := range cands {
		if c.Index != i {
			return services.Wrap(services.ErrInvariant, "alignment", "check indices",
				fmt.Sprintf("candidate at position %d has index %d", i, c.Index), nil)
		}
	}
	return nil
}
