package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// DefaultLimit is the number of results Best returns when Limit is unset.
const DefaultLimit = 5

// Processor prepares a string before scoring.
type Processor func(string) string

// Match is one ranked choice.
type Match struct {
	Index int
	Text  string
	Score int
}

// Search ranks choices against a query.
type Search struct {
	Scorer    Scorer
	Processor Processor
	// Limit caps the number of results; zero means DefaultLimit and a
	// negative value means no cap.
	Limit int
	// Cutoff drops choices scoring below it.
	Cutoff int
}

// DefaultProcessor lowercases s, turns every rune that is neither a letter nor
// a number into a space, and trims the ends.
func DefaultProcessor(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

// Best returns the highest scoring choices in descending score order. Equal
// scores keep their order in choices. Match.Text is the unprocessed choice.
func (s Search) Best(query string, choices []string) []Match {
	scorer := s.Scorer
	if scorer == nil {
		scorer = Ratio
	}
	process := s.Processor
	if process == nil {
		process = DefaultProcessor
	}
	q := process(query)

	matches := make([]Match, 0, len(choices))
	for i, choice := range choices {
		score := scorer(q, process(choice))
		if score < s.Cutoff {
			continue
		}
		matches = append(matches, Match{Index: i, Text: choice, Score: score})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	limit := s.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// One returns the first highest scoring choice. It reports false when there
// are no choices or none reach the cutoff.
func (s Search) One(query string, choices []string) (Match, bool) {
	s.Limit = 1
	best := s.Best(query, choices)
	if len(best) == 0 {
		return Match{}, false
	}
	return best[0], true
}
