package alignment

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Revision changes whenever scoring behaviour changes in a way that should
// invalidate cached results.
const Revision = "1"

// DefaultTopK is the number of ranked candidates kept per channel.
const DefaultTopK = 5

var versionNamespace = uuid.MustParse("9b3c1f6e-5a1d-4c7e-8f02-6d2b4a7e9c31")

// Weights are the empirical constants that combine surface, phonetic, and
// positional evidence.
type Weights struct {
	// Phonetic multiplies the phonetic similarity before it is added to the
	// surface similarity.
	Phonetic float64
	// Position scales the relative-position term of the batch matcher.
	Position float64
	// Threshold is the minimum normalized combined score a candidate needs to
	// enter the single-item pool.
	Threshold float64
}

// DefaultWeights returns the reference constants.
func DefaultWeights() Weights {
	return Weights{Phonetic: 0.75, Position: 5, Threshold: 0.5}
}

// Validate reports the first out-of-range weight.
func (w Weights) Validate() error {
	switch {
	case math.IsNaN(w.Phonetic) || w.Phonetic < 0:
		return fmt.Errorf("phonetic_weight must be >= 0")
	case math.IsNaN(w.Position) || w.Position < 0:
		return fmt.Errorf("position_weight must be >= 0")
	case math.IsNaN(w.Threshold) || w.Threshold < 0 || w.Threshold > 1:
		return fmt.Errorf("acceptance_threshold must be between 0 and 1")
	}
	return nil
}

// poolScore combines surface and phonetic partial similarities into [0, 1].
func (w Weights) poolScore(surface, phonetic int) float64 {
	return (float64(surface) + w.Phonetic*float64(phonetic)) / (100 + 100*w.Phonetic)
}

// pairScore adds the positional term for a transcription at tInd of m and a
// candidate at i of n.
func (w Weights) pairScore(surface, phonetic, tInd, m, i, n int) float64 {
	offset := math.Abs(float64(tInd)/float64(m) - float64(i)/float64(n))
	positional := w.Position * (1 - offset)
	return (float64(surface) + w.Phonetic*float64(phonetic) + positional) / (100 + 100*w.Phonetic + w.Position)
}

// Version derives a stable identifier for the scoring configuration. Extra
// parts (reading backend, splitting characters) are folded in verbatim.
func Version(w Weights, topK, windowCutoff int, extra ...string) string {
	key := fmt.Sprintf("rev=%s;phonetic=%g;position=%g;threshold=%g;top_k=%d;window_cutoff=%d;%s",
		Revision, w.Phonetic, w.Position, w.Threshold, topK, windowCutoff, strings.Join(extra, ";"))
	return uuid.NewSHA1(versionNamespace, []byte(key)).String()
}
