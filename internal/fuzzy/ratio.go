package fuzzy

import (
	"math"

	"github.com/antzucaro/matchr"
)

// Scorer compares two strings and returns a similarity in [0, 100].
type Scorer func(a, b string) int

// Ratio returns the full-string similarity of a and b. Either string being
// empty scores 0.
func Ratio(a, b string) int {
	return ratio(a, b, len([]rune(a))+len([]rune(b)))
}

// PartialRatio returns the best Ratio between the shorter string and every
// same-length substring of the longer one.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := ratio(string(short), string(long[i:i+len(short)]), 2*len(short))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// ratio scores the indel similarity 2*LCS/total, where total is the combined
// rune length of a and b.
func ratio(a, b string, total int) int {
	if a == "" || b == "" {
		return 0
	}
	lcs := matchr.LongestCommonSubsequence(a, b)
	return int(math.RoundToEven(100 * float64(2*lcs) / float64(total)))
}
