// Package fuzzy scores string similarity on a 0-100 scale and ranks choices
// against a query.
//
// Ratio is the indel similarity 2*LCS/(len(a)+len(b)) over runes, rounded
// half to even. PartialRatio slides the shorter string across the longer one
// and keeps the best Ratio. Ranked results carry the index of the choice they
// came from, so callers never need to map text back to a position.
package fuzzy
