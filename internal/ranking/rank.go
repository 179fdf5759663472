// Package ranking orders scored candidates for one job description.
package ranking

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Rank returns the candidates sorted by score, highest first.
// Equal scores keep their input order and a candidate without a result scores 0.
// The input slice is left untouched.
func Rank(candidates []types.Candidate) []types.Candidate {
	ranked := make([]types.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	return ranked
}

// Top returns at most n of the highest ranked candidates. n <= 0 returns all of them.
func Top(candidates []types.Candidate, n int) []types.Candidate {
	ranked := Rank(candidates)
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
