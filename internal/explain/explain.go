// Package explain builds the present/missing skills rationale for a match.
package explain

import "github.com/jonathan/resume-matcher/internal/types"

// MaxItems is how many skills each list keeps
const MaxItems = 5

// PlaceholderNote is the static note attached to every explanation
const PlaceholderNote = "Skill lists only; free-text rationale is not generated."

// BuildExplanation keeps the first MaxItems of each list in the order given.
// Callers sort by relevance; nothing is reordered here.
func BuildExplanation(present, missing []string) types.Explanation {
	return types.Explanation{
		Strong:  head(present, MaxItems),
		Missing: head(missing, MaxItems),
		Notes:   PlaceholderNote,
	}
}

func head(items []string, n int) []string {
	out := make([]string, 0, min(len(items), n))
	for i := 0; i < len(items) && i < n; i++ {
		out = append(out, items[i])
	}
	return out
}
