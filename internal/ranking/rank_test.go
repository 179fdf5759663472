package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func candidate(id string, score float64) types.Candidate {
	return types.Candidate{ID: id, Result: &types.ScoreResult{Score: score}}
}

func ids(candidates []types.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}

func TestRank_Descending(t *testing.T) {
	ranked := Rank([]types.Candidate{
		candidate("a", 0.2),
		candidate("b", 0.9),
		candidate("c", 0.5),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"b", "c", "a"}, ids(ranked))
	assert.Equal(t, 0.9, ranked[0].Score())
	assert.Equal(t, 0.5, ranked[1].Score())
	assert.Equal(t, 0.2, ranked[2].Score())
}

func TestRank_StableForTies(t *testing.T) {
	ranked := Rank([]types.Candidate{
		candidate("first", 0.5),
		candidate("second", 0.5),
	})
	assert.Equal(t, []string{"first", "second"}, ids(ranked))

	ranked = Rank([]types.Candidate{
		candidate("x", 0.1),
		candidate("p", 0.7),
		candidate("y", 0.1),
		candidate("q", 0.7),
		candidate("z", 0.1),
	})
	assert.Equal(t, []string{"p", "q", "x", "y", "z"}, ids(ranked))
}

func TestRank_MissingScoreIsZero(t *testing.T) {
	ranked := Rank([]types.Candidate{
		{ID: "unscored"},
		candidate("negative", -0.1),
		candidate("positive", 0.1),
		candidate("zero", 0),
	})

	assert.Equal(t, []string{"positive", "unscored", "zero", "negative"}, ids(ranked))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := []types.Candidate{candidate("a", 0.1), candidate("b", 0.2)}
	_ = Rank(input)

	assert.Equal(t, []string{"a", "b"}, ids(input))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestTop(t *testing.T) {
	input := []types.Candidate{candidate("a", 0.1), candidate("b", 0.3), candidate("c", 0.2)}

	assert.Equal(t, []string{"b", "c"}, ids(Top(input, 2)))
	assert.Equal(t, []string{"b", "c", "a"}, ids(Top(input, 0)))
	assert.Equal(t, []string{"b", "c", "a"}, ids(Top(input, 10)))
}
