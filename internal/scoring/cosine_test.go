package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.Vector
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        types.Vector{0.3, -1.2, 4.5},
			b:        types.Vector{0.3, -1.2, 4.5},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        types.Vector{1, 0},
			b:        types.Vector{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        types.Vector{1, 2},
			b:        types.Vector{-1, -2},
			expected: -1.0,
		},
		{
			name:     "scaled vectors",
			a:        types.Vector{1, 1},
			b:        types.Vector{5, 5},
			expected: 1.0,
		},
		{
			name:     "zero vector",
			a:        types.ZeroVector(3),
			b:        types.Vector{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        types.Vector{},
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestCosine_ShapeMismatch(t *testing.T) {
	_, err := Cosine(types.Vector{1, 2, 3}, types.Vector{1, 2})
	require.Error(t, err)

	var shapeErr *ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, 3, shapeErr.Left)
	assert.Equal(t, 2, shapeErr.Right)
	assert.Contains(t, err.Error(), "3 vs 2")
}
