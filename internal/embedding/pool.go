package embedding

import (
	"context"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// PoolStrategy reduces chunk vectors to one document vector
type PoolStrategy string

// Pooling strategies
const (
	PoolMean PoolStrategy = "mean"
	PoolMax  PoolStrategy = "max"
)

// ParsePoolStrategy maps a name to a strategy. Unknown names fall back to mean.
func ParsePoolStrategy(name string) PoolStrategy {
	if PoolStrategy(strings.ToLower(strings.TrimSpace(name))) == PoolMax {
		return PoolMax
	}
	return PoolMean
}

// Pool reduces vectors along the chunk axis. All vectors must share one dimension.
func Pool(vecs []types.Vector, strategy PoolStrategy) (types.Vector, error) {
	if len(vecs) == 0 {
		return types.Vector{}, nil
	}

	dim := len(vecs[0])
	for _, v := range vecs[1:] {
		if len(v) != dim {
			return nil, &scoring.ShapeMismatchError{Left: dim, Right: len(v)}
		}
	}

	out := make(types.Vector, dim)
	switch ParsePoolStrategy(string(strategy)) {
	case PoolMax:
		copy(out, vecs[0])
		for _, v := range vecs[1:] {
			for i, x := range v {
				if x > out[i] {
					out[i] = x
				}
			}
		}
	default:
		sums := make([]float64, dim)
		for _, v := range vecs {
			for i, x := range v {
				sums[i] += float64(x)
			}
		}
		n := float64(len(vecs))
		for i, s := range sums {
			out[i] = float32(s / n)
		}
	}
	return out, nil
}

// EmbedAndPool chunks text into paragraphs, embeds the chunks and pools them.
// Text without a qualifying paragraph is embedded whole.
func (p *Provider) EmbedAndPool(ctx context.Context, text, model string, strategy PoolStrategy, isQuery bool) (types.Vector, error) {
	chunks := parsing.Chunk(text)
	if len(chunks) == 0 {
		return p.EmbedOne(ctx, text, model, isQuery)
	}

	vecs, err := p.EmbedMany(ctx, chunks, model, isQuery)
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return p.EmbedOne(ctx, text, model, isQuery)
	}
	return Pool(vecs, strategy)
}
