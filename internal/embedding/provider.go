// Package embedding turns text into document vectors.
//
// A Provider resolves model names against a registry, loads models lazily through a Loader,
// keeps at most a few of them resident in an LRU cache and applies the model family's
// input conventions before inference. Empty input never reaches a model: it yields the
// zero vector of the model's declared dimension.
package embedding

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Options configures a Provider
type Options struct {
	CacheSize int
	Logger    *zap.Logger
}

// Provider embeds text with named models
type Provider struct {
	loader Loader
	logger *zap.Logger

	mu    sync.Mutex // guards cache and load-or-fetch
	cache *modelCache
}

// NewProvider creates a provider. Models are loaded on first use.
func NewProvider(loader Loader, opts Options) *Provider {
	return &Provider{
		loader: loader,
		logger: logger.OrNop(opts.Logger),
		cache:  newModelCache(opts.CacheSize),
	}
}

// EmbedOne embeds a single text. Empty text yields the zero vector.
func (p *Provider) EmbedOne(ctx context.Context, text, model string, isQuery bool) (types.Vector, error) {
	vecs, err := p.EmbedMany(ctx, []string{text}, model, isQuery)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedMany embeds texts in order. Empty items get zero vectors and are not sent to the model.
func (p *Provider) EmbedMany(ctx context.Context, texts []string, model string, isQuery bool) ([]types.Vector, error) {
	info, err := ResolveModel(model)
	if err != nil {
		return nil, err
	}

	out := make([]types.Vector, len(texts))
	inputs := make([]string, 0, len(texts))
	positions := make([]int, 0, len(texts))
	for i, t := range texts {
		normalized := parsing.NormalizeInline(t)
		if normalized == "" {
			out[i] = types.ZeroVector(info.Dimension)
			continue
		}
		inputs = append(inputs, ApplyPrefix(info, normalized, isQuery))
		positions = append(positions, i)
	}
	if len(inputs) == 0 {
		return out, nil
	}

	m, err := p.model(ctx, info)
	if err != nil {
		return nil, err
	}

	vecs, err := m.Embed(ctx, inputs, isQuery)
	if err != nil {
		return nil, unavailable(ctx, info, err)
	}
	if len(vecs) != len(inputs) {
		return nil, &scoring.ShapeMismatchError{Left: len(inputs), Right: len(vecs)}
	}

	for j, v := range vecs {
		if v.Dimension() != info.Dimension {
			return nil, &scoring.ShapeMismatchError{Left: info.Dimension, Right: v.Dimension()}
		}
		out[positions[j]] = unitNormalize(v)
	}

	p.logger.Debug("embedded texts",
		zap.String(logger.FieldModel, info.Name),
		zap.Int("texts", len(texts)),
		zap.Int("sent", len(inputs)),
		zap.Bool("query", isQuery))
	return out, nil
}

// Probe loads a model eagerly and runs one inference to check it is reachable
func (p *Provider) Probe(ctx context.Context, model string) error {
	info, err := ResolveModel(model)
	if err != nil {
		return err
	}
	m, err := p.model(ctx, info)
	if err != nil {
		return err
	}
	if _, err := m.Embed(ctx, []string{ApplyPrefix(info, "probe", false)}, false); err != nil {
		return &ModelUnavailableError{Model: info.Name, Cause: err}
	}
	return nil
}

// unavailable wraps a backend inference failure. Cancellation and shape violations pass through.
func unavailable(ctx context.Context, info ModelInfo, err error) error {
	var shapeErr *scoring.ShapeMismatchError
	if ctx.Err() != nil || errors.As(err, &shapeErr) {
		return err
	}
	return &ModelUnavailableError{Model: info.Name, Cause: err}
}

// Loaded returns the names of resident models, most recently used first
func (p *Provider) Loaded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.names()
}

// Close releases every resident model
func (p *Provider) Close() error {
	p.mu.Lock()
	models := p.cache.drain()
	p.mu.Unlock()

	var firstErr error
	for _, m := range models {
		if err := closeModel(m); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// model returns a cached model or loads it.
// Evicted models are closed after the cache lock is released, since closing waits for in-flight inference.
func (p *Provider) model(ctx context.Context, info ModelInfo) (Model, error) {
	m, evicted, err := p.loadOrGet(ctx, info)
	for _, old := range evicted {
		p.logger.Info("evicting embedding model", zap.String(logger.FieldModel, old.Name()))
		if err := closeModel(old); err != nil {
			p.logger.Warn("failed to close evicted model",
				zap.String(logger.FieldModel, old.Name()),
				zap.Error(err))
		}
	}
	return m, err
}

func (p *Provider) loadOrGet(ctx context.Context, info ModelInfo) (Model, []Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m, ok := p.cache.get(info.Name); ok {
		return m, nil, nil
	}

	p.logger.Info("loading embedding model",
		zap.String(logger.FieldModel, info.Name),
		zap.String("backend", string(info.Backend)))

	loaded, err := p.loader.Load(ctx, info)
	if err != nil {
		return nil, nil, &ModelUnavailableError{Model: info.Name, Cause: err}
	}
	if dim := loaded.Dimension(); dim != info.Dimension {
		_ = closeModel(loaded)
		return nil, nil, &ModelUnavailableError{
			Model: info.Name,
			Cause: &scoring.ShapeMismatchError{Left: info.Dimension, Right: dim},
		}
	}

	m := &lockedModel{model: loaded}
	return m, p.cache.add(info.Name, m), nil
}

func closeModel(m Model) error {
	if c, ok := m.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// unitNormalize scales v to unit length. Zero vectors are returned as is.
func unitNormalize(v types.Vector) types.Vector {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make(types.Vector, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
