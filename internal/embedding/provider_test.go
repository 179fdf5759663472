package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

const testModel = "all-MiniLM-L6-v2"

func TestEmbedOne_EmptyTextSkipsModel(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})

	for _, text := range []string{"", "   ", "\n\t\n"} {
		v, err := p.EmbedOne(context.Background(), text, testModel, false)
		require.NoError(t, err)
		assert.Len(t, v, 384)
		assert.True(t, v.IsZero())
	}
	assert.Equal(t, 0, loader.loadCount(), "empty input must not load the model")
}

func TestEmbedOne_UnitLength(t *testing.T) {
	p := NewProvider(newFakeLoader(), Options{})

	v, err := p.EmbedOne(context.Background(), "  senior   go engineer ", testModel, false)
	require.NoError(t, err)
	require.Len(t, v, 384)

	sim, err := scoring.Cosine(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-6)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestEmbedMany(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})

	vecs, err := p.EmbedMany(context.Background(), []string{"alpha", "", "beta  gamma"}, "e5-base-v2", false)
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	assert.False(t, vecs[0].IsZero())
	assert.True(t, vecs[1].IsZero())
	assert.Len(t, vecs[1], 768)
	assert.False(t, vecs[2].IsZero())

	// only non-empty texts reach the model, normalized and prefixed
	assert.Equal(t, []string{"passage: alpha", "passage: beta gamma"}, loader.models["e5-base-v2"].inputs)
}

func TestEmbedMany_EmptyInput(t *testing.T) {
	p := NewProvider(newFakeLoader(), Options{})

	vecs, err := p.EmbedMany(context.Background(), nil, testModel, true)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestEmbedMany_QueryPrefix(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})

	_, err := p.EmbedOne(context.Background(), "python developer", "intfloat/e5-large-v2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"query: python developer"}, loader.models["e5-large-v2"].inputs)
}

func TestProvider_CachesModels(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := p.EmbedOne(ctx, "text", testModel, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, loader.loadCount())
	assert.Equal(t, []string{testModel}, p.Loaded())
}

func TestProvider_EvictsLeastRecentlyUsed(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{CacheSize: 2})
	ctx := context.Background()

	embed := func(model string) {
		_, err := p.EmbedOne(ctx, "text", model, false)
		require.NoError(t, err)
	}

	embed("all-MiniLM-L6-v2")
	embed("e5-base-v2")
	embed("all-MiniLM-L6-v2")
	embed("bge-small-en-v1.5")

	assert.Equal(t, []string{"bge-small-en-v1.5", "all-MiniLM-L6-v2"}, p.Loaded())
	assert.True(t, loader.models["e5-base-v2"].closed)

	embed("e5-base-v2")
	assert.Equal(t, 4, loader.loadCount(), "evicted model is reloaded")
}

func TestProvider_LoaderFailure(t *testing.T) {
	loader := newFakeLoader()
	loader.err = errBackendDown
	p := NewProvider(loader, Options{})

	_, err := p.EmbedOne(context.Background(), "text", testModel, false)
	require.Error(t, err)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, testModel, unavailable.Model)
	assert.True(t, errors.Is(err, errBackendDown))
}

func TestProvider_UnknownModel(t *testing.T) {
	p := NewProvider(newFakeLoader(), Options{})

	_, err := p.EmbedOne(context.Background(), "", "doc2vec", false)
	var unavailable *ModelUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestProvider_WrongDimension(t *testing.T) {
	loader := LoaderFunc(func(_ context.Context, info ModelInfo) (Model, error) {
		return &fakeModel{name: info.Name, dim: 10}, nil
	})
	p := NewProvider(loader, Options{})

	_, err := p.EmbedOne(context.Background(), "text", testModel, false)
	var shapeErr *scoring.ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, 384, shapeErr.Left)
	assert.Equal(t, 10, shapeErr.Right)

	var unavailable *ModelUnavailableError
	assert.True(t, errors.As(err, &unavailable), "a model declaring the wrong dimension is not loaded")
	assert.Empty(t, p.Loaded())
}

func TestProvider_Probe(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})
	require.NoError(t, p.Probe(context.Background(), testModel))
	assert.Equal(t, 1, loader.loadCount())

	failing := LoaderFunc(func(_ context.Context, info ModelInfo) (Model, error) {
		return &fakeModel{name: info.Name, dim: info.Dimension, err: errBackendDown}, nil
	})
	err := NewProvider(failing, Options{}).Probe(context.Background(), testModel)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.True(t, errors.Is(err, errBackendDown))
}

func TestProvider_Concurrent(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.EmbedOne(context.Background(), "concurrent text", testModel, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, loader.loadCount())
}

func TestProvider_Close(t *testing.T) {
	loader := newFakeLoader()
	p := NewProvider(loader, Options{})
	_, err := p.EmbedOne(context.Background(), "text", testModel, false)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, loader.models[testModel].closed)
	assert.Empty(t, p.Loaded())
}

func TestEmbedMany_BackendFailureIsUnavailable(t *testing.T) {
	failing := LoaderFunc(func(_ context.Context, info ModelInfo) (Model, error) {
		return &fakeModel{name: info.Name, dim: info.Dimension, err: errBackendDown}, nil
	})
	p := NewProvider(failing, Options{})

	_, err := p.EmbedOne(context.Background(), "text", testModel, false)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, testModel, unavailable.Model)
	assert.True(t, errors.Is(err, errBackendDown))
}

func TestEmbedMany_UnreachableHTTPBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Endpoint = endpoint
	loader := NewClientLoader(llm.NewHTTPClient(cfg))
	p := NewProvider(loader, Options{})

	_, err := p.EmbedOne(context.Background(), "Senior Go engineer", testModel, false)
	require.Error(t, err)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, testModel, unavailable.Model)
}

func TestEmbedMany_CanceledContextPassesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := LoaderFunc(func(_ context.Context, info ModelInfo) (Model, error) {
		return &fakeModel{name: info.Name, dim: info.Dimension, err: context.Canceled}, nil
	})
	p := NewProvider(loader, Options{})
	cancel()

	_, err := p.EmbedOne(ctx, "text", testModel, false)

	var unavailable *ModelUnavailableError
	assert.False(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, context.Canceled)
}

// slowCloseModel blocks in Close until released
type slowCloseModel struct {
	fakeModel
	closing chan struct{}
	release chan struct{}
}

func (m *slowCloseModel) Close() error {
	close(m.closing)
	<-m.release
	return nil
}

func TestProvider_EvictionDoesNotBlockCache(t *testing.T) {
	slow := &slowCloseModel{closing: make(chan struct{}), release: make(chan struct{})}
	loader := LoaderFunc(func(_ context.Context, info ModelInfo) (Model, error) {
		if info.Name == testModel {
			slow.name, slow.dim = info.Name, info.Dimension
			return slow, nil
		}
		return &fakeModel{name: info.Name, dim: info.Dimension}, nil
	})
	p := NewProvider(loader, Options{CacheSize: 1})
	ctx := context.Background()

	_, err := p.EmbedOne(ctx, "text", testModel, false)
	require.NoError(t, err)

	evicting := make(chan error, 1)
	go func() {
		_, err := p.EmbedOne(ctx, "text", "e5-base-v2", false)
		evicting <- err
	}()
	<-slow.closing

	loaded := make(chan []string, 1)
	go func() { loaded <- p.Loaded() }()
	select {
	case names := <-loaded:
		assert.Equal(t, []string{"e5-base-v2"}, names)
	case <-time.After(2 * time.Second):
		t.Fatal("cache lock held while closing an evicted model")
	}

	close(slow.release)
	require.NoError(t, <-evicting)
}

func TestUnitNormalize(t *testing.T) {
	assert.Equal(t, types.Vector{0.6, 0.8}, unitNormalize(types.Vector{3, 4}))
	assert.Equal(t, types.Vector{0, 0}, unitNormalize(types.Vector{0, 0}))
}
