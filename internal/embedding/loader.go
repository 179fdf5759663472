package embedding

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Model is a loaded embedding model
type Model interface {
	// Embed returns one vector per text. Inputs are already prefixed for the model family.
	Embed(ctx context.Context, texts []string, isQuery bool) ([]types.Vector, error)
	Dimension() int
	Name() string
}

// Loader constructs models on first use
type Loader interface {
	Load(ctx context.Context, info ModelInfo) (Model, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, info ModelInfo) (Model, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, info ModelInfo) (Model, error) {
	return f(ctx, info)
}

// lockedModel serializes inference on one model
type lockedModel struct {
	mu    sync.Mutex
	model Model
}

func (m *lockedModel) Embed(ctx context.Context, texts []string, isQuery bool) ([]types.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model.Embed(ctx, texts, isQuery)
}

func (m *lockedModel) Dimension() int {
	return m.model.Dimension()
}

func (m *lockedModel) Name() string {
	return m.model.Name()
}

func (m *lockedModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.model.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ClientLoader loads models backed by llm clients, one client per backend
type ClientLoader struct {
	clients map[llm.Provider]llm.Client
}

// NewClientLoader creates a loader over the given backend clients
func NewClientLoader(clients ...llm.Client) *ClientLoader {
	l := &ClientLoader{clients: make(map[llm.Provider]llm.Client, len(clients))}
	for _, c := range clients {
		if c != nil {
			l.clients[c.Provider()] = c
		}
	}
	return l
}

// Load returns a model bound to the client for its backend
func (l *ClientLoader) Load(_ context.Context, info ModelInfo) (Model, error) {
	client, ok := l.clients[info.Backend]
	if !ok {
		return nil, fmt.Errorf("no %s backend configured", info.Backend)
	}
	return &clientModel{client: client, info: info}, nil
}

// Close closes every backend client
func (l *ClientLoader) Close() error {
	var firstErr error
	for _, c := range l.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type clientModel struct {
	client llm.Client
	info   ModelInfo
}

func (m *clientModel) Embed(ctx context.Context, texts []string, isQuery bool) ([]types.Vector, error) {
	task := llm.TaskDocument
	if isQuery {
		task = llm.TaskQuery
	}

	raw, err := m.client.Embed(ctx, m.info.Name, texts, task)
	if err != nil {
		return nil, err
	}

	vecs := make([]types.Vector, len(raw))
	for i, v := range raw {
		vecs[i] = types.Vector(v)
	}
	return vecs, nil
}

func (m *clientModel) Dimension() int {
	return m.info.Dimension
}

func (m *clientModel) Name() string {
	return m.info.Name
}
