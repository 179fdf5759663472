package embedding

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/resume-matcher/internal/types"
)

// fakeModel returns a one-hot vector per text, indexed by text length
type fakeModel struct {
	name   string
	dim    int
	mu     sync.Mutex
	inputs []string
	closed bool
	err    error
}

func (m *fakeModel) Embed(_ context.Context, texts []string, _ bool) ([]types.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, texts...)
	out := make([]types.Vector, len(texts))
	for i, t := range texts {
		v := make(types.Vector, m.dim)
		v[len(t)%m.dim] = 2
		out[i] = v
	}
	return out, nil
}

func (m *fakeModel) Dimension() int { return m.dim }

func (m *fakeModel) Name() string { return m.name }

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

// fakeLoader records loads and hands out fakeModels
type fakeLoader struct {
	mu     sync.Mutex
	loads  []string
	models map[string]*fakeModel
	err    error
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{models: map[string]*fakeModel{}}
}

func (l *fakeLoader) Load(_ context.Context, info ModelInfo) (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.loads = append(l.loads, info.Name)
	m := &fakeModel{name: info.Name, dim: info.Dimension}
	l.models[info.Name] = m
	return m, nil
}

func (l *fakeLoader) loadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loads)
}

var errBackendDown = errors.New("connection refused")
