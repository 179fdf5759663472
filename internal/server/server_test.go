package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/types"
)

const testJobText = "Backend role\n\nRequirements:\nGo, SQL, Python"

// fakeEmbedder maps queries and Go resumes to one axis and everything else to the other
type fakeEmbedder struct{}

func (fakeEmbedder) EmbedAndPool(_ context.Context, text, model string, _ embedding.PoolStrategy, isQuery bool) (types.Vector, error) {
	if _, err := embedding.ResolveModel(model); err != nil {
		return nil, err
	}
	if strings.Contains(text, "UNAVAILABLE") {
		return nil, &embedding.ModelUnavailableError{Model: model, Cause: errors.New("connection refused")}
	}
	if isQuery || strings.Contains(text, "Go") {
		return types.Vector{1, 0}, nil
	}
	return types.Vector{0, 1}, nil
}

type fakeCatalog []string

func (c fakeCatalog) Loaded() []string { return c }

// memStore is an in-memory Store
type memStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]db.MatchRecord
	pingErr error
}

func newMemStore() *memStore {
	return &memStore{records: map[uuid.UUID]db.MatchRecord{}}
}

func (m *memStore) SaveMatch(_ context.Context, r *types.MatchResult) error {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return err
	}
	jobHash, _ := r.JobMeta["hash"].(string)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = db.MatchRecord{ID: id, JobHash: jobHash, Model: r.Model, Pool: r.Pool, Result: r.Result, CreatedAt: time.Now()}
	return nil
}

func (m *memStore) GetMatch(_ context.Context, id uuid.UUID) (*db.MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) ListMatches(_ context.Context, jobHash string, limit int) ([]db.MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.MatchRecord
	for _, rec := range m.records {
		if rec.JobHash == jobHash && len(out) < limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) DeleteMatches(_ context.Context, jobHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rec := range m.records {
		if rec.JobHash == jobHash {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) Ping(context.Context) error {
	return m.pingErr
}

func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()
	deps := Deps{Embedder: fakeEmbedder{}, Models: fakeCatalog{"all-mpnet-base-v2"}}
	if store != nil {
		deps.Store = store
	}
	s := New(Config{Port: 0, RateLimit: &ratelimit.Config{Enabled: false}}, deps)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleHealth_DatabaseDown(t *testing.T) {
	store := newMemStore()
	store.pingErr = errors.New("connection refused")
	s := newTestServer(t, store)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"unreachable"}`, rec.Body.String())
}

func TestHandleModels(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ModelsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, embedding.DefaultModel, resp.Default)
	assert.Len(t, resp.Models, len(embedding.Models()))
	assert.Equal(t, []string{"all-mpnet-base-v2"}, resp.Loaded)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodOptions, "/match", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	s := New(Config{RateLimit: &ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{{Path: "/models", Method: "GET", Limit: 1, Window: time.Minute, Burst: 1}},
	}}, Deps{Embedder: fakeEmbedder{}})
	defer s.rateLimiter.Stop()

	rec := doRequest(t, s, http.MethodGet, "/models", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = doRequest(t, s, http.MethodGet, "/models", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// health stays unlimited
	for i := 0; i < 5; i++ {
		rec = doRequest(t, s, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", s.extractClientID(r))

	r.RemoteAddr = "garbage"
	assert.Equal(t, "garbage", s.extractClientID(r))
}
