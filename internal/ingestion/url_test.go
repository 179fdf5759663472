package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobPosting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div class="job-description"><p>Backend role using Go.</p></div></body></html>`))
	}))
	defer server.Close()

	text, meta, err := FetchJobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Backend role using Go.", text)
	assert.Equal(t, "url", meta.Format)
	assert.Equal(t, server.URL, meta.URL)
}

func TestFetchJobPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := FetchJobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}
