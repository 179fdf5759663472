package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestMatchHistory_Disabled(t *testing.T) {
	s := newTestServer(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/matches/" + uuid.NewString()},
		{http.MethodGet, "/jobs/abc/matches"},
		{http.MethodDelete, "/jobs/abc/matches"},
	} {
		rec := doRequest(t, s, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotImplemented, rec.Code, tc.path)
	}
}

func TestMatchHistory(t *testing.T) {
	store := newMemStore()
	s := newTestServer(t, store)

	req := matchBody(Document{Text: "Go"}, Document{Text: testJobText})
	req.Save = true
	rec := doRequest(t, s, http.MethodPost, "/match", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	jobHash, _ := result.JobMeta["hash"].(string)
	require.NotEmpty(t, jobHash)

	t.Run("get", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/matches/"+result.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, result.ID, got["id"])
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/matches/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get bad id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/matches/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/jobs/"+jobHash+"/matches?limit=10", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Count   int              `json:"count"`
			Matches []map[string]any `json:"matches"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Count)
		assert.Len(t, got.Matches, 1)
	})

	t.Run("list bad limit", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/jobs/"+jobHash+"/matches?limit=0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list other job", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/jobs/other/matches", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"matches":[]`)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/jobs/"+jobHash+"/matches", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"job_hash":"`+jobHash+`","deleted":1}`, rec.Body.String())
		assert.Empty(t, store.records)
	})
}
