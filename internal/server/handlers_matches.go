package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
)

// maxListLimit caps the limit query parameter
const maxListLimit = 500

// handleGetMatch returns one stored match
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failRequest(w, errHistoryDisabled)
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.failRequest(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	rec, err := s.store.GetMatch(r.Context(), id)
	if err != nil {
		s.failRequest(w, err)
		return
	}
	if rec == nil {
		s.failRequest(w, &ErrMatchNotFound{ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleListMatches lists stored matches for a job description, best first
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failRequest(w, errHistoryDisabled)
		return
	}

	limit := db.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			s.failRequest(w, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxListLimit)})
			return
		}
		limit = n
	}

	jobHash := r.PathValue("job_hash")
	records, err := s.store.ListMatches(r.Context(), jobHash, limit)
	if err != nil {
		s.failRequest(w, err)
		return
	}
	if records == nil {
		records = []db.MatchRecord{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_hash": jobHash,
		"matches":  records,
		"count":    len(records),
	})
}

// handleDeleteMatches removes every stored match for a job description
func (s *Server) handleDeleteMatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failRequest(w, errHistoryDisabled)
		return
	}

	jobHash := r.PathValue("job_hash")
	n, err := s.store.DeleteMatches(r.Context(), jobHash)
	if err != nil {
		s.failRequest(w, err)
		return
	}
	s.logger.Info("deleted matches", zap.String("job_hash", jobHash), zap.Int64("count", n))

	s.jsonResponse(w, http.StatusOK, map[string]any{"job_hash": jobHash, "deleted": n})
}
