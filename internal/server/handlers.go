package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

// matcher builds a pipeline for one request. Request fields override the server defaults.
func (s *Server) matcher(model, pool string, save bool, onProgress pipeline.ProgressCallback) *pipeline.Matcher {
	if model == "" {
		model = s.cfg.Model
	}
	if pool == "" {
		pool = s.cfg.Pool
	}
	opts := pipeline.Options{
		Model:       model,
		Pool:        embedding.PoolStrategy(pool),
		Concurrency: s.cfg.Concurrency,
		Vocabulary:  s.vocab,
		Logger:      s.logger,
		OnProgress:  onProgress,
	}
	if save && s.store != nil {
		opts.Store = s.store
	}
	return pipeline.NewMatcher(s.embedder, opts)
}

// handleMatch scores one resume against one job description
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failRequest(w, err)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.failRequest(w, err)
		return
	}
	if req.Save && s.store == nil {
		s.failRequest(w, errHistoryDisabled)
		return
	}

	ctx := r.Context()
	resume, err := s.parseResume(ctx, req.Resume, "resume")
	if err != nil {
		s.failRequest(w, err)
		return
	}
	job, err := s.parseJob(ctx, req.Job)
	if err != nil {
		s.failRequest(w, err)
		return
	}

	result, err := s.matcher(req.Model, req.Pool, req.Save, nil).Match(ctx, resume, job)
	if err != nil {
		s.failRequest(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// prepareRank validates a ranking request and parses its documents
func (s *Server) prepareRank(w http.ResponseWriter, r *http.Request) (*RankRequest, []*types.ParsedDocument, *types.ParsedDocument, bool) {
	var req RankRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failRequest(w, err)
		return nil, nil, nil, false
	}
	if err := s.validateRequest(&req); err != nil {
		s.failRequest(w, err)
		return nil, nil, nil, false
	}
	if req.Save && s.store == nil {
		s.failRequest(w, errHistoryDisabled)
		return nil, nil, nil, false
	}

	ctx := r.Context()
	resumes := make([]*types.ParsedDocument, len(req.Resumes))
	for i, d := range req.Resumes {
		doc, err := s.parseResume(ctx, d, fmt.Sprintf("resumes[%d]", i))
		if err != nil {
			s.failRequest(w, err)
			return nil, nil, nil, false
		}
		resumes[i] = doc
	}
	job, err := s.parseJob(ctx, req.Job)
	if err != nil {
		s.failRequest(w, err)
		return nil, nil, nil, false
	}
	return &req, resumes, job, true
}

// handleRank ranks resumes against one job description
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	req, resumes, job, ok := s.prepareRank(w, r)
	if !ok {
		return
	}

	ranked, _, err := s.matcher(req.Model, req.Pool, req.Save, nil).MatchMany(r.Context(), resumes, job)
	if err != nil {
		s.failRequest(w, err)
		return
	}
	ranked.Candidates = ranking.Top(ranked.Candidates, req.Top)

	s.jsonResponse(w, http.StatusOK, ranked)
}

// handleRankStream ranks resumes and streams progress via SSE.
// The final event is "ranking" on success or "error" on failure.
func (s *Server) handleRankStream(w http.ResponseWriter, r *http.Request) {
	req, resumes, job, ok := s.prepareRank(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("failed to write SSE event", zap.Error(err))
		}
	}

	ranked, _, err := s.matcher(req.Model, req.Pool, req.Save, onProgress).MatchMany(r.Context(), resumes, job)
	if err != nil {
		sse.WriteError(HTTPStatus(err), err.Error())
		return
	}
	ranked.Candidates = ranking.Top(ranked.Candidates, req.Top)

	if err := sse.WriteEvent("ranking", ranked); err != nil {
		s.logger.Warn("failed to write SSE event", zap.Error(err))
	}
}

// handleModels lists the embedding registry and the resident models
func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	def := s.cfg.Model
	if def == "" {
		def = embedding.DefaultModel
	}
	resp := ModelsResponse{
		Default: def,
		Models:  embedding.Models(),
		Loaded:  []string{},
	}
	if s.models != nil {
		resp.Loaded = s.models.Loaded()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
