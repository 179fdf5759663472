// Package pipeline wires parsing, embedding, skill comparison and scoring into a match.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/explain"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultConcurrency bounds how many resumes MatchMany scores at once
const DefaultConcurrency = 4

// Step names reported through ProgressCallback
const (
	StepEmbedJob    = "embed_job"
	StepJobSkills   = "job_skills"
	StepEmbedResume = "embed_resume"
	StepScore       = "score"
	StepRank        = "rank"
	StepSave        = "save"
)

// ProgressEvent represents a progress update during matching
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	MatchID string `json:"match_id,omitempty"`
}

// ProgressCallback is called when matching progress occurs
type ProgressCallback func(event ProgressEvent)

// Embedder produces pooled document vectors. *embedding.Provider implements it.
type Embedder interface {
	EmbedAndPool(ctx context.Context, text, model string, strategy embedding.PoolStrategy, isQuery bool) (types.Vector, error)
}

// MatchStore persists match results. *db.DB implements it.
type MatchStore interface {
	SaveMatch(ctx context.Context, result *types.MatchResult) error
}

// Options configures a Matcher
type Options struct {
	Model       string
	Pool        embedding.PoolStrategy
	Concurrency int
	Vocabulary  *skills.Vocabulary
	Store       MatchStore // optional; save failures are logged, not returned
	Logger      *zap.Logger
	OnProgress  ProgressCallback
}

// Matcher scores resumes against job descriptions
type Matcher struct {
	embedder Embedder
	opts     Options
	logger   *zap.Logger
}

// NewMatcher creates a matcher. Unset options take their defaults.
func NewMatcher(embedder Embedder, opts Options) *Matcher {
	if opts.Model == "" {
		opts.Model = embedding.DefaultModel
	}
	opts.Pool = embedding.ParsePoolStrategy(string(opts.Pool))
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = skills.DefaultVocabulary()
	}

	return &Matcher{
		embedder: embedder,
		opts:     opts,
		logger:   logger.WithFields(opts.Logger, logger.MatchFields(opts.Model, string(opts.Pool))...),
	}
}

// Model returns the embedding model the matcher uses
func (m *Matcher) Model() string {
	return m.opts.Model
}

// jobSide is the part of a match that depends only on the job description
type jobSide struct {
	doc     *types.ParsedDocument
	vec     types.Vector
	targets *types.SkillTargets
}

// prepareJob embeds a job description and extracts its weighted skills.
// The job is the query side of the retrieval pair.
func (m *Matcher) prepareJob(ctx context.Context, job *types.ParsedDocument) (*jobSide, error) {
	if job == nil {
		return nil, fmt.Errorf("job description is required")
	}

	vec, err := m.embedder.EmbedAndPool(ctx, job.ChunkSource(), m.opts.Model, m.opts.Pool, true)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}
	if vec.IsZero() {
		m.logger.Warn("job description has no text to embed; similarity will be 0")
	}
	m.emit(ProgressEvent{Step: StepEmbedJob, Message: fmt.Sprintf("Embedded job description (%d dims)", len(vec))})

	targets := skills.BuildSkillTargets(job, m.opts.Vocabulary)
	m.emit(ProgressEvent{Step: StepJobSkills, Message: fmt.Sprintf("Found %d job skills", len(targets.Skills))})

	return &jobSide{doc: job, vec: vec, targets: targets}, nil
}

// Match scores one resume against one job description
func (m *Matcher) Match(ctx context.Context, resume, job *types.ParsedDocument) (*types.MatchResult, error) {
	side, err := m.prepareJob(ctx, job)
	if err != nil {
		return nil, err
	}
	return m.matchPrepared(ctx, resume, side)
}

func (m *Matcher) matchPrepared(ctx context.Context, resume *types.ParsedDocument, job *jobSide) (*types.MatchResult, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}

	vec, err := m.embedder.EmbedAndPool(ctx, resume.ChunkSource(), m.opts.Model, m.opts.Pool, false)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}
	if vec.IsZero() {
		m.logger.Warn("resume has no text to embed; similarity will be 0", zap.String("resume", label(resume, 0)))
	}

	cmp := skills.Compare(m.opts.Vocabulary.Extract(resume.Text), job.targets.Names())

	score, err := scoring.ScoreMatch(vec, job.vec, cmp.Present, cmp.JobSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to score match: %w", err)
	}

	result := &types.MatchResult{
		ID:          uuid.New().String(),
		Model:       m.opts.Model,
		Pool:        string(m.opts.Pool),
		Result:      score,
		Explanation: explain.BuildExplanation(cmp.Present, cmp.Missing),
		Skills:      cmp,
		ResumeMeta:  resume.Meta,
		JobMeta:     job.doc.Meta,
	}

	m.logger.Info("scored match",
		zap.String(logger.FieldMatchID, result.ID),
		zap.Float64("score", score.Score),
		zap.Float64("embedding_sim", score.EmbeddingSim),
		zap.Float64("skill_overlap", score.SkillOverlap))
	m.emit(ProgressEvent{Step: StepScore, MatchID: result.ID, Message: fmt.Sprintf("Scored %.4f", score.Score)})

	m.save(ctx, result)
	return result, nil
}

// save stores a result when a store is configured. Failures do not fail the match.
func (m *Matcher) save(ctx context.Context, result *types.MatchResult) {
	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.SaveMatch(ctx, result); err != nil {
		m.logger.Warn("failed to save match", zap.String(logger.FieldMatchID, result.ID), zap.Error(err))
		return
	}
	m.emit(ProgressEvent{Step: StepSave, MatchID: result.ID, Message: "Saved match"})
}

// MatchMany scores resumes against one job description and ranks them.
// The job side is computed once; resumes are scored concurrently up to Options.Concurrency.
// The first error cancels the remaining work.
func (m *Matcher) MatchMany(ctx context.Context, resumes []*types.ParsedDocument, job *types.ParsedDocument) (*types.Ranking, []*types.MatchResult, error) {
	side, err := m.prepareJob(ctx, job)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*types.MatchResult, len(resumes))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)
	for i, resume := range resumes {
		g.Go(func() error {
			result, err := m.matchPrepared(gCtx, resume, side)
			if err != nil {
				return fmt.Errorf("resume %d (%s): %w", i+1, label(resume, i), err)
			}
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	candidates := make([]types.Candidate, len(results))
	for i, r := range results {
		score := r.Result
		explanation := r.Explanation
		candidates[i] = types.Candidate{
			ID:          r.ID,
			Label:       label(resumes[i], i),
			Result:      &score,
			Explanation: &explanation,
			Meta:        r.ResumeMeta,
		}
	}

	ranked := &types.Ranking{
		JobID:      jobID(job),
		Model:      m.opts.Model,
		Candidates: ranking.Rank(candidates),
	}
	m.emit(ProgressEvent{Step: StepRank, Message: fmt.Sprintf("Ranked %d candidates", len(candidates))})

	return ranked, results, nil
}

func (m *Matcher) emit(event ProgressEvent) {
	m.logger.Debug(event.Message, zap.String("step", event.Step))
	if m.opts.OnProgress != nil {
		m.opts.OnProgress(event)
	}
}

// label names a resume by its filename, falling back to its position
func label(doc *types.ParsedDocument, i int) string {
	if doc != nil && doc.Meta != nil {
		if name, ok := doc.Meta["filename"].(string); ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("resume-%d", i+1)
}

// jobID identifies a job description by its content hash
func jobID(job *types.ParsedDocument) string {
	if job == nil || job.Meta == nil {
		return ""
	}
	id, _ := job.Meta["hash"].(string)
	return id
}
