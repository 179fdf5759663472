package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// MatchRecord is a stored match result
type MatchRecord struct {
	ID          uuid.UUID             `json:"id"`
	JobHash     string                `json:"job_hash"`
	ResumeHash  string                `json:"resume_hash"`
	ResumeLabel string                `json:"resume_label"`
	Model       string                `json:"model"`
	Pool        string                `json:"pool"`
	Result      types.ScoreResult     `json:"result"`
	Explanation types.Explanation     `json:"explanation"`
	Skills      types.SkillComparison `json:"skills"`
	CreatedAt   time.Time             `json:"created_at"`
}

// DefaultListLimit caps ListMatches when no limit is given
const DefaultListLimit = 50

// recordFromResult flattens a match result for storage
func recordFromResult(r *types.MatchResult) (*MatchRecord, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &MatchRecord{
		ID:          id,
		JobHash:     metaString(r.JobMeta, "hash"),
		ResumeHash:  metaString(r.ResumeMeta, "hash"),
		ResumeLabel: metaString(r.ResumeMeta, "filename"),
		Model:       r.Model,
		Pool:        r.Pool,
		Result:      r.Result,
		Explanation: r.Explanation,
		Skills:      r.Skills,
	}, nil
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	s, _ := meta[key].(string)
	return s
}
