package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveMatch stores a match result. Saving the same ID twice overwrites the scores.
func (db *DB) SaveMatch(ctx context.Context, result *types.MatchResult) error {
	rec, err := recordFromResult(result)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", result.ID, err)
	}

	explanationJSON, err := json.Marshal(rec.Explanation)
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}
	skillsJSON, err := json.Marshal(rec.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_results (id, job_hash, resume_hash, resume_label, model, pool,
		                            score, embedding_sim, skill_overlap, explanation, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET score = $7, embedding_sim = $8, skill_overlap = $9,
		                                explanation = $10, skills = $11`,
		rec.ID, rec.JobHash, rec.ResumeHash, rec.ResumeLabel, rec.Model, rec.Pool,
		rec.Result.Score, rec.Result.EmbeddingSim, rec.Result.SkillOverlap,
		explanationJSON, skillsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", rec.ID, err)
	}
	return nil
}

// GetMatch retrieves a stored match by ID. It returns nil when no match exists.
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, job_hash, resume_hash, resume_label, model, pool,
		        score, embedding_sim, skill_overlap, explanation, skills, created_at
		 FROM match_results WHERE id = $1`,
		id,
	)
	rec, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return rec, nil
}

// ListMatches returns stored matches for a job description, best score first
func (db *DB) ListMatches(ctx context.Context, jobHash string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_hash, resume_hash, resume_label, model, pool,
		        score, embedding_sim, skill_overlap, explanation, skills, created_at
		 FROM match_results WHERE job_hash = $1
		 ORDER BY score DESC, created_at ASC
		 LIMIT $2`,
		jobHash, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	records := make([]MatchRecord, 0)
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return records, nil
}

// DeleteMatches removes every stored match for a job description
func (db *DB) DeleteMatches(ctx context.Context, jobHash string) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM match_results WHERE job_hash = $1`, jobHash)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMatch(row pgx.Row) (*MatchRecord, error) {
	var rec MatchRecord
	var explanationJSON, skillsJSON []byte

	err := row.Scan(&rec.ID, &rec.JobHash, &rec.ResumeHash, &rec.ResumeLabel, &rec.Model, &rec.Pool,
		&rec.Result.Score, &rec.Result.EmbeddingSim, &rec.Result.SkillOverlap,
		&explanationJSON, &skillsJSON, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Parse JSONB fields
	if explanationJSON != nil {
		_ = json.Unmarshal(explanationJSON, &rec.Explanation)
	}
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &rec.Skills)
	}
	return &rec, nil
}
