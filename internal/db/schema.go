package db

// Schema is the DDL for match history. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS match_results (
    id            UUID PRIMARY KEY,
    job_hash      TEXT NOT NULL,
    resume_hash   TEXT NOT NULL,
    resume_label  TEXT NOT NULL DEFAULT '',
    model         TEXT NOT NULL,
    pool          TEXT NOT NULL,
    score         DOUBLE PRECISION NOT NULL,
    embedding_sim DOUBLE PRECISION NOT NULL,
    skill_overlap DOUBLE PRECISION NOT NULL,
    explanation   JSONB NOT NULL,
    skills        JSONB NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_match_results_job_hash
    ON match_results (job_hash, score DESC);
`
