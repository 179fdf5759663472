package types

// ScoreResult holds the blended match score and its raw components
type ScoreResult struct {
	Score        float64 `json:"score"`         // 0.6*EmbeddingSim + 0.3*SkillOverlap, 4 decimals
	EmbeddingSim float64 `json:"embedding_sim"` // cosine similarity in [-1, 1]
	SkillOverlap float64 `json:"skill_overlap"` // fraction of job skills present, in [0, 1]
}

// Explanation is a compact present/missing skills rationale
type Explanation struct {
	Strong  []string `json:"strong"`
	Missing []string `json:"missing"`
	Notes   string   `json:"notes"`
}

// SkillComparison is the lexical comparison between a resume and a job description
type SkillComparison struct {
	JobSkills    []string `json:"job_skills"`
	ResumeSkills []string `json:"resume_skills"`
	Present      []string `json:"present"`
	Missing      []string `json:"missing"`
}

// MatchResult is the full output of matching one resume against one job description
type MatchResult struct {
	ID          string          `json:"id"`
	Model       string          `json:"model"`
	Pool        string          `json:"pool"`
	Result      ScoreResult     `json:"result"`
	Explanation Explanation     `json:"explanation"`
	Skills      SkillComparison `json:"skills"`
	ResumeMeta  map[string]any  `json:"resume_meta,omitempty"`
	JobMeta     map[string]any  `json:"job_meta,omitempty"`
}
