package types

// Candidate is one entry in a ranking. A nil Result ranks as a zero score.
type Candidate struct {
	ID          string         `json:"id"`
	Label       string         `json:"label,omitempty"` // filename or display name
	Result      *ScoreResult   `json:"result,omitempty"`
	Explanation *Explanation   `json:"explanation,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Score returns the candidate score, treating a missing result as 0
func (c Candidate) Score() float64 {
	if c.Result == nil {
		return 0
	}
	return c.Result.Score
}

// Ranking is an ordered list of candidates for one job description
type Ranking struct {
	JobID      string      `json:"job_id,omitempty"`
	Model      string      `json:"model"`
	Candidates []Candidate `json:"candidates"`
}
