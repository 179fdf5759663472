package scoring

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Weights for the blended score. The remaining 0.1 is reserved for a title-match signal.
const (
	EmbeddingWeight  = 0.6
	SkillWeight      = 0.3
	TitleMatchWeight = 0.0
)

// scoreDecimals is the precision of ScoreResult.Score
const scoreDecimals = 4

// SkillOverlap returns the fraction of job skills present in the resume.
// Both inputs are treated as sets; an empty job skill set yields 0.
func SkillOverlap(present, jdSkills []string) float64 {
	jd := toSet(jdSkills)
	if len(jd) == 0 {
		return 0.0
	}

	matched := 0
	for skill := range toSet(present) {
		if jd[skill] {
			matched++
		}
	}
	return float64(matched) / float64(max(1, len(jd)))
}

// ScoreMatch scores a resume vector against a job vector with their skill sets
func ScoreMatch(resumeVec, jdVec types.Vector, present, jdSkills []string) (types.ScoreResult, error) {
	sim, err := Cosine(resumeVec, jdVec)
	if err != nil {
		return types.ScoreResult{}, err
	}
	overlap := SkillOverlap(present, jdSkills)

	// title match has no signal yet
	titleMatch := 0.0
	final := EmbeddingWeight*sim + SkillWeight*overlap + TitleMatchWeight*titleMatch

	return types.ScoreResult{
		Score:        Round(final, scoreDecimals),
		EmbeddingSim: sim,
		SkillOverlap: overlap,
	}, nil
}

// Round rounds half away from zero to the given number of decimal places
func Round(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
