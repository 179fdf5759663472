package skills

import (
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Compare splits the job skills into those the resume has and those it lacks.
// Names are canonicalized with parsing.NormalizeSkillName and deduplicated;
// both output lists keep the job's order.
func Compare(resumeSkills, jobSkills []string) types.SkillComparison {
	resume := parsing.NormalizeSkills(resumeSkills)
	job := parsing.NormalizeSkills(jobSkills)

	have := make(map[string]bool, len(resume))
	for _, s := range resume {
		have[s] = true
	}

	present := make([]string, 0, len(job))
	missing := make([]string, 0, len(job))
	for _, s := range job {
		if have[s] {
			present = append(present, s)
		} else {
			missing = append(missing, s)
		}
	}

	return types.SkillComparison{
		JobSkills:    job,
		ResumeSkills: resume,
		Present:      present,
		Missing:      missing,
	}
}
