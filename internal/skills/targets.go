package skills

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// Weight constants for skill sources (requirement level)
	weightHardRequirement = 1.0
	weightNiceToHave      = 0.5
	weightKeyword         = 0.3

	// Source constants
	SourceHardRequirement = "hard_requirement"
	SourceNiceToHave      = "nice_to_have"
	SourceKeyword         = "keyword"
)

// sectionWeights assigns a requirement level to skills found in job description sections
var sectionWeights = []struct {
	section string
	weight  float64
	source  string
}{
	{parsing.SectionRequirements, weightHardRequirement, SourceHardRequirement},
	{parsing.SectionQualifications, weightHardRequirement, SourceHardRequirement},
	{parsing.SectionNiceToHave, weightNiceToHave, SourceNiceToHave},
}

// BuildSkillTargets builds the weighted skill list of a job description.
// Skills under requirement headings weigh 1.0, nice-to-haves 0.5 and any other mention 0.3.
// Targets are sorted by weight (descending), then by mention count and first mention.
func BuildSkillTargets(job *types.ParsedDocument, vocab *Vocabulary) *types.SkillTargets {
	if job == nil || vocab == nil {
		return &types.SkillTargets{Skills: []types.Skill{}}
	}

	// Map: skill name -> skill info (weight, source)
	skillMap := make(map[string]*skillInfo)
	for _, sw := range sectionWeights {
		for _, name := range vocab.Extract(job.Section(sw.section)) {
			addOrUpdateSkill(skillMap, name, sw.weight, sw.source)
		}
	}

	mentions := vocab.Mentions(job.Text)
	skills := make([]types.Skill, 0, len(mentions))
	for _, m := range mentions {
		addOrUpdateSkill(skillMap, m.Name, weightKeyword, SourceKeyword)
		info := skillMap[m.Name]
		skills = append(skills, types.Skill{
			Name:   m.Name,
			Weight: info.weight,
			Source: info.source,
			Count:  m.Count,
		})
	}

	// Sort by weight (descending); mention order breaks ties
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Weight > skills[j].Weight
	})

	return &types.SkillTargets{Skills: skills}
}

// skillInfo holds temporary information about a skill during building
type skillInfo struct {
	weight float64
	source string
}

// addOrUpdateSkill adds a skill to the map or updates it if it exists,
// taking the maximum weight when duplicates are found.
func addOrUpdateSkill(skillMap map[string]*skillInfo, skillName string, weight float64, source string) {
	if existing, exists := skillMap[skillName]; exists {
		// Take maximum weight
		if weight > existing.weight {
			existing.weight = weight
			existing.source = source
		}
		// If weights are equal, prioritize source by: hard_requirement > nice_to_have > keyword
		if weight == existing.weight && getSourcePriority(source) > getSourcePriority(existing.source) {
			existing.source = source
		}
	} else {
		skillMap[skillName] = &skillInfo{
			weight: weight,
			source: source,
		}
	}
}

// getSourcePriority returns a numeric priority for source types.
// Higher numbers indicate higher priority.
func getSourcePriority(source string) int {
	switch source {
	case SourceHardRequirement:
		return 3
	case SourceNiceToHave:
		return 2
	case SourceKeyword:
		return 1
	default:
		return 0
	}
}
