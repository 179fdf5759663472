package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

func jobDocument(raw string) *types.ParsedDocument {
	return parsing.NewDocument(raw, nil, types.SourceJob)
}

func TestBuildSkillTargets_Sections(t *testing.T) {
	job := jobDocument(`Backend Engineer
We build Docker images and Docker pipelines.
Requirements:
Go and PostgreSQL
Nice to have:
Kubernetes, Docker`)

	targets := BuildSkillTargets(job, DefaultVocabulary())
	require.Len(t, targets.Skills, 4)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker", "Kubernetes"}, targets.Names())

	byName := map[string]types.Skill{}
	for _, s := range targets.Skills {
		byName[s.Name] = s
	}
	assert.Equal(t, 1.0, byName["Go"].Weight)
	assert.Equal(t, SourceHardRequirement, byName["Go"].Source)
	assert.Equal(t, 0.5, byName["Docker"].Weight)
	assert.Equal(t, SourceNiceToHave, byName["Docker"].Source)
	assert.Equal(t, 3, byName["Docker"].Count)
	assert.Equal(t, 0.5, byName["Kubernetes"].Weight)
}

func TestBuildSkillTargets_KeywordsOnly(t *testing.T) {
	job := jobDocument("Looking for SQL and Python. Python daily.")

	targets := BuildSkillTargets(job, DefaultVocabulary())
	require.Len(t, targets.Skills, 2)
	assert.Equal(t, []string{"Python", "SQL"}, targets.Names())
	for _, skill := range targets.Skills {
		assert.Equal(t, 0.3, skill.Weight)
		assert.Equal(t, SourceKeyword, skill.Source)
	}
}

func TestBuildSkillTargets_Empty(t *testing.T) {
	targets := BuildSkillTargets(jobDocument("We value kindness."), DefaultVocabulary())
	assert.Empty(t, targets.Skills)

	targets = BuildSkillTargets(nil, DefaultVocabulary())
	assert.NotNil(t, targets.Skills)
}

func TestAddOrUpdateSkill(t *testing.T) {
	skillMap := map[string]*skillInfo{}

	addOrUpdateSkill(skillMap, "Go", weightKeyword, SourceKeyword)
	addOrUpdateSkill(skillMap, "Go", weightHardRequirement, SourceHardRequirement)
	addOrUpdateSkill(skillMap, "Go", weightNiceToHave, SourceNiceToHave)

	assert.Equal(t, weightHardRequirement, skillMap["Go"].weight)
	assert.Equal(t, SourceHardRequirement, skillMap["Go"].source)
}

func TestGetSourcePriority(t *testing.T) {
	assert.Greater(t, getSourcePriority(SourceHardRequirement), getSourcePriority(SourceNiceToHave))
	assert.Greater(t, getSourcePriority(SourceNiceToHave), getSourcePriority(SourceKeyword))
	assert.Equal(t, 0, getSourcePriority("unknown"))
}
