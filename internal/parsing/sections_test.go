package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSections_Resume(t *testing.T) {
	text := Normalize(`Jane Doe
jane@example.com

SUMMARY
Backend engineer focused on data systems.

Technical Skills:
Go, PostgreSQL, Kubernetes

## Work Experience
Acme Corp - Senior Engineer
Built billing pipeline

Education
BSc Computer Science`)

	sections := DetectSections(text)

	assert.Equal(t, "Backend engineer focused on data systems.", sections[SectionSummary])
	assert.Equal(t, "Go, PostgreSQL, Kubernetes", sections[SectionSkills])
	assert.Equal(t, "Acme Corp - Senior Engineer\nBuilt billing pipeline", sections[SectionExperience])
	assert.Equal(t, "BSc Computer Science", sections[SectionEducation])
	assert.NotContains(t, sections, SectionProjects)
}

func TestDetectSections_JobPosting(t *testing.T) {
	text := Normalize(`Senior Platform Engineer
What you’ll do:
Own our deployment tooling
Requirements
5+ years with Go
Nice to have
Terraform`)

	sections := DetectSections(text)

	assert.Equal(t, "Own our deployment tooling", sections[SectionResponsibilities])
	assert.Equal(t, "5+ years with Go", sections[SectionRequirements])
	assert.Equal(t, "Terraform", sections[SectionNiceToHave])
}

func TestDetectSections_RepeatedHeadingAppends(t *testing.T) {
	sections := DetectSections("Skills\nGo\nEducation\nBSc\nSkills\nSQL")

	assert.Equal(t, "Go\nSQL", sections[SectionSkills])
}

func TestDetectSections_EmptyHeadingDropped(t *testing.T) {
	sections := DetectSections("Skills\nEducation\nBSc")

	assert.NotContains(t, sections, SectionSkills)
	assert.Equal(t, "BSc", sections[SectionEducation])
}

func TestDetectSections_Empty(t *testing.T) {
	assert.Empty(t, DetectSections(""))
	assert.Empty(t, DetectSections("no headings here\njust text"))
}

func TestHeadingSection_LongLineIsNotHeading(t *testing.T) {
	assert.Equal(t, "", headingSection("Skills that we are looking for in our next great hire"))
	assert.Equal(t, SectionSkills, headingSection("**Skills**"))
}
