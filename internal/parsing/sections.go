package parsing

import (
	"strings"
)

// Canonical section names
const (
	SectionSummary          = "summary"
	SectionSkills           = "skills"
	SectionExperience       = "experience"
	SectionEducation        = "education"
	SectionProjects         = "projects"
	SectionCertifications   = "certifications"
	SectionRequirements     = "requirements"
	SectionResponsibilities = "responsibilities"
	SectionQualifications   = "qualifications"
	SectionNiceToHave       = "nice_to_have"
)

// maxHeadingLength bounds how long a line can be and still count as a heading
const maxHeadingLength = 40

// sectionHeadings maps lowercase heading text to a canonical section name
var sectionHeadings = map[string]string{
	"summary":                   SectionSummary,
	"professional summary":      SectionSummary,
	"profile":                   SectionSummary,
	"about me":                  SectionSummary,
	"objective":                 SectionSummary,
	"skills":                    SectionSkills,
	"technical skills":          SectionSkills,
	"core skills":               SectionSkills,
	"skills & tools":            SectionSkills,
	"technologies":              SectionSkills,
	"tech stack":                SectionSkills,
	"experience":                SectionExperience,
	"work experience":           SectionExperience,
	"professional experience":   SectionExperience,
	"employment history":        SectionExperience,
	"education":                 SectionEducation,
	"academic background":       SectionEducation,
	"projects":                  SectionProjects,
	"selected projects":         SectionProjects,
	"certifications":            SectionCertifications,
	"certificates":              SectionCertifications,
	"licenses & certifications": SectionCertifications,
	"requirements":              SectionRequirements,
	"minimum qualifications":    SectionRequirements,
	"basic qualifications":      SectionRequirements,
	"what you'll need":          SectionRequirements,
	"what you need":             SectionRequirements,
	"must have":                 SectionRequirements,
	"must-haves":                SectionRequirements,
	"responsibilities":          SectionResponsibilities,
	"key responsibilities":      SectionResponsibilities,
	"what you'll do":            SectionResponsibilities,
	"the role":                  SectionResponsibilities,
	"qualifications":            SectionQualifications,
	"nice to have":              SectionNiceToHave,
	"nice-to-have":              SectionNiceToHave,
	"nice to haves":             SectionNiceToHave,
	"preferred qualifications":  SectionNiceToHave,
	"bonus points":              SectionNiceToHave,
	"pluses":                    SectionNiceToHave,
}

// headingSection returns the canonical section for a heading line, or "" if the line is not a heading
func headingSection(line string) string {
	if len(line) > maxHeadingLength {
		return ""
	}
	h := strings.TrimLeft(line, "#* ")
	h = strings.TrimRight(h, ":*# ")
	h = strings.ReplaceAll(h, "’", "'")
	return sectionHeadings[strings.ToLower(strings.TrimSpace(h))]
}

// DetectSections splits normalized text into named sections by recognizing heading lines.
// Text before the first heading is not assigned to a section. A repeated heading appends to
// the existing section.
func DetectSections(normalized string) map[string]string {
	sections := make(map[string]string)
	if normalized == "" {
		return sections
	}

	current := ""
	var body []string
	flush := func() {
		if current == "" || len(body) == 0 {
			return
		}
		text := strings.Join(body, "\n")
		if existing, ok := sections[current]; ok {
			text = existing + "\n" + text
		}
		sections[current] = text
	}

	for _, line := range strings.Split(normalized, "\n") {
		if name := headingSection(line); name != "" {
			flush()
			current = name
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}
