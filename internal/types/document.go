// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document sources recorded under the "source" meta key
const (
	SourceResume = "resume"
	SourceJob    = "job"
)

// ParsedDocument is the canonical form of a resume or job description.
// It is created once per parse call and must not be mutated afterwards.
type ParsedDocument struct {
	Text     string            `json:"text"`
	Sections map[string]string `json:"sections"`
	Meta     map[string]any    `json:"meta"`

	// Raw is the extracted text before normalization. Normalization drops blank
	// lines, so paragraph chunking works on Raw.
	Raw string `json:"-"`
}

// Source returns the "source" meta tag, or an empty string
func (d *ParsedDocument) Source() string {
	if d == nil || d.Meta == nil {
		return ""
	}
	s, _ := d.Meta["source"].(string)
	return s
}

// ChunkSource returns the text to split into paragraphs: Raw when present, otherwise Text
func (d *ParsedDocument) ChunkSource() string {
	if d.Raw != "" {
		return d.Raw
	}
	return d.Text
}

// Section returns the named section text, or an empty string
func (d *ParsedDocument) Section(name string) string {
	if d == nil || d.Sections == nil {
		return ""
	}
	return d.Sections[name]
}
