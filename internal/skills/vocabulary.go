// Package skills finds known skills in resume and job description text and compares them.
package skills

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Entry is one canonical skill and the spellings that refer to it
type Entry struct {
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases"`
	CaseSensitive bool     `yaml:"case_sensitive"`
}

type vocabularyFile struct {
	Skills []Entry `yaml:"skills"`
}

// Vocabulary matches skill mentions in free text
type Vocabulary struct {
	entries  []Entry
	patterns [][]*regexp.Regexp // per entry: name first, then aliases
}

// Mention is a skill found in text
type Mention struct {
	Name  string
	Count int
	First int // byte offset of the earliest mention
}

// DefaultVocabulary returns the built-in vocabulary
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in skill vocabulary: %v", err))
	}
	return v
}

// LoadVocabulary reads a vocabulary YAML file
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill vocabulary %s: %w", path, err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skill vocabulary %s: %w", path, err)
	}
	return v, nil
}

// ParseVocabulary parses vocabulary YAML
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return NewVocabulary(file.Skills)
}

// NewVocabulary compiles entries into a vocabulary. Names must be unique and non-empty.
func NewVocabulary(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		entries:  make([]Entry, 0, len(entries)),
		patterns: make([][]*regexp.Regexp, 0, len(entries)),
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("skill %d has no name", i)
		}
		key := strings.ToLower(e.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate skill %q", e.Name)
		}
		seen[key] = true

		var patterns []*regexp.Regexp
		for _, spelling := range append([]string{e.Name}, e.Aliases...) {
			spelling = strings.TrimSpace(spelling)
			if spelling == "" {
				continue
			}
			re, err := compileSpelling(spelling, e.CaseSensitive)
			if err != nil {
				return nil, fmt.Errorf("skill %q: %w", e.Name, err)
			}
			patterns = append(patterns, re)
		}

		v.entries = append(v.entries, e)
		v.patterns = append(v.patterns, patterns)
	}
	return v, nil
}

func compileSpelling(spelling string, caseSensitive bool) (*regexp.Regexp, error) {
	words := strings.Fields(spelling)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := strings.Join(words, `\s+`)
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// Names returns every canonical skill name in vocabulary order
func (v *Vocabulary) Names() []string {
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of skills in the vocabulary
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Mentions finds every skill mentioned in text, most mentioned first.
// Ties go to the skill mentioned earliest.
func (v *Vocabulary) Mentions(text string) []Mention {
	var mentions []Mention
	for i, e := range v.entries {
		m := Mention{Name: e.Name, First: -1}
		var seen [][]int
		for _, re := range v.patterns[i] {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				if !standalone(text, loc[0], loc[1]) || overlaps(seen, loc) {
					continue
				}
				seen = append(seen, loc)
				m.Count++
				if m.First < 0 || loc[0] < m.First {
					m.First = loc[0]
				}
			}
		}
		if m.Count > 0 {
			mentions = append(mentions, m)
		}
	}

	sort.SliceStable(mentions, func(i, j int) bool {
		if mentions[i].Count != mentions[j].Count {
			return mentions[i].Count > mentions[j].Count
		}
		return mentions[i].First < mentions[j].First
	})
	return mentions
}

// Extract returns the canonical names of skills mentioned in text, ordered as Mentions
func (v *Vocabulary) Extract(text string) []string {
	mentions := v.Mentions(text)
	names := make([]string, len(mentions))
	for i, m := range mentions {
		names[i] = m.Name
	}
	return names
}

// overlaps reports whether loc intersects a span already counted for the same skill,
// e.g. "Kafka" inside "Apache Kafka"
func overlaps(spans [][]int, loc []int) bool {
	for _, s := range spans {
		if loc[0] < s[1] && s[0] < loc[1] {
			return true
		}
	}
	return false
}

// standalone reports whether text[start:end] is not glued to a word on either side.
// A leading dot glued to a word also counts ("js" in "Node.js").
func standalone(text string, start, end int) bool {
	if start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
		if r == '.' && start > size {
			if prev, _ := utf8.DecodeLastRuneInString(text[:start-size]); isWordRune(prev) {
				return false
			}
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#'
}
