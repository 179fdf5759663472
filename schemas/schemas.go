// Package schemas holds the JSON Schemas for resume-matcher's JSON output.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	MatchResult = "match_result.schema.json"
	Ranking     = "ranking.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of a named schema
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema
func Names() []string {
	return []string{MatchResult, Ranking}
}
