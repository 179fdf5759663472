// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxLabelWidth bounds candidate labels in the ranking table
	maxLabelWidth = 28
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// PrintMatch outputs a human-readable summary of one match result.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:          %.4f\n", result.Result.Score))
	sb.WriteString(fmt.Sprintf("Embedding sim:  %.4f\n", result.Result.EmbeddingSim))
	sb.WriteString(fmt.Sprintf("Skill overlap:  %.0f%% (%d/%d)\n",
		result.Result.SkillOverlap*100, len(result.Skills.Present), len(result.Skills.JobSkills)))
	sb.WriteString(fmt.Sprintf("Model:          %s (%s pooling)\n", result.Model, result.Pool))
	sb.WriteString("\n")

	writeList(&sb, "Strong", result.Explanation.Strong)
	writeList(&sb, "Missing", result.Explanation.Missing)

	if result.Explanation.Notes != "" {
		sb.WriteString(result.Explanation.Notes)
	}

	p.printBox("MATCH RESULT", strings.TrimRight(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		sb.WriteString(fmt.Sprintf("%s: none\n\n", title))
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	sb.WriteString("\n")
}

// PrintRanking outputs the ranked candidates as a table.
func (p *Printer) PrintRanking(ranking *types.Ranking) {
	if ranking == nil || len(ranking.Candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d   Model: %s\n\n", len(ranking.Candidates), ranking.Model))
	sb.WriteString(fmt.Sprintf("%-4s %-*s %7s %7s\n", "#", maxLabelWidth, "Candidate", "Score", "Skills"))

	for i, c := range ranking.Candidates {
		label := c.Label
		if label == "" {
			label = c.ID
		}
		score := "n/a"
		overlap := "n/a"
		if c.Result != nil {
			score = fmt.Sprintf("%.4f", c.Result.Score)
			overlap = fmt.Sprintf("%.0f%%", c.Result.SkillOverlap*100)
		}
		sb.WriteString(fmt.Sprintf("%-4d %-*s %7s %7s\n", i+1, maxLabelWidth, truncate(label, maxLabelWidth), score, overlap))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimRight(sb.String(), "\n"))
}

// PrintSkillTargets outputs the weighted skills extracted from a job description.
func (p *Printer) PrintSkillTargets(targets *types.SkillTargets) {
	if targets == nil || len(targets.Skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills: %d\n\n", len(targets.Skills)))

	count := min(len(targets.Skills), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		skill := targets.Skills[i]
		sb.WriteString(fmt.Sprintf("  • %-24s %.1f  %s\n", skill.Name, skill.Weight, skill.Source))
	}

	if len(targets.Skills) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more skills", len(targets.Skills)-count))
	}

	p.printBox("JOB SKILL TARGETS", strings.TrimRight(sb.String(), "\n"))
}
