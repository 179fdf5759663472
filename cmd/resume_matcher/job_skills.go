package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/skills"
)

var jobSkillsCmd = &cobra.Command{
	Use:   "job-skills [job]",
	Short: "Show the weighted skills found in a job description",
	Long: `Extract the skills a job description asks for. Skills under requirement headings
weigh 1.0, nice-to-haves 0.5 and other mentions 0.3. No model is loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJobSkills,
}

var (
	jobSkillsPath   string
	jobSkillsText   string
	jobSkillsURL    string
	jobSkillsFormat string
)

func init() {
	jobSkillsCmd.Flags().StringVar(&jobSkillsPath, "job", "", "Path to job description")
	jobSkillsCmd.Flags().StringVar(&jobSkillsText, "job-text", "", "Job description text")
	jobSkillsCmd.Flags().StringVar(&jobSkillsURL, "job-url", "", "URL of a job posting to fetch")
	jobSkillsCmd.Flags().StringVar(&jobSkillsFormat, "format", "table", "Output format: table or json")

	rootCmd.AddCommand(jobSkillsCmd)
}

func runJobSkills(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	job, err := parseJobInput(cmd.Context(), arg, jobSkillsPath, jobSkillsText, jobSkillsURL)
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(appConfig)
	if err != nil {
		return err
	}

	targets := skills.BuildSkillTargets(job, vocab)

	switch jobSkillsFormat {
	case "json":
		return writeIndented(cmd.OutOrStdout(), targets)
	case "table":
		if len(targets.Skills) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No known skills found.")
			return nil
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSkillTargets(targets)
		return nil
	default:
		return fmt.Errorf("--format must be table or json, got %q", jobSkillsFormat)
	}
}
