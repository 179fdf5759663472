package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume] [job]",
	Short: "Score one resume against one job description",
	Long: `Score one resume against one job description and print the match result as JSON.

Positional arguments are treated as .txt paths when they name an existing .txt file
and as literal text otherwise. Use the flags to pass other formats (.pdf, .docx, .html).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMatch,
}

var (
	matchResumePath string
	matchResumeText string
	matchJobPath    string
	matchJobText    string
	matchJobURL     string
	matchModel      string
	matchPool       string
	matchOutput     string
	matchSave       bool
	matchVerbose    bool
)

func init() {
	matchCmd.Flags().StringVar(&matchResumePath, "resume", "", "Path to resume (.txt, .md, .pdf, .docx, .html)")
	matchCmd.Flags().StringVar(&matchResumeText, "resume-text", "", "Resume text")
	matchCmd.Flags().StringVar(&matchJobPath, "job", "", "Path to job description")
	matchCmd.Flags().StringVar(&matchJobText, "job-text", "", "Job description text")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL of a job posting to fetch")
	matchCmd.Flags().StringVar(&matchModel, "model", "", "Embedding model (default from config)")
	matchCmd.Flags().StringVar(&matchPool, "pool", "", "Chunk pooling strategy: mean or max")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Write JSON to this file instead of stdout")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Store the result in the match history database")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print progress and a summary to stderr")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(matchModel, matchPool)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var resumeArg, jobArg string
	if len(args) > 0 {
		resumeArg = args[0]
	}
	if len(args) > 1 {
		jobArg = args[1]
	}

	src, err := resumeSource(resumeArg, matchResumePath, matchResumeText)
	if err != nil {
		return err
	}
	resume, err := parseResume(ctx, src)
	if err != nil {
		return err
	}
	job, err := parseJobInput(ctx, jobArg, matchJobPath, matchJobText, matchJobURL)
	if err != nil {
		return err
	}

	vocab, err := loadVocabulary(&cfg)
	if err != nil {
		return err
	}

	provider, cleanup, err := newProvider(ctx, &cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := checkModel(ctx, provider, cfg.Model, resume, job); err != nil {
		return err
	}

	opts := pipeline.Options{
		Model:       cfg.Model,
		Pool:        embedding.PoolStrategy(cfg.Pool),
		Concurrency: cfg.Concurrency,
		Vocabulary:  vocab,
		Logger:      appLogger,
	}
	if matchSave {
		store, err := openStore(ctx, &cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
	}
	stderr := cmd.ErrOrStderr()
	if matchVerbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(stderr, "[%s] %s\n", e.Step, e.Message)
		}
	}

	result, err := pipeline.NewMatcher(provider, opts).Match(ctx, resume, job)
	if err != nil {
		return err
	}

	if matchVerbose {
		observability.NewPrinter(stderr).PrintMatch(result)
	}
	return writeJSON(cmd.OutOrStdout(), matchOutput, schemafiles.MatchResult, result)
}
