package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank --job FILE [resume files...]",
	Short: "Rank resumes against one job description",
	Long:  "Score every resume against one job description and print the candidates best first.",
	RunE:  runRank,
}

var (
	rankResumes []string
	rankJobPath string
	rankJobText string
	rankJobURL  string
	rankModel   string
	rankPool    string
	rankTop     int
	rankFormat  string
	rankOutput  string
	rankSave    bool
)

func init() {
	rankCmd.Flags().StringArrayVar(&rankResumes, "resume", nil, "Path to a resume (repeatable); positional arguments are added")
	rankCmd.Flags().StringVar(&rankJobPath, "job", "", "Path to job description")
	rankCmd.Flags().StringVar(&rankJobText, "job-text", "", "Job description text")
	rankCmd.Flags().StringVar(&rankJobURL, "job-url", "", "URL of a job posting to fetch")
	rankCmd.Flags().StringVar(&rankModel, "model", "", "Embedding model (default from config)")
	rankCmd.Flags().StringVar(&rankPool, "pool", "", "Chunk pooling strategy: mean or max")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Show only the best N candidates")
	rankCmd.Flags().StringVar(&rankFormat, "format", "table", "Output format: table or json")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "Write JSON to this file")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Store every result in the match history database")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankFormat != "table" && rankFormat != "json" {
		return fmt.Errorf("--format must be table or json, got %q", rankFormat)
	}
	if rankTop < 0 {
		return fmt.Errorf("--top must be non-negative")
	}

	paths := append(append([]string{}, rankResumes...), args...)
	if len(paths) == 0 {
		return fmt.Errorf("at least one resume is required (--resume or positional arguments)")
	}

	cfg, err := effectiveConfig(rankModel, rankPool)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	job, err := parseJobInput(ctx, "", rankJobPath, rankJobText, rankJobURL)
	if err != nil {
		return err
	}
	resumes := make([]*types.ParsedDocument, len(paths))
	for i, path := range paths {
		src, err := resumeSource("", path, "")
		if err != nil {
			return err
		}
		if resumes[i], err = parseResume(ctx, src); err != nil {
			return err
		}
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

	if err := checkModel(ctx, provider, cfg.Model, append(resumes, job)...); err != nil {
		return err
	}

	opts := pipeline.Options{
		Model:       cfg.Model,
		Pool:        embedding.PoolStrategy(cfg.Pool),
		Concurrency: cfg.Concurrency,
		Vocabulary:  vocab,
		Logger:      appLogger,
	}
	if rankSave {
		store, err := openStore(ctx, &cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
	}

	ranked, _, err := pipeline.NewMatcher(provider, opts).MatchMany(ctx, resumes, job)
	if err != nil {
		return err
	}
	ranked.Candidates = ranking.Top(ranked.Candidates, rankTop)

	if rankOutput != "" || rankFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), rankOutput, schemafiles.Ranking, ranked); err != nil {
			return err
		}
	}
	if rankFormat == "table" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(ranked)
	}
	return nil
}
