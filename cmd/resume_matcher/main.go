// Package main provides the resume_matcher CLI: score resumes against job descriptions,
// rank candidates and serve the matching HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logger"
)

var (
	// Used for flags.
	cfgFile   string
	debugLogs bool
	jsonLogs  bool

	// Set by setup before any command runs
	appConfig *config.Config
	appLogger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Score resumes against job descriptions",
	Long: `resume_matcher compares resumes with job descriptions using sentence embeddings
and skill overlap. It scores one pair, ranks many resumes for one job, or serves
the same operations over HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = appLogger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (JSON or YAML); MATCHER_* env vars override it")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "Verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "JSON format for logging")
}

// setup loads the configuration and builds the logger
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || debugLogs
	cfg.JSONLogs = cfg.JSONLogs || jsonLogs
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	appLogger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
