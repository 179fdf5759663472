package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching HTTP API",
	Long: `Start an HTTP server exposing POST /match, POST /rank, POST /rank/stream, GET /models
and GET /health. When DATABASE_URL is set, results can be saved and the match
history endpoints are enabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := *appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vocab, err := loadVocabulary(&cfg)
	if err != nil {
		return err
	}
	provider, cleanup, err := newProvider(ctx, &cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	// /health and /models stay up; match requests get 503 until the backend answers
	if err := provider.Probe(ctx, cfg.Model); err != nil {
		appLogger.Warn("default embedding model unavailable", zap.String("model", cfg.Model), zap.Error(err))
	}

	deps := server.Deps{
		Embedder:   provider,
		Models:     provider,
		Vocabulary: vocab,
		Fetch:      fetch.DefaultOptions(),
		Logger:     appLogger,
	}
	if cfg.DatabaseURL != "" {
		store, err := openStore(ctx, &cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Store = store
	} else {
		appLogger.Info("DATABASE_URL not set; match history disabled")
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		Model:       cfg.Model,
		Pool:        cfg.Pool,
		Concurrency: cfg.Concurrency,
	}, deps)

	appLogger.Info("serving",
		zap.Int("port", cfg.Port),
		zap.String("model", cfg.Model),
		zap.Strings("backends", backendNames(&cfg)))
	return srv.Start(ctx)
}

func backendNames(cfg *config.Config) []string {
	var names []string
	for _, p := range cfg.Backends() {
		names = append(names, string(p))
	}
	return names
}
