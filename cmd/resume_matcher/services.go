package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// effectiveConfig applies per-command flag overrides on top of the loaded configuration
func effectiveConfig(model, pool string) (config.Config, error) {
	flags := config.Config{Model: model, Pool: pool}
	cfg := flags.MergeWithDefaults(*appConfig)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newProvider starts the configured embedding backends.
// The returned cleanup releases resident models and backend clients.
func newProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (*embedding.Provider, func(), error) {
	llmCfg := cfg.LLMConfig()

	var clients []llm.Client
	for _, p := range cfg.Backends() {
		c, err := llm.NewClient(ctx, p, llmCfg)
		if err != nil {
			for _, started := range clients {
				_ = started.Close()
			}
			return nil, nil, fmt.Errorf("failed to start %s embedding backend: %w", p, err)
		}
		clients = append(clients, c)
	}

	loader := embedding.NewClientLoader(clients...)
	provider := embedding.NewProvider(loader, embedding.Options{CacheSize: cfg.CacheSize, Logger: log})

	cleanup := func() {
		if err := provider.Close(); err != nil {
			log.Warn("failed to release models", zap.Error(err))
		}
		if err := loader.Close(); err != nil {
			log.Warn("failed to close embedding backends", zap.Error(err))
		}
	}
	return provider, cleanup, nil
}

// checkModel probes the model before any document is embedded, so an unreachable backend
// fails with a ModelUnavailableError up front. Documents without text never reach a model
// and skip the check.
func checkModel(ctx context.Context, provider *embedding.Provider, model string, docs ...*types.ParsedDocument) error {
	needed := false
	for _, d := range docs {
		if d != nil && strings.TrimSpace(d.ChunkSource()) != "" {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}
	if err := provider.Probe(ctx, model); err != nil {
		return fmt.Errorf("embedding backend check failed: %w", err)
	}
	return nil
}

// loadVocabulary returns the skills file vocabulary, or the built-in one
func loadVocabulary(cfg *config.Config) (*skills.Vocabulary, error) {
	if cfg.SkillsFile == "" {
		return skills.DefaultVocabulary(), nil
	}
	vocab, err := skills.LoadVocabulary(cfg.SkillsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills file: %w", err)
	}
	return vocab, nil
}

// openStore connects to the match history database and applies the schema
func openStore(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required to save matches")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// resumeSource picks the resume input: a positional argument (path or text), a path or literal text
func resumeSource(arg, path, text string) (ingestion.Source, error) {
	set := countSet(arg, path, text)
	switch {
	case set == 0:
		return ingestion.Source{}, fmt.Errorf("a resume is required (--resume, --resume-text or a positional argument)")
	case set > 1:
		return ingestion.Source{}, fmt.Errorf("--resume, --resume-text and a positional resume are mutually exclusive")
	case path != "":
		return ingestion.FromPath(path), nil
	case text != "":
		return ingestion.FromText(text), nil
	default:
		return ingestion.ResolveSource(arg), nil
	}
}

// parseJobInput parses the job description from exactly one of its inputs
func parseJobInput(ctx context.Context, arg, path, text, url string) (*types.ParsedDocument, error) {
	switch set := countSet(arg, path, text, url); {
	case set == 0:
		return nil, fmt.Errorf("a job description is required (--job, --job-text, --job-url or a positional argument)")
	case set > 1:
		return nil, fmt.Errorf("--job, --job-text, --job-url and a positional job are mutually exclusive")
	}

	var (
		doc *types.ParsedDocument
		err error
	)
	switch {
	case url != "":
		doc, err = parsing.ParseJobURL(ctx, url, fetch.DefaultOptions())
	case path != "":
		doc, err = parsing.ParseJob(ctx, ingestion.FromPath(path))
	case text != "":
		doc, err = parsing.ParseJob(ctx, ingestion.FromText(text))
	default:
		doc, err = parsing.ParseJob(ctx, ingestion.ResolveSource(arg))
	}
	if err != nil {
		return nil, err
	}
	warnInvalidInput(doc)
	appLogger.Debug("parsed job description",
		zap.Any("chars", doc.Meta["chars"]),
		zap.String("preview", logger.TruncateForLog(doc.Text, 120)))
	return doc, nil
}

// parseResume parses one resume source
func parseResume(ctx context.Context, src ingestion.Source) (*types.ParsedDocument, error) {
	doc, err := parsing.ParseResume(ctx, src)
	if err != nil {
		return nil, err
	}
	warnInvalidInput(doc)
	return doc, nil
}

// warnInvalidInput logs documents whose bytes were not valid UTF-8
func warnInvalidInput(doc *types.ParsedDocument) {
	if bad, _ := doc.Meta["invalid_utf8"].(bool); bad {
		name, _ := doc.Meta["filename"].(string)
		appLogger.Warn("document contained invalid UTF-8; bad bytes were replaced",
			zap.String("source", doc.Source()),
			zap.String("filename", name))
	}
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}

// writeJSON validates v against an embedded schema, then writes it to outPath or w
func writeJSON(w io.Writer, outPath, schemaName string, v any) error {
	if err := schemas.ValidateValue(schemaName, v); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("output does not validate against %s: %w", schemaName, err)
		}
		appLogger.Warn("could not validate output against schema", zap.String("schema", schemaName), zap.Error(err))
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	appLogger.Info("wrote output", zap.String("path", outPath))
	return nil
}
