// Package llm provides the text-to-vector backends used by the embedding provider.
// Backends are selected by Provider: Gemini embeddings through the Google AI SDK, or
// any server speaking the text-embeddings-inference HTTP API for sentence-transformers models.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider represents an embedding backend
type Provider string

// Provider constants define supported embedding backends
const (
	// ProviderGemini is the Google Gemini embedding API
	ProviderGemini Provider = "gemini"
	// ProviderHTTP is a text-embeddings-inference compatible HTTP server
	ProviderHTTP Provider = "http"
)

// TaskType tells asymmetric backends which side of a retrieval pair a text is on
type TaskType string

const (
	// TaskQuery marks the job description side
	TaskQuery TaskType = "query"
	// TaskDocument marks the resume side
	TaskDocument TaskType = "document"
)

// Default settings
const (
	DefaultEndpoint  = "http://localhost:8080"
	DefaultTimeout   = 60 * time.Second
	DefaultBatchSize = 32
	// geminiMaxBatch is the API limit for BatchEmbedContents
	geminiMaxBatch = 100
)

// Config holds backend connection settings
type Config struct {
	APIKey    string            // Gemini API key
	Endpoint  string            // default HTTP inference endpoint
	Endpoints map[string]string // per-model HTTP endpoints, keyed by model name
	Timeout   time.Duration
	BatchSize int
}

// DefaultConfig returns the default backend configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Endpoints: map[string]string{},
		Timeout:   DefaultTimeout,
		BatchSize: DefaultBatchSize,
	}
}

// EndpointFor returns the HTTP endpoint serving a model. Keys match exactly or in lower case.
func (c *Config) EndpointFor(model string) string {
	if ep, ok := c.Endpoints[model]; ok && ep != "" {
		return strings.TrimRight(ep, "/")
	}
	if ep, ok := c.Endpoints[strings.ToLower(model)]; ok && ep != "" {
		return strings.TrimRight(ep, "/")
	}
	return strings.TrimRight(c.Endpoint, "/")
}

// WithAPIKey returns a copy of the config with the API key set
func (c *Config) WithAPIKey(key string) *Config {
	newConfig := *c
	newConfig.Endpoints = make(map[string]string, len(c.Endpoints))
	for k, v := range c.Endpoints {
		newConfig.Endpoints[k] = v
	}
	newConfig.APIKey = key
	return &newConfig
}

// batchSize returns the configured batch size capped at limit
func (c *Config) batchSize(limit int) int {
	size := c.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	if limit > 0 && size > limit {
		size = limit
	}
	return size
}

// Validate checks the settings a provider needs
func (c *Config) Validate(p Provider) error {
	switch p {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("API key is required for provider %s", p)
		}
	case ProviderHTTP:
		if c.Endpoint == "" && len(c.Endpoints) == 0 {
			return fmt.Errorf("endpoint is required for provider %s", p)
		}
	default:
		return fmt.Errorf("unknown provider %q", p)
	}
	return nil
}
