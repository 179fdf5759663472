package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over embedding backends
type Client interface {
	// Embed returns one vector per input text, in input order
	Embed(ctx context.Context, model string, texts []string, task TaskType) ([][]float32, error)
	// Provider reports which backend this client talks to
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for the given provider
func NewClient(ctx context.Context, p Provider, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(p); err != nil {
		return nil, err
	}

	switch p {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderHTTP:
		return NewHTTPClient(config), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", p)
	}
}

// batches splits texts into consecutive groups of at most size
func batches(texts []string, size int) [][]string {
	if size <= 0 {
		size = len(texts)
	}
	out := make([][]string, 0, (len(texts)+size-1)/max(size, 1))
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		out = append(out, texts[start:end])
	}
	return out
}
