package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini embedding models
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Embed embeds texts with a Gemini embedding model, batching requests as needed
func (c *GeminiClient) Embed(ctx context.Context, model string, texts []string, task TaskType) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	em := c.client.EmbeddingModel(model)
	em.TaskType = geminiTaskType(task)

	if len(texts) == 1 {
		resp, err := em.EmbedContent(ctx, genai.Text(texts[0]))
		if err != nil {
			return nil, fmt.Errorf("failed to embed content: %w", err)
		}
		if resp.Embedding == nil {
			return nil, fmt.Errorf("no embedding in response")
		}
		return [][]float32{resp.Embedding.Values}, nil
	}

	out := make([][]float32, 0, len(texts))
	for _, group := range batches(texts, c.config.batchSize(geminiMaxBatch)) {
		batch := em.NewBatch()
		for _, t := range group {
			batch.AddContent(genai.Text(t))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to batch embed contents: %w", err)
		}
		if len(resp.Embeddings) != len(group) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(group), len(resp.Embeddings))
		}
		for _, e := range resp.Embeddings {
			if e == nil {
				return nil, fmt.Errorf("nil embedding in batch response")
			}
			out = append(out, e.Values)
		}
	}

	return out, nil
}

// Provider returns ProviderGemini
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func geminiTaskType(task TaskType) genai.TaskType {
	switch task {
	case TaskQuery:
		return genai.TaskTypeRetrievalQuery
	case TaskDocument:
		return genai.TaskTypeRetrievalDocument
	default:
		return genai.TaskTypeSemanticSimilarity
	}
}
