package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response is quoted back
const maxErrorBody = 512

// HTTPClient implements Client for servers speaking the text-embeddings-inference API
// (POST /embed {"inputs": [...]} -> [[...], ...]). Each server hosts one model, so
// the model name only selects the endpoint.
type HTTPClient struct {
	http   *http.Client
	config *Config
}

// embedRequest is the /embed request body
type embedRequest struct {
	Inputs    []string `json:"inputs"`
	Normalize bool     `json:"normalize"`
	Truncate  bool     `json:"truncate"`
}

// HTTPError is a non-2xx response from an inference server
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("embedding server returned HTTP %d: %s", e.StatusCode, e.Body)
}

// NewHTTPClient creates a client for text-embeddings-inference servers
func NewHTTPClient(config *Config) *HTTPClient {
	return &HTTPClient{
		http:   &http.Client{Timeout: config.Timeout},
		config: config,
	}
}

// WithHTTPClient replaces the underlying *http.Client
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.http = hc
	return c
}

// Embed posts texts to the model's endpoint in batches
func (c *HTTPClient) Embed(ctx context.Context, model string, texts []string, _ TaskType) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	endpoint := c.config.EndpointFor(model)
	if endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured for model %s", model)
	}

	out := make([][]float32, 0, len(texts))
	for _, group := range batches(texts, c.config.batchSize(0)) {
		vecs, err := c.post(ctx, endpoint+"/embed", group)
		if err != nil {
			return nil, err
		}
		if len(vecs) != len(group) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(group), len(vecs))
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, url string, inputs []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Inputs: inputs, Normalize: true, Truncate: true})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	var vecs [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vecs); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings: %w", err)
	}
	return vecs, nil
}

// Provider returns ProviderHTTP
func (c *HTTPClient) Provider() Provider {
	return ProviderHTTP
}

// Close is a no-op; idle connections belong to the shared transport
func (c *HTTPClient) Close() error {
	return nil
}
