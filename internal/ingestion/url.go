package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// FetchJobPosting downloads a job posting page and returns its main text with metadata
func FetchJobPosting(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	raw, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	text, replaced := DecodeText([]byte(raw))
	meta := NewMetadata(text, "url")
	meta.URL = urlStr
	meta.InvalidUTF8 = replaced
	return text, meta, nil
}
