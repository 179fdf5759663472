package ingestion

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Extractor converts the bytes of one file format into raw text
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

// Extract calls f(ctx, data)
func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

var (
	extractorsMu sync.RWMutex
	extractors   = map[string]Extractor{
		".txt":  ExtractorFunc(extractPlain),
		".md":   ExtractorFunc(extractPlain),
		".pdf":  ExtractorFunc(extractPDF),
		".docx": ExtractorFunc(extractDOCX),
		".html": ExtractorFunc(extractHTML),
		".htm":  ExtractorFunc(extractHTML),
	}
)

// RegisterExtractor installs or replaces the extractor for a file extension (including the dot)
func RegisterExtractor(ext string, e Extractor) {
	extractorsMu.Lock()
	defer extractorsMu.Unlock()
	extractors[strings.ToLower(ext)] = e
}

// IsSupported reports whether an extractor is registered for ext
func IsSupported(ext string) bool {
	_, ok := lookupExtractor(ext)
	return ok
}

func lookupExtractor(ext string) (Extractor, bool) {
	extractorsMu.RLock()
	defer extractorsMu.RUnlock()
	e, ok := extractors[strings.ToLower(ext)]
	return e, ok
}

// Extract returns the raw text of a document and its metadata.
// Unknown extensions fail with *UnsupportedFormatError before any file is read.
func Extract(ctx context.Context, src Source) (string, *Metadata, error) {
	if src.Kind == KindText {
		text, replaced := DecodeText([]byte(src.Text))
		meta := NewMetadata(text, "text")
		meta.InvalidUTF8 = replaced
		return text, meta, nil
	}

	if src.Filename() == "" || src.Filename() == "." {
		return "", nil, ErrEmptySource
	}

	ext := src.Ext()
	extractor, ok := lookupExtractor(ext)
	if !ok {
		return "", nil, &UnsupportedFormatError{Ext: ext}
	}

	data := src.Data
	if src.Kind == KindPath {
		var err error
		data, err = os.ReadFile(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", nil, fmt.Errorf("file not found: %w", err)
			}
			return "", nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	format := strings.TrimPrefix(ext, ".")
	raw, err := extractor.Extract(ctx, data)
	if err != nil {
		return "", nil, &ExtractError{Format: format, Cause: err}
	}

	text, replaced := DecodeText([]byte(raw))
	meta := NewMetadata(text, format)
	meta.Filename = src.Filename()
	meta.InvalidUTF8 = replaced
	return text, meta, nil
}

func extractPlain(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}
