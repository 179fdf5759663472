// Package parsing turns extracted resume and job description text into canonical ParsedDocuments.
// It owns the whitespace normalizer, the paragraph chunker and skill name canonicalization.
package parsing

import (
	"context"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ParseResume extracts, normalizes and sections a resume
func ParseResume(ctx context.Context, src ingestion.Source) (*types.ParsedDocument, error) {
	return parse(ctx, src, types.SourceResume)
}

// ParseJob extracts, normalizes and sections a job description
func ParseJob(ctx context.Context, src ingestion.Source) (*types.ParsedDocument, error) {
	return parse(ctx, src, types.SourceJob)
}

// ParseJobURL fetches a job posting page and parses it as a job description
func ParseJobURL(ctx context.Context, url string, opts *fetch.Options) (*types.ParsedDocument, error) {
	raw, meta, err := ingestion.FetchJobPosting(ctx, url, opts)
	if err != nil {
		return nil, &ExtractionError{Source: types.SourceJob, Cause: err}
	}
	return NewDocument(raw, meta, types.SourceJob), nil
}

func parse(ctx context.Context, src ingestion.Source, source string) (*types.ParsedDocument, error) {
	raw, meta, err := ingestion.Extract(ctx, src)
	if err != nil {
		return nil, &ExtractionError{Source: source, Cause: err}
	}
	return NewDocument(raw, meta, source), nil
}

// NewDocument builds a ParsedDocument from extracted text.
// The hash and character count in Meta describe the normalized text.
func NewDocument(raw string, meta *ingestion.Metadata, source string) *types.ParsedDocument {
	text := Normalize(raw)

	m := map[string]any{}
	if meta != nil {
		m = meta.AsMap()
	}
	m["source"] = source
	m["hash"] = ingestion.ComputeHash(text)
	m["chars"] = utf8.RuneCountInString(text)

	return &types.ParsedDocument{
		Text:     text,
		Raw:      raw,
		Sections: DetectSections(text),
		Meta:     m,
	}
}
