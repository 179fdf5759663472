package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested document
type Metadata struct {
	Filename    string `json:"filename,omitempty"`
	Format      string `json:"format"`                 // "text", "txt", "pdf", "docx", "html", "url"
	URL         string `json:"url,omitempty"`          // set for fetched job postings
	Timestamp   string `json:"timestamp"`              // RFC3339 format
	Hash        string `json:"hash"`                   // SHA256 hex digest of the extracted text
	Chars       int    `json:"chars"`                  // rune count of the extracted text
	InvalidUTF8 int    `json:"invalid_utf8,omitempty"` // invalid byte runs replaced during decoding
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, format string) *Metadata {
	return &Metadata{
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ComputeHash(content),
		Chars:     utf8.RuneCountInString(content),
	}
}

// ComputeHash computes SHA256 hash of content and returns hex string
func ComputeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// InvalidInput returns the recovered decoding problem, or nil if the text decoded cleanly
func (m *Metadata) InvalidInput() *InvalidInputError {
	if m == nil || m.InvalidUTF8 == 0 {
		return nil
	}
	return &InvalidInputError{Filename: m.Filename, Replaced: m.InvalidUTF8}
}

// AsMap flattens the metadata for ParsedDocument.Meta
func (m *Metadata) AsMap() map[string]any {
	out := map[string]any{
		"format":    m.Format,
		"timestamp": m.Timestamp,
		"hash":      m.Hash,
		"chars":     m.Chars,
	}
	if m.Filename != "" {
		out["filename"] = m.Filename
	}
	if m.URL != "" {
		out["url"] = m.URL
	}
	if m.InvalidUTF8 > 0 {
		out["invalid_utf8"] = true
	}
	return out
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
