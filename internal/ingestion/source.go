// Package ingestion turns resumes and job descriptions into raw text.
// Supported inputs are literal text, .txt/.md, .pdf, .docx and .html files, and job posting URLs.
package ingestion

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind tags how a Source carries its document
type Kind int

const (
	// KindText is literal document text
	KindText Kind = iota
	// KindPath is a path to a file on disk
	KindPath
	// KindBytes is an in-memory file (for example an upload) with its original name
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindBytes:
		return "bytes"
	default:
		return "text"
	}
}

// maxPathLength bounds strings that may be treated as a .txt path by ResolveSource
const maxPathLength = 260

// Source is a discriminated document input
type Source struct {
	Kind Kind
	Text string // KindText
	Path string // KindPath
	Name string // KindBytes: original filename, used for the extension
	Data []byte // KindBytes
}

// FromText returns a Source carrying literal text
func FromText(text string) Source {
	return Source{Kind: KindText, Text: text}
}

// FromPath returns a Source pointing at a file
func FromPath(path string) Source {
	return Source{Kind: KindPath, Path: path}
}

// FromBytes returns a Source for an in-memory file
func FromBytes(name string, data []byte) Source {
	return Source{Kind: KindBytes, Name: name, Data: data}
}

// ResolveSource decides whether s is a path to a .txt file or literal text.
// It is a path only when s has no line breaks, is shorter than 260 characters,
// ends in ".txt" and names an existing file. Anything else is literal text.
// Prefer FromPath/FromText when the caller already knows which one it has.
func ResolveSource(s string) Source {
	if looksLikeTextPath(s) {
		return FromPath(s)
	}
	return FromText(s)
}

func looksLikeTextPath(s string) bool {
	if strings.ContainsAny(s, "\n\r") {
		return false
	}
	if len(s) >= maxPathLength {
		return false
	}
	if !strings.HasSuffix(strings.ToLower(s), ".txt") {
		return false
	}
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}

// Ext returns the lowercase file extension for path and bytes sources
func (s Source) Ext() string {
	switch s.Kind {
	case KindPath:
		return strings.ToLower(filepath.Ext(s.Path))
	case KindBytes:
		return strings.ToLower(filepath.Ext(s.Name))
	default:
		return ""
	}
}

// Filename returns the base filename, or an empty string for literal text
func (s Source) Filename() string {
	switch s.Kind {
	case KindPath:
		return filepath.Base(s.Path)
	case KindBytes:
		return filepath.Base(s.Name)
	default:
		return ""
	}
}
