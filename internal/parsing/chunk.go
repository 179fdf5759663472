package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinChunkLength is the minimum number of characters a paragraph needs to be embedded on its own.
// Shorter blocks are headers or stray bullets.
const MinChunkLength = 40

// paragraphBreak matches one or more blank (whitespace-only) lines
var paragraphBreak = regexp.MustCompile(`\n\s*\n+`)

// Chunk splits text into paragraph-sized blocks on blank-line boundaries.
// Blocks shorter than MinChunkLength are dropped. An empty result means the caller
// should embed the whole document instead.
func Chunk(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	parts := paragraphBreak.Split(text, -1)
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) < MinChunkLength {
			continue
		}
		chunks = append(chunks, part)
	}

	return chunks
}
