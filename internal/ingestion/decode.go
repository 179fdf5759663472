package ingestion

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw bytes to a string. Each run of invalid UTF-8 is replaced
// with a single U+FFFD, a leading BOM is dropped and NUL bytes are removed.
// It also returns how many invalid runs were replaced.
func DecodeText(data []byte) (string, int) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte{0}, nil)

	if utf8.Valid(data) {
		return string(data), 0
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), countInvalidRuns(data)
}

func countInvalidRuns(data []byte) int {
	runs := 0
	inRun := false
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			if !inRun {
				runs++
			}
			inRun = true
		} else {
			inRun = false
		}
		data = data[size:]
	}
	return runs
}
