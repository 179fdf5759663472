package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptySource is returned for a path or bytes source without a name
var ErrEmptySource = errors.New("empty document source")

// UnsupportedFormatError is returned for a file extension no extractor handles
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported document format: missing file extension"
	}
	return fmt.Sprintf("unsupported document format: %s", e.Ext)
}

// InvalidInputError describes text that was not valid UTF-8.
// Decoding recovers by substitution, so this is reported through Metadata rather than returned.
type InvalidInputError struct {
	Filename string
	Replaced int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input in %q: %d invalid byte sequence(s) replaced", e.Filename, e.Replaced)
}

// ExtractError wraps a failure inside a format extractor
type ExtractError struct {
	Format string
	Cause  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
