package parsing

import "fmt"

// ExtractionError wraps a document-to-text failure with the document role ("resume" or "job")
type ExtractionError struct {
	Source string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Source, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
