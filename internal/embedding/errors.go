package embedding

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is the cause of a ModelUnavailableError for names missing from the registry
var ErrUnknownModel = errors.New("unknown embedding model")

// ModelUnavailableError is returned when an embedding model cannot be resolved, loaded or reached
type ModelUnavailableError struct {
	Model string
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding model %q unavailable: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("embedding model %q unavailable", e.Model)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}
