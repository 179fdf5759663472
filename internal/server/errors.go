package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/scoring"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMatchNotFound indicates a stored match does not exist
type ErrMatchNotFound struct {
	ID string
}

func (e *ErrMatchNotFound) Error() string {
	return fmt.Sprintf("match not found: %s", e.ID)
}

// errHistoryDisabled is returned by history endpoints when no store is configured
var errHistoryDisabled = errors.New("match history is not enabled (set DATABASE_URL)")

// HTTPStatus returns the appropriate HTTP status code for an error.
// Errors are matched through wrapping, so pipeline and parsing errors map by their cause.
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrMatchNotFound
		unsupported *ingestion.UnsupportedFormatError
		extract     *ingestion.ExtractError
		shape       *scoring.ShapeMismatchError
		unavailable *embedding.ModelUnavailableError
		fetchErr    *fetch.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extract), errors.Is(err, ingestion.ErrEmptySource):
		return http.StatusBadRequest
	case errors.Is(err, embedding.ErrUnknownModel):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &shape):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errHistoryDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
