package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldModel is the structured log field key for the embedding model name.
	FieldModel = "embedding_model"
	// FieldPool is the structured log field key for the pooling strategy.
	FieldPool = "pool"
	// FieldMatchID is the structured log field key for a match result ID.
	FieldMatchID = "match_id"
)

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// MatchFields returns the fields that describe a matching run. Empty values are skipped.
func MatchFields(model, pool string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(model); v != "" {
		fields = append(fields, zap.String(FieldModel, v))
	}
	if v := strings.TrimSpace(pool); v != "" {
		fields = append(fields, zap.String(FieldPool, v))
	}
	return fields
}
