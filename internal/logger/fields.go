package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidate is the structured log field key for the candidate identifier.
	FieldCandidate = "candidate_id"
	// FieldSkill is the structured log field key for the skill currently under questioning.
	FieldSkill = "skill"
	// FieldModel is the structured log field key for the generative model identifier.
	FieldModel = "model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields returns standard zap fields identifying one candidate's
// interview against a given model. Empty values are ignored to keep log
// entries compact when information is missing.
func SessionFields(candidateID, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidate, Value: candidateID},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithSessionFields attaches the common interview fields to the provided
// logger. If the logger is nil, a no-op logger is created to avoid panics.
func WithSessionFields(logger *zap.Logger, candidateID, model string) *zap.Logger {
	fields := SessionFields(candidateID, model)
	return WithFields(logger, fields...)
}
