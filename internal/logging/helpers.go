package logging

import (
	"maps"

	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Nil loggers and empty maps pass through untouched.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// Ensure returns logger, or a no-op logger when it is nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
