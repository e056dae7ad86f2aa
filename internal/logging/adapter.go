package logging

import (
	"go.uber.org/zap"
)

// keyValuePairSize represents the number of elements in a key-value pair.
const keyValuePairSize = 2

// Adapter exposes a zap logger through the variadic key-value interface
// used by the api package.
type Adapter struct {
	log *zap.Logger
}

// NewAdapter creates a new logger adapter.
func NewAdapter(log *zap.Logger) *Adapter {
	return &Adapter{log: log}
}

// Debug logs a debug message with key-value pairs.
func (a *Adapter) Debug(msg string, keysAndValues ...any) {
	a.log.Debug(msg, toFields(keysAndValues)...)
}

// Info logs an info message with key-value pairs.
func (a *Adapter) Info(msg string, keysAndValues ...any) {
	a.log.Info(msg, toFields(keysAndValues)...)
}

// Warn logs a warning message with key-value pairs.
func (a *Adapter) Warn(msg string, keysAndValues ...any) {
	a.log.Warn(msg, toFields(keysAndValues)...)
}

// Error logs an error message with key-value pairs.
func (a *Adapter) Error(msg string, keysAndValues ...any) {
	a.log.Error(msg, toFields(keysAndValues)...)
}

// toFields converts key-value pairs to zap fields. Trailing keys without a
// value and non-string keys are dropped.
func toFields(keysAndValues []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/keyValuePairSize)
	for i := 0; i+1 < len(keysAndValues); i += keyValuePairSize {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
