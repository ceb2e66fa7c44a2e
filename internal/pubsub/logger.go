package pubsub

import (
	"sort"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/charmbracelet/log"
)

// Logger routes watermill logs through charmbracelet/log.
type Logger struct {
	logger *log.Logger
}

// NewLogger wraps logger as a watermill.LoggerAdapter.
func NewLogger(logger *log.Logger) *Logger {
	return &Logger{logger: logger}
}

var _ watermill.LoggerAdapter = (*Logger)(nil)

func (l *Logger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(keyvals(fields), "error", err)...)
}

func (l *Logger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, keyvals(fields)...)
}

func (l *Logger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, keyvals(fields)...)
}

// Trace is folded into debug, charmbracelet/log has no lower level.
func (l *Logger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, keyvals(fields)...)
}

func (l *Logger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &Logger{logger: l.logger.With(keyvals(fields)...)}
}

func keyvals(fields watermill.LogFields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
