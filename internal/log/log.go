// Package log wraps log/slog with a component-scoped logger so every record
// carries the subsystem it came from.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Standard component names.
const (
	ComponentAPI       = "api"
	ComponentStatement = "statement"
	ComponentCommands  = "commands"
	ComponentConfig    = "config"
)

// Common field names for structured logging.
const (
	FieldError     = "error"
	FieldRef       = "ref"
	FieldUserID    = "user_id"
	FieldStatus    = "status"
	FieldEndpoint  = "endpoint"
	FieldAttempt   = "attempt"
	FieldOperation = "operation"
)

// Logger is a slog.Logger bound to a component.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a logger writing text records to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler), component: "app"}
}

// Default returns an Info-level logger on stderr, honoring DINAR_LOG_LEVEL.
func Default() *Logger {
	level := slog.LevelInfo
	switch os.Getenv("DINAR_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return New(os.Stderr, level)
}

// WithComponent returns a logger whose records carry the component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// With returns a logger with extra attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
