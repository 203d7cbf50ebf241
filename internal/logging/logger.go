package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"expense-api/internal/config"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldClientIP  = "client_ip"
	FieldError     = "error"
	FieldReason    = "reason"
)

// Components
const (
	ComponentApp  = "app"
	ComponentHTTP = "http"
	ComponentAuth = "auth"
)

// New creates the process logger. Text output in development, JSON elsewhere,
// unless log.format says otherwise.
func New(cfg config.LogConfig, environment string) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, environment)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg config.LogConfig, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "json"
		if environment == "" || environment == "development" {
			format = "text"
		}
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent tags every record from the returned logger with a component name.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With(FieldComponent, component)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
