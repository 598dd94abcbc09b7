package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"newspress/internal/handler/http/requestid"
)

// ParseLevel maps a LOG_LEVEL value onto a slog level.
// Supported levels: debug, info, warn, error. Anything else is info.
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

func handlerOptions() *slog.HandlerOptions {
	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	// source locations only when running at warn or below
	return &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelWarn}
}

// newLogger picks the handler for format ("text" or anything else for JSON).
func newLogger(w io.Writer, format string) *slog.Logger {
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, handlerOptions()))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOptions()))
}

// NewLogger returns a JSON logger on stdout honouring LOG_LEVEL.
func NewLogger() *slog.Logger {
	return newLogger(os.Stdout, "json")
}

// Setup builds the process logger and installs it as the slog default.
// LOG_FORMAT=text switches to the text handler for local runs.
func Setup() *slog.Logger {
	logger := newLogger(os.Stdout, os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)
	return logger
}

// WithRequestID tags logger with the request id carried by ctx, if any.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithFields returns logger with fields attached as attributes.
func WithFields(logger *slog.Logger, fields map[string]any) *slog.Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}
