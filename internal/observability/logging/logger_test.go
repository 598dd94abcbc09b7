package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"newspress/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

/* ───────── levels ───────── */

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := newLogger(&buf, "json")

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	entry := decode(t, &buf)
	assert.Equal(t, "kept", entry["msg"])
	// warn 以下ではソース位置を付ける
	assert.Contains(t, entry, slog.SourceKey)
}

func TestNewLogger_Format(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")

	var text bytes.Buffer
	newLogger(&text, "TEXT").Info("page rendered", "page", "home")
	assert.Contains(t, text.String(), "msg=\"page rendered\" page=home")

	var js bytes.Buffer
	newLogger(&js, "").Info("page rendered", "page", "home")
	entry := decode(t, &js)
	assert.Equal(t, "home", entry["page"])
	assert.NotContains(t, entry, slog.SourceKey)
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("LOG_FORMAT", "text")

	logger := Setup()
	assert.Same(t, logger, slog.Default())
}

/* ───────── request scope ───────── */

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID any
	}{
		{"id present", requestid.WithRequestID(context.Background(), "req-123"), "req-123"},
		{"no id", context.Background(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, nil))

			WithRequestID(tt.ctx, base).Info("hello")

			assert.Equal(t, tt.wantID, decode(t, &buf)["request_id"])
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	WithFields(base, map[string]any{"handler": "home", "page": 2}).Info("listed")

	entry := decode(t, &buf)
	assert.Equal(t, "home", entry["handler"])
	assert.EqualValues(t, 2, entry["page"])

	buf.Reset()
	WithFields(base, nil).Info("bare")
	assert.Equal(t, "bare", decode(t, &buf)["msg"])
}
