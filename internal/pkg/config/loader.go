package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Loader reads environment variables with validation. A value that is unset
// keeps its default silently; a value that fails to parse or validate keeps
// its default and is reported through the logger and metrics. Loading never
// fails.
//
//	l := config.NewLoader(logger, metrics)
//	schedule := l.String("STATS_REFRESH_SCHEDULE", "*/5 * * * *", config.ValidateCronSchedule)
//	timeout := l.Duration("STATS_REFRESH_TIMEOUT", 30*time.Second, nil)
//	l.Done()
type Loader struct {
	logger   *slog.Logger
	metrics  *ConfigMetrics
	fallback bool
	warnings []string
}

// NewLoader creates a Loader. metrics may be nil.
func NewLoader(logger *slog.Logger, metrics *ConfigMetrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, metrics: metrics}
}

// String loads a string; validate may be nil.
func (l *Loader) String(key, def string, validate func(string) error) string {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	if validate != nil {
		if err := validate(raw); err != nil {
			l.fallBack(key, raw, fmt.Sprint(def), err)
			return def
		}
	}
	return raw
}

// Duration loads a time.Duration ("30s", "5m"); validate may be nil.
func (l *Loader) Duration(key string, def time.Duration, validate func(time.Duration) error) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err == nil && validate != nil {
		err = validate(d)
	}
	if err != nil {
		l.fallBack(key, raw, def.String(), err)
		return def
	}
	return d
}

// Int loads an integer; validate may be nil.
func (l *Loader) Int(key string, def int, validate func(int) error) int {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		l.fallBack(key, raw, strconv.Itoa(def), err)
		return def
	}
	return v
}

// Bool loads a boolean in any form strconv.ParseBool accepts.
func (l *Loader) Bool(key string, def bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		l.fallBack(key, raw, strconv.FormatBool(def), err)
		return def
	}
	return v
}

// Warnings returns one message per fallback applied so far.
func (l *Loader) Warnings() []string {
	return l.warnings
}

// FallbackApplied reports whether any value fell back to its default.
func (l *Loader) FallbackApplied() bool {
	return l.fallback
}

// Done publishes the load timestamp and the fallback flag.
func (l *Loader) Done() {
	if l.metrics == nil {
		return
	}
	l.metrics.SetFallbackActive(l.fallback)
	l.metrics.RecordLoadTimestamp()
}

func (l *Loader) fallBack(key, raw, def string, err error) {
	l.fallback = true
	msg := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", key, raw, err, def)
	l.warnings = append(l.warnings, msg)
	if l.metrics != nil {
		l.metrics.RecordFallback(strings.ToLower(key))
	}
	l.logger.Warn("Configuration fallback applied",
		slog.String("env_key", key),
		slog.String("invalid_value", raw),
		slog.String("default_value", def),
		slog.String("error", err.Error()))
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}
