// Package worker runs the portal's background jobs. Today that is the
// StatsRefresher, which keeps the dashboard stat gauges current on a cron
// schedule.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newspress/internal/pkg/config"
)

// Config controls the stats refresher.
type Config struct {
	// Schedule is a five-field cron expression. Default: "*/5 * * * *".
	Schedule string
	// Timezone is the IANA zone the schedule is evaluated in. Default: "UTC".
	Timezone string
	// Timeout bounds a single refresh. Default: 30s.
	Timeout time.Duration
}

// DefaultConfig returns the refresher defaults.
func DefaultConfig() Config {
	return Config{
		Schedule: "*/5 * * * *",
		Timezone: "UTC",
		Timeout:  30 * time.Second,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateTimeout(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads the refresher configuration. It never fails: each
// invalid value falls back to its default and is counted in metrics.
//
// Environment variables:
//   - STATS_REFRESH_SCHEDULE (default "*/5 * * * *")
//   - STATS_REFRESH_TIMEZONE (default "UTC")
//   - STATS_REFRESH_TIMEOUT (1s-5m, default 30s)
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) Config {
	def := DefaultConfig()
	var cm *config.ConfigMetrics
	if metrics != nil {
		cm = metrics.ConfigMetrics
	}
	l := config.NewLoader(logger, cm)
	cfg := Config{
		Schedule: l.String("STATS_REFRESH_SCHEDULE", def.Schedule, config.ValidateCronSchedule),
		Timezone: l.String("STATS_REFRESH_TIMEZONE", def.Timezone, config.ValidateTimezone),
		Timeout:  l.Duration("STATS_REFRESH_TIMEOUT", def.Timeout, validateTimeout),
	}
	l.Done()
	return cfg
}

func validateTimeout(d time.Duration) error {
	if d < time.Second || d > 5*time.Minute {
		return fmt.Errorf("duration %v outside 1s-5m", d)
	}
	return nil
}
