package http

import (
	"context"
	"log/slog"
	"time"

	"newspress/internal/handler/http/middleware"
	"newspress/pkg/config"
)

// StartRateLimitCleanup starts a background loop that periodically forgets
// idle clients of limiter.
//
// This prevents the per-IP bucket map from growing without bound.
// The loop stops when ctx is cancelled (e.g., during server shutdown).
//
// Parameters:
//   - ctx: Context for cancellation (typically server's context)
//   - limiter: The rate limiter to clean up
//   - cfg: How often to run cleanup and how long a client may stay idle
//   - limiterType: Type of rate limiter for logging (e.g., "auth")
func StartRateLimitCleanup(
	ctx context.Context,
	limiter *middleware.RateLimiter,
	cfg CleanupConfig,
	limiterType string,
) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", cfg.Interval),
		slog.Duration("idle_after", cfg.IdleAfter))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			limiter.CleanupExpired(cfg.IdleAfter)
		}
	}
}

// CleanupConfig holds configuration for rate limit cleanup.
type CleanupConfig struct {
	// Interval specifies how often to run cleanup.
	// Default: 5 minutes
	Interval time.Duration

	// IdleAfter is how long a client may go without a request before its
	// bucket is dropped. A dropped client starts again with a full bucket.
	// Default: 10 minutes
	IdleAfter time.Duration
}

// Cleanup defaults if not specified.
const (
	DefaultCleanupInterval = 5 * time.Minute
	DefaultCleanupIdle     = 10 * time.Minute
)

// LoadCleanupConfigFromEnv loads cleanup configuration from environment variables.
//
// Environment variables:
//   - RATELIMIT_CLEANUP_INTERVAL: Cleanup interval (e.g., "5m", "10m")
//   - RATELIMIT_CLEANUP_IDLE: Idle time before a client is forgotten
//
// If parsing fails or values are invalid, defaults are used instead of failing.
func LoadCleanupConfigFromEnv() CleanupConfig {
	cfg := CleanupConfig{
		Interval:  config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval),
		IdleAfter: config.GetEnvDuration("RATELIMIT_CLEANUP_IDLE", DefaultCleanupIdle),
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultCleanupInterval
	}
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = DefaultCleanupIdle
	}
	return cfg
}
