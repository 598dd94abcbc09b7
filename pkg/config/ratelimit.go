package config

import (
	"log/slog"
)

// RateLimit is a token bucket setting: Rate tokens per second, up to Burst at once.
type RateLimit struct {
	Enabled bool
	Rate    float64
	Burst   int
}

// LoadRateLimit reads a token bucket setting from <prefix>_LIMIT, <prefix>_BURST
// and <prefix>_ENABLED. Non-positive values fall back to the defaults with a warning.
//
// Example:
//
//	auth := LoadRateLimit("AUTH_RATE", RateLimit{Enabled: true, Rate: 0.5, Burst: 5})
func LoadRateLimit(prefix string, def RateLimit) RateLimit {
	cfg := RateLimit{
		Enabled: GetEnvBool(prefix+"_ENABLED", def.Enabled),
		Rate:    GetEnvFloat(prefix+"_LIMIT", def.Rate),
		Burst:   GetEnvInt(prefix+"_BURST", def.Burst),
	}

	if cfg.Rate <= 0 {
		slog.Warn("invalid rate limit, using default",
			slog.String("key", prefix+"_LIMIT"),
			slog.Float64("value", cfg.Rate),
			slog.Float64("default", def.Rate))
		cfg.Rate = def.Rate
	}
	if cfg.Burst <= 0 {
		slog.Warn("invalid rate burst, using default",
			slog.String("key", prefix+"_BURST"),
			slog.Int("value", cfg.Burst),
			slog.Int("default", def.Burst))
		cfg.Burst = def.Burst
	}
	return cfg
}
