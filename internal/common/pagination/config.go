// Package pagination splits already-fetched lists into fixed-size pages.
// Page numbers are 1-based and always clamped into range, so every request
// yields a valid slice.
package pagination

import "newspress/pkg/config"

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page for list endpoints
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=12, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 12,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE
//   - PAGINATION_DEFAULT_LIMIT
//   - PAGINATION_MAX_LIMIT
//
// Invalid values fall back to DefaultConfig().
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultPage < 1 {
		cfg.DefaultPage = def.DefaultPage
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(def.DefaultLimit, cfg.MaxLimit)
	}
	return cfg
}
