// Package config loads the portal's runtime configuration from the environment
// and its static navigation from the embedded YAML document.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"newspress/internal/pkg/config"
	pkgconfig "newspress/pkg/config"
)

// PortalConfig is everything cmd/portal needs to start.
type PortalConfig struct {
	Addr    string
	Version string

	// APIURL is the root of the remote news REST API.
	APIURL string
	// AuthURL is the root of the auth service (".../api/auth").
	AuthURL         string
	UpstreamTimeout time.Duration

	// ImgbbAPIKey enables image uploads when set.
	ImgbbAPIKey string
	ImgbbURL    string

	FlashSecret []byte

	CSPEnabled    bool
	CSPReportOnly bool

	AuthRate pkgconfig.RateLimit

	// TraceSampleRatio is the share of root requests that are traced.
	TraceSampleRatio float64
}

// Defaults for optional settings.
const (
	DefaultAddr            = ":8080"
	DefaultImgbbURL        = "https://api.imgbb.com/1/upload"
	DefaultUpstreamTimeout = 10 * time.Second

	DefaultTraceSampleRatio = 0.1
)

// DefaultAuthRate throttles login and registration posts per client IP.
var DefaultAuthRate = pkgconfig.RateLimit{Enabled: true, Rate: 0.2, Burst: 5}

// Load reads PortalConfig from the environment. Required settings that are
// missing or unsafe are reported together; optional settings fall back to
// their defaults through the loader.
func Load(loader *config.Loader) (*PortalConfig, error) {
	cfg := &PortalConfig{
		Addr:          pkgconfig.GetEnvString("PORTAL_ADDR", DefaultAddr),
		Version:       pkgconfig.GetEnvString("VERSION", "dev"),
		APIURL:        pkgconfig.GetEnvString("API_URL", ""),
		AuthURL:       pkgconfig.GetEnvString("AUTH_URL", ""),
		ImgbbAPIKey:   pkgconfig.GetEnvString("IMGBB_API_KEY", ""),
		ImgbbURL:      pkgconfig.GetEnvString("IMGBB_URL", DefaultImgbbURL),
		CSPEnabled:    loader.Bool("CSP_ENABLED", true),
		CSPReportOnly: loader.Bool("CSP_REPORT_ONLY", false),
		AuthRate:      pkgconfig.LoadRateLimit("AUTH_RATE", DefaultAuthRate),

		TraceSampleRatio: pkgconfig.GetEnvFloat("TRACE_SAMPLE_RATIO", DefaultTraceSampleRatio),
	}
	if cfg.TraceSampleRatio < 0 || cfg.TraceSampleRatio > 1 {
		cfg.TraceSampleRatio = DefaultTraceSampleRatio
	}
	cfg.UpstreamTimeout = loader.Duration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout, func(d time.Duration) error {
		return pkgconfig.ValidateDurationRange(d, 500*time.Millisecond, time.Minute)
	})

	var errs []error
	if err := validateBaseURL("API_URL", cfg.APIURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseURL("AUTH_URL", cfg.AuthURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseURL("IMGBB_URL", cfg.ImgbbURL); err != nil {
		errs = append(errs, err)
	}
	secret := pkgconfig.GetEnvString("FLASH_SECRET", "")
	if err := config.ValidateSecret(secret); err != nil {
		errs = append(errs, fmt.Errorf("FLASH_SECRET: %w", err))
	}
	cfg.FlashSecret = []byte(secret)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadsEnabled reports whether an image host key is configured.
func (c *PortalConfig) UploadsEnabled() bool {
	return c.ImgbbAPIKey != ""
}

func validateBaseURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return nil
}
