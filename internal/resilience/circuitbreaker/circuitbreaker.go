// Package circuitbreaker guards the portal's outbound calls with
// github.com/sony/gobreaker so an unreachable upstream fails fast instead of
// holding every page render for the full timeout.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels the breaker in logs and in portal_circuit_breaker_state.
	Name string

	// MaxRequests is the number of probes let through while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts periodically.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker once
	// MinRequests calls have been counted.
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful decides whether an error counts against the circuit.
	// nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// DefaultConfig is a general purpose configuration under the given name.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// NewsAPIConfig is for the remote news REST API. The portal renders nothing
// useful without it, so the open state is kept short.
func NewsAPIConfig() Config {
	cfg := DefaultConfig("news-api")
	cfg.Timeout = 15 * time.Second
	return cfg
}

// AuthServiceConfig is for the session service consulted on every request.
func AuthServiceConfig() Config {
	cfg := DefaultConfig("auth-service")
	cfg.Timeout = 15 * time.Second
	return cfg
}

// ImageHostConfig is for the image upload host. Uploads are rare and slow,
// so the breaker trips on fewer calls and probes one at a time.
func ImageHostConfig() Config {
	return Config{
		Name:             "image-host",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
}

var stateGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "portal_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"circuit"},
)

// CircuitBreaker wraps one gobreaker instance.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New creates a breaker and publishes its state as closed.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(float64(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	stateGauge.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Do runs fn through the breaker. While open it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Do(fn func() error) error {
	_, err := cb.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// IsOpen reports whether calls are currently being refused.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsBreakerError reports whether err was produced by the breaker itself
// (open state or too many half-open probes) rather than by the call.
func IsBreakerError(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
