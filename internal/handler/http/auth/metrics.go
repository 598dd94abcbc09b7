package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gateDecisionsTotal counts gate outcomes by zone, role and outcome.
	gateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_gate_decisions_total",
			Help: "Role gate decisions by zone, role and outcome",
		},
		[]string{"zone", "role", "outcome"}, // outcome: render | redirect
	)

	// sessionLookupDuration tracks session resolution against the auth service.
	sessionLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_session_lookup_duration_seconds",
			Help:    "Session resolution duration by result",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"result"}, // result: session | anonymous | error
	)

	// authAttemptsTotal counts sign-in, sign-up and sign-out attempts.
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_attempts_total",
			Help: "Authentication form submissions by action and result",
		},
		[]string{"action", "result"}, // result: success | failure
	)
)

// RecordGateDecision records one gate decision.
func RecordGateDecision(zone Zone, role string, d Decision) {
	outcome := "render"
	if d.Redirect != "" {
		outcome = "redirect"
	}
	if role == "" {
		role = "anonymous"
	}
	gateDecisionsTotal.WithLabelValues(zone.String(), role, outcome).Inc()
}

// RecordSessionLookup records session resolution duration.
func RecordSessionLookup(result string, durationSeconds float64) {
	sessionLookupDuration.WithLabelValues(result).Observe(durationSeconds)
}

// RecordAuthAttempt records an authentication form submission.
func RecordAuthAttempt(action, result string) {
	authAttemptsTotal.WithLabelValues(action, result).Inc()
}
