// Package http provides the HTTP middleware, health endpoints and metrics
// shared by the portal's page, form and JSON handlers.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newspress/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// CSPHealthInfo contains health information for CSP middleware.
type CSPHealthInfo struct {
	Enabled    bool `json:"enabled"`     // Whether CSP is enabled
	ReportOnly bool `json:"report_only"` // Whether CSP is in report-only mode
}

// UpstreamProbe is the part of the news API client the probes need.
type UpstreamProbe interface {
	Ping(ctx context.Context) error
	BreakerOpen() bool
}

// HealthHandler handles health check endpoint requests.
// The portal owns no state, so its health is the reachability of the news API.
type HealthHandler struct {
	Upstream UpstreamProbe
	Version  string

	// Image uploads are optional; reported for operators only.
	UploadsEnabled bool

	// CSP status (optional)
	CSPEnabled    bool
	CSPReportOnly bool
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK when healthy or degraded, 503 Service Unavailable when the
// API cannot be reached.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	upstream := h.checkUpstream(ctx)
	checks["news_api"] = upstream

	checks["image_uploads"] = CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"enabled": h.UploadsEnabled},
	}

	if h.CSPEnabled {
		checks["csp"] = h.checkCSP()
	}

	// "degraded" is a warning state, not a failure
	status := upstream.Status
	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// checkUpstream pings the news API. An open circuit is reported as degraded
// without a network call: pages still render their error states.
func (h *HealthHandler) checkUpstream(ctx context.Context) CheckStatus {
	if h.Upstream == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if h.Upstream.BreakerOpen() {
		return CheckStatus{
			Status:  "degraded",
			Message: "circuit breaker open",
			Details: map[string]any{"circuit_breaker": "open"},
		}
	}

	start := time.Now()
	if err := h.Upstream.Ping(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: respond.SanitizeError(err),
		}
	}
	return CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"circuit_breaker": "closed",
			"latency_ms":      time.Since(start).Milliseconds(),
		},
	}
}

// checkCSP checks the health of CSP middleware.
// It reports the configuration status of Content Security Policy.
func (h *HealthHandler) checkCSP() CheckStatus {
	cspInfo := CSPHealthInfo{
		Enabled:    h.CSPEnabled,
		ReportOnly: h.CSPReportOnly,
	}

	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"config": cspInfo},
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// It reports ready while the news API circuit is closed and the API answers.
type ReadyHandler struct {
	Upstream UpstreamProbe
}

// ServeHTTP performs readiness checks and returns 200 OK if ready,
// or 503 Service Unavailable otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Upstream == nil {
		http.Error(w, "news api not configured", http.StatusServiceUnavailable)
		return
	}
	if h.Upstream.BreakerOpen() {
		http.Error(w, "news api circuit open", http.StatusServiceUnavailable)
		return
	}
	if err := h.Upstream.Ping(ctx); err != nil {
		http.Error(w, "news api not ready: "+respond.SanitizeError(err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
