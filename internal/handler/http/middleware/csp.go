package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"newspress/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied.
	Enabled bool

	// DefaultPolicy applies when no path-specific policy matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies; the longest matching prefix wins.
	// Example: map[string]*csp.CSPBuilder{
	//     "/api/": csp.StrictPolicy(),
	// }
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
// Policies are rendered once at construction.
type CSPMiddleware struct {
	enabled  bool
	header   string
	def      string
	prefixes []string
	values   map[string]string
}

// NewCSPMiddleware creates a new CSP middleware with the provided configuration.
//
// Example:
//
//	cspMiddleware := NewCSPMiddleware(CSPMiddlewareConfig{
//	    Enabled:       true,
//	    DefaultPolicy: csp.PortalPolicy(),
//	    PathPolicies: map[string]*csp.CSPBuilder{
//	        "/api/": csp.StrictPolicy(),
//	    },
//	})
//	handler = cspMiddleware.Middleware()(handler)
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{
		enabled: config.Enabled,
		header:  "Content-Security-Policy",
		values:  make(map[string]string, len(config.PathPolicies)),
	}
	if config.ReportOnly {
		m.header = "Content-Security-Policy-Report-Only"
	}
	if config.DefaultPolicy != nil {
		m.def = config.DefaultPolicy.Build()
	}
	for prefix, policy := range config.PathPolicies {
		if policy == nil {
			continue
		}
		m.prefixes = append(m.prefixes, prefix)
		m.values[prefix] = policy.Build()
	}
	return m
}

// Middleware returns an HTTP middleware handler that applies CSP headers.
// Disabled middleware and empty policies pass requests through untouched.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			if value := m.selectPolicy(r.URL.Path); value != "" {
				w.Header().Set(m.header, value)
				slog.Debug("CSP header applied",
					slog.String("path", r.URL.Path),
					slog.String("header", m.header),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the rendered policy for the longest matching prefix,
// falling back to the default policy.
func (m *CSPMiddleware) selectPolicy(path string) string {
	longest := ""
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
		}
	}
	if longest != "" {
		return m.values[longest]
	}
	return m.def
}
