package auth

import "strings"

// SessionlessEndpoints are served without asking the auth service who the
// visitor is.
//
// - /health, /ready, /live: orchestration probes
// - /metrics: Prometheus scraping
// - /static/: embedded assets
var SessionlessEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/static/",
}

// IsSessionless checks if path skips session resolution.
//
// Example:
//
//	IsSessionless("/health")          // true
//	IsSessionless("/health/detail")   // false
//	IsSessionless("/static/site.css") // true (prefix match)
//	IsSessionless("/dashboard")       // false
func IsSessionless(path string) bool {
	for _, endpoint := range SessionlessEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}
