// Package metrics provides the Prometheus metrics the portal records outside
// of the HTTP middleware.
//
// This package centralizes:
//   - Upstream call metrics per resource, operation and outcome
//   - Dashboard totals refreshed by the stats worker
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "newspress/internal/observability/metrics"
//
//	func listNews(ctx context.Context) {
//	    start := time.Now()
//	    // ... call the news API ...
//	    metrics.RecordUpstreamCall("news", "list", metrics.OutcomeSuccess, time.Since(start))
//	}
package metrics
