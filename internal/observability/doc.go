// Package observability groups the portal's logging, metrics and tracing
// infrastructure.
//
// Subpackages:
//   - logging: slog setup and request-scoped loggers
//   - metrics: Prometheus metrics for upstream calls and dashboard totals
//   - tracing: OpenTelemetry server and client spans
//
// Example usage:
//
//	import (
//	    "newspress/internal/observability/logging"
//	    "newspress/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("portal started")
//
//	    metrics.RecordUpstreamCall("news", "list", metrics.OutcomeSuccess, elapsed)
//	}
package observability
