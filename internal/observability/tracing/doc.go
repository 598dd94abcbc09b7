// Package tracing provides OpenTelemetry tracing integration.
//
// Incoming requests get a server span from Middleware. Calls to the news API,
// the auth service and the image host start client spans with StartClientSpan
// and carry W3C trace context through InjectHeaders.
//
// Example usage:
//
//	import "newspress/internal/observability/tracing"
//
//	func (c *Client) do(ctx context.Context, req *http.Request) {
//	    ctx, span := tracing.StartClientSpan(ctx, "news.list", req.Method, req.URL.Path)
//	    defer span.End()
//	    tracing.InjectHeaders(ctx, req.Header)
//	    // ... send request ...
//	}
package tracing
