package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace id back to the browser for support reports.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any W3C
// traceparent the caller sent. Spans are named after the route template
// (GET /news/:slug) so slugs never leak into span names; the raw path is kept
// as an attribute. 5xx responses mark the span as failed.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		route := pathutil.NormalizePath(r.URL.Path)

		ctx, span := tracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.path", r.URL.Path),
			),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
