package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "newspress"

// tracer is resolved per call so a provider installed after start-up,
// including the one from Setup, takes effect.
func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Setup installs a tracer provider and the W3C trace context propagator.
// Spans are sampled when the caller's traceparent says so, or at ratio for
// root spans. No exporter is attached; trace IDs still reach the response
// headers and the outbound calls. The returned function flushes the provider.
func Setup(ratio float64, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}

// StartClientSpan starts a client span for an outbound HTTP call.
func StartClientSpan(ctx context.Context, name, method, path string) (context.Context, trace.Span) {
	return tracer().Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
}

// InjectHeaders writes the trace context of ctx into outbound headers.
func InjectHeaders(ctx context.Context, h http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))
}

// EndClientSpan records the response status and error on span and ends it.
func EndClientSpan(span trace.Span, status int, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
