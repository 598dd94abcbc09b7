package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"newspress/internal/handler/http/requestid"
	"newspress/internal/handler/http/respond"
	"newspress/internal/handler/http/responsewriter"
	"newspress/internal/infra/api"

	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It captures request details, response status, size, and processing duration.
// The middleware also extracts and logs the trace ID from the OpenTelemetry span context
// to enable correlation between logs and distributed traces.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap ResponseWriter to record status code and size
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			reqID := requestid.FromContext(r.Context())
			span := trace.SpanFromContext(r.Context())
			traceID := span.SpanContext().TraceID().String()
			duration := time.Since(start)

			level := slog.LevelInfo
			if r.Context().Err() != nil {
				// クライアントが切断した
				level = slog.LevelDebug
			}
			logger.Log(r.Context(), level, "request completed",
				slog.String("request_id", reqID),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", respond.SanitizeString(r.URL.RawQuery)),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that catches panics and logs them with structured logging.
// It prevents the server from crashing and answers 500: JSON under /api/,
// a plain error page elsewhere.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			w := responsewriter.Wrap(rw)
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					reqID := requestid.FromContext(r.Context())
					stack := string(debug.Stack())

					switch {
					case w.Written():
						// 途中まで送信済み: 何も追記できない
					case IsAPIPath(r.URL.Path):
						respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
					default:
						http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
					}

					logger.Error("panic recovered",
						slog.String("request_id", reqID),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", stack),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that limits the size of request bodies to prevent DoS attacks.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ForwardCookies stores the visitor's Cookie header in the request context so
// every API call made while serving the request carries the same credentials.
func ForwardCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie := r.Header.Get("Cookie"); cookie != "" {
			r = r.WithContext(api.WithCookies(r.Context(), cookie))
		}
		next.ServeHTTP(w, r)
	})
}

// IsAPIPath reports whether path belongs to the JSON surface.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
