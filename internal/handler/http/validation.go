package http

import (
	"net/http"
)

// Input limits enforced before a request reaches a handler.
const (
	MaxCookieHeaderBytes = 8 << 10
	MaxPathBytes         = 2 << 10
)

// InputValidation returns middleware that validates and limits request inputs.
// It enforces limits on:
// - Cookie header size (it is forwarded to the API and the auth service)
// - URI path length
//
// Oversized requests are refused before any upstream call is made.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Cookie")) > MaxCookieHeaderBytes {
				reject(w, r, http.StatusRequestHeaderFieldsTooLarge, "cookie header too large")
				return
			}

			// Path length limit keeps URLs and upstream keys reasonable
			if len(r.URL.Path) > MaxPathBytes {
				reject(w, r, http.StatusRequestURITooLong, "URI too long")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsAPIPath(r.URL.Path) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
		return
	}
	http.Error(w, msg, code)
}
