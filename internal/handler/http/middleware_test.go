package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newspress/internal/handler/http/requestid"
	"newspress/internal/infra/api"
)

func TestLogging_RecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/category/sports?q=cup&api_key=secret123", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusTeapot)
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Errorf("bytes = %v", entry["bytes"])
	}
	// クエリ内の API キーはマスクされる
	if q, _ := entry["query"].(string); strings.Contains(q, "secret123") {
		t.Errorf("query was not sanitized: %q", q)
	}
}

func TestRecover(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
	}{
		{name: "page", path: "/news/boom", contentType: "text/plain"},
		{name: "api", path: "/api/news", contentType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic("boom")
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if strings.Contains(rec.Body.String(), "boom") {
				t.Error("panic value leaked to the client")
			}
		})
	}
}

func TestLimitRequestBody(t *testing.T) {
	handler := LimitRequestBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("0123456789")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("0123")))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestForwardCookies(t *testing.T) {
	var got string
	handler := ForwardCookies(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = api.CookiesFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "session_token=abc; theme=dark")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "session_token=abc; theme=dark" {
		t.Errorf("CookiesFrom() = %q", got)
	}
}

func TestIsAPIPath(t *testing.T) {
	tests := map[string]bool{
		"/api":              true,
		"/api/news":         true,
		"/api/news/x":       true,
		"/apiary":           false,
		"/news/api-changes": false,
		"/":                 false,
	}
	for path, want := range tests {
		if got := IsAPIPath(path); got != want {
			t.Errorf("IsAPIPath(%q) = %v, want %v", path, got, want)
		}
	}
}
