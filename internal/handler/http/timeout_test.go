package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeout_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	rec := httptest.NewRecorder()
	Timeout(1*time.Second)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "success" {
		t.Errorf("expected body 'success', got '%s'", rec.Body.String())
	}
}

func TestTimeout_Timeout(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		bodyPart    string
	}{
		{name: "page", path: "/news/slow", contentType: "text/plain", bodyPart: "taking too long"},
		{name: "api", path: "/api/news", contentType: "application/json", bodyPart: "request timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 上流の応答待ちを模擬: コンテキストのキャンセルまでブロック
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("should not reach here"))
			})

			rec := httptest.NewRecorder()
			Timeout(50*time.Millisecond)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusGatewayTimeout {
				t.Errorf("expected status 504, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.bodyPart) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.bodyPart)
			}
		})
	}
}

func TestTimeout_ContextCanceled(t *testing.T) {
	canceled := make(chan error, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		canceled <- r.Context().Err()
	})

	Timeout(20*time.Millisecond)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	select {
	case err := <-canceled:
		if err != context.DeadlineExceeded {
			t.Errorf("handler context error = %v, want DeadlineExceeded", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler context was not canceled")
	}
}

func TestTimeout_HandlerHeadersReachClient(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "flash", Value: "saved"})
		http.Redirect(w, r, "/admin-dashboard/news", http.StatusSeeOther)
	})

	rec := httptest.NewRecorder()
	Timeout(time.Second)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin-dashboard/news/create", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin-dashboard/news" {
		t.Errorf("Location = %q", got)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("Set-Cookie lost")
	}
}

func TestTimeout_LateHeadersDiscarded(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		<-r.Context().Done()
		<-release
		w.Header().Set("X-Late", "1")
		if _, err := w.Write([]byte("late")); err != http.ErrHandlerTimeout {
			t.Errorf("late write error = %v", err)
		}
	})

	rec := httptest.NewRecorder()
	Timeout(20*time.Millisecond)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	close(release)
	<-finished

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
	if rec.Header().Get("X-Late") != "" {
		t.Error("late header leaked into the response")
	}
}

func TestTimeout_PanicPropagates(t *testing.T) {
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	defer func() {
		if p := recover(); p != "boom" {
			t.Errorf("recovered %v, want boom", p)
		}
	}()
	Timeout(time.Second)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Fatal("panic did not reach the caller")
}
