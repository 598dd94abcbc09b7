package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// timeoutPageBody is shown when a page outlives its deadline. The layout is
// not rendered because the navigation itself comes from the upstream API.
const timeoutPageBody = "The news service is taking too long to respond. Please try again."

// Timeout bounds the whole request by d. The handler runs with a context
// that is canceled at the deadline, so pending upstream calls abort; if it
// has not started its response by then the client gets 504 and anything the
// handler writes afterwards is discarded. A panic in the handler is re-raised
// on the serving goroutine so Recover still sees it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{w: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
			case <-ctx.Done():
				tw.expire(r)
			}
		})
	}
}

// timeoutWriter gives the handler its own header map so the timeout path
// never races with it; headers are copied out on the first write.
type timeoutWriter struct {
	w      http.ResponseWriter
	header http.Header

	mu       sync.Mutex
	started  bool
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.started || tw.timedOut {
		return
	}
	tw.started = true
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.writeHeaderLocked(http.StatusOK)
	return tw.w.Write(b)
}

// expire answers 504 unless the handler already began its response.
func (tw *timeoutWriter) expire(r *http.Request) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.started {
		tw.timedOut = true
		return
	}
	tw.timedOut = true

	if IsAPIPath(r.URL.Path) {
		tw.w.Header().Set("Content-Type", "application/json")
		tw.w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = tw.w.Write([]byte(`{"error":"request timeout"}`))
		return
	}
	tw.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	tw.w.WriteHeader(http.StatusGatewayTimeout)
	_, _ = tw.w.Write([]byte(timeoutPageBody))
}
