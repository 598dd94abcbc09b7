package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP with a token bucket.
// The portal puts it in front of the sign-in and sign-up form posts.
type RateLimiter struct {
	limit       rate.Limit
	burst       int
	ipExtractor IPExtractor

	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per IP with the given burst.
//
// Example:
//
//	// one attempt every two seconds, five in a row
//	limiter := NewRateLimiter(0.5, 5, &RemoteAddrExtractor{})
func NewRateLimiter(perSecond float64, burst int, ipExtractor IPExtractor) *RateLimiter {
	if ipExtractor == nil {
		ipExtractor = &RemoteAddrExtractor{}
	}
	return &RateLimiter{
		limit:       rate.Limit(perSecond),
		burst:       burst,
		ipExtractor: ipExtractor,
		clients:     make(map[string]*client),
		now:         time.Now,
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
// Only unsafe methods are counted; GET renders of the same forms pass freely.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		ip, err := rl.ipExtractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter: IP extraction failed, using RemoteAddr fallback",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr),
			)
			ip = r.RemoteAddr
		}

		if ok, retryAfter := rl.allow(ip); !ok {
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
				slog.Float64("limit", float64(rl.limit)),
				slog.Int("burst", rl.burst),
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow takes a token for ip. When none is available it reports how long until one is.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// CleanupExpired forgets clients idle for longer than idle. Call it periodically
// to bound memory.
func (rl *RateLimiter) CleanupExpired(idle time.Duration) {
	cutoff := rl.now().Add(-idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}

	slog.Debug("rate limiter: cleanup completed",
		slog.Int("active_ips", len(rl.clients)),
	)
}
