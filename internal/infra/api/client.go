// Package api is the fetch adapter for the remote news REST API. Every call
// goes through one circuit breaker, carries the visitor's cookies and returns
// either a value or a classified *Error. Nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newspress/internal/observability/metrics"
	"newspress/internal/observability/tracing"
	"newspress/internal/resilience/circuitbreaker"
)

// maxBodyBytes bounds how much of an API response is read.
const maxBodyBytes = 8 << 20

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://newspress.example.com/api".
	BaseURL string

	// Timeout bounds each call. Zero means 10s.
	Timeout time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client

	// Breaker overrides circuitbreaker.NewsAPIConfig.
	Breaker *circuitbreaker.Config
}

// Client talks to the news API.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a Client. IsSuccessful is always set so that only
// transport failures count against the circuit.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	cbCfg := circuitbreaker.NewsAPIConfig()
	if cfg.Breaker != nil {
		cbCfg = *cfg.Breaker
	}
	cbCfg.IsSuccessful = func(err error) bool { return !CountsAgainstCircuit(err) }

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		breaker: circuitbreaker.New(cbCfg),
	}
}

type cookieKey struct{}

// WithCookies stores the visitor's Cookie header so calls made with ctx
// forward it to the API.
func WithCookies(ctx context.Context, cookieHeader string) context.Context {
	if cookieHeader == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey{}, cookieHeader)
}

// CookiesFrom returns the Cookie header stored by WithCookies.
func CookiesFrom(ctx context.Context) string {
	s, _ := ctx.Value(cookieKey{}).(string)
	return s
}

// News returns the news resource.
func (c *Client) News() *News { return &News{c: c} }

// Categories returns the categories resource.
func (c *Client) Categories() *Categories { return &Categories{c: c} }

// Comments returns the comments resource.
func (c *Client) Comments() *Comments { return &Comments{c: c} }

// Users returns the users resource.
func (c *Client) Users() *Users { return &Users{c: c} }

// Stats returns the stats resource.
func (c *Client) Stats() *Stats { return &Stats{c: c} }

// BreakerOpen reports whether calls are currently short-circuited.
func (c *Client) BreakerOpen() bool { return c.breaker.IsOpen() }

// Ping checks that the API answers. It lists categories, the cheapest public read.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.send(ctx, call{resource: "health", op: "ping", method: http.MethodGet, path: "/categories"})
	return err
}

// call describes one API request.
type call struct {
	resource string
	op       string
	method   string
	path     string
	body     any
}

func (r call) name() string { return r.resource + "." + r.op }

// envelope is the API's response wrapper. Success is nil for bare bodies.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// send performs r through the breaker and returns the envelope's data.
func (c *Client) send(ctx context.Context, r call) (json.RawMessage, error) {
	start := time.Now()
	ctx, span := tracing.StartClientSpan(ctx, "api."+r.name(), r.method, r.path)

	var (
		status int
		data   json.RawMessage
	)
	err := c.breaker.Do(func() error {
		var err error
		status, data, err = c.roundTrip(ctx, r)
		return err
	})
	if circuitbreaker.IsBreakerError(err) {
		err = &Error{Op: r.name(), Kind: KindTransport, Message: "news service unavailable", Err: err}
	}

	tracing.EndClientSpan(span, status, err)
	metrics.RecordUpstreamCall(r.resource, r.op, metrics.Outcome(err), time.Since(start))

	if err != nil {
		level := slog.LevelWarn
		if apiErr, ok := err.(*Error); ok && apiErr.Kind == KindNotFound {
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, "news api call failed",
			slog.String("resource", r.resource),
			slog.String("op", r.op),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return nil, err
	}
	return data, nil
}

func (c *Client) roundTrip(ctx context.Context, r call) (int, json.RawMessage, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s payload: %w", r.name(), err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s request: %w", r.name(), err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := CookiesFrom(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	tracing.InjectHeaders(ctx, req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &Error{Op: r.name(), Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, &Error{Op: r.name(), Kind: KindTransport, Status: resp.StatusCode, Message: "read response", Err: err}
	}

	env, decodeErr := decodeEnvelope(raw)
	kind, ok := KindForStatus(resp.StatusCode)
	if !ok {
		msg := env.message()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, nil, &Error{Op: r.name(), Kind: kind, Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return resp.StatusCode, nil, &Error{Op: r.name(), Kind: KindTransport, Status: resp.StatusCode, Message: "malformed response", Err: decodeErr}
	}
	if env.Success != nil && !*env.Success {
		msg := env.message()
		if msg == "" {
			msg = "request rejected"
		}
		return resp.StatusCode, nil, &Error{Op: r.name(), Kind: KindRejected, Status: resp.StatusCode, Message: msg}
	}
	return resp.StatusCode, env.Data, nil
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// decodeEnvelope accepts the {success, message, data} wrapper, a bare JSON
// array, a bare object without the wrapper, or an empty body.
func decodeEnvelope(raw []byte) (envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return envelope{}, nil
	}
	switch trimmed[0] {
	case '[':
		return envelope{Data: json.RawMessage(trimmed)}, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return envelope{}, err
		}
		if env.Success == nil && env.Data == nil {
			env.Data = json.RawMessage(trimmed)
		}
		return env, nil
	default:
		return envelope{}, fmt.Errorf("unexpected body starting with %q", trimmed[0])
	}
}

// decode unmarshals data into v. A missing or null payload leaves v untouched
// and reports false.
func decode(op string, data json.RawMessage, v any) (bool, error) {
	if len(data) == 0 || string(data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &Error{Op: op, Kind: KindTransport, Message: "malformed response", Err: err}
	}
	return true, nil
}
