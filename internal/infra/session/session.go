// Package session talks to the auth service: it resolves the visitor's session
// from their cookies and performs sign-in, sign-up and sign-out, relaying the
// Set-Cookie headers the service issues.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newspress/internal/domain/entity"
	"newspress/internal/infra/api"
	"newspress/internal/observability/metrics"
	"newspress/internal/observability/tracing"
	"newspress/internal/resilience/circuitbreaker"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the auth root, e.g. "https://newspress.example.com/api/auth".
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Breaker    *circuitbreaker.Config
}

// Client is the auth service client.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a Client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	cbCfg := circuitbreaker.AuthServiceConfig()
	if cfg.Breaker != nil {
		cbCfg = *cfg.Breaker
	}
	cbCfg.IsSuccessful = func(err error) bool { return !api.CountsAgainstCircuit(err) }

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		breaker: circuitbreaker.New(cbCfg),
	}
}

// Result is the outcome of a sign-in, sign-up or sign-out.
type Result struct {
	// Cookies are the Set-Cookie header values to relay to the browser.
	Cookies []string
	User    *entity.User
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func (d *userDTO) toEntity() *entity.User {
	if d == nil {
		return nil
	}
	u := &entity.User{ID: d.ID, Name: d.Name, Email: d.Email, Image: d.Image, Role: entity.ParseRole(d.Role)}
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		u.CreatedAt = t
	}
	return u
}

type sessionDTO struct {
	Session *struct {
		ExpiresAt string `json:"expiresAt"`
	} `json:"session"`
	User *userDTO `json:"user"`
}

// GetSession resolves the session carried by cookieHeader. A nil session
// with a nil error means the visitor is anonymous.
func (c *Client) GetSession(ctx context.Context, cookieHeader string) (*entity.Session, error) {
	if cookieHeader == "" {
		return nil, nil
	}
	req := request{op: "get_session", method: http.MethodGet, path: "/get-session", cookie: cookieHeader}

	var out sessionDTO
	_, _, err := c.send(ctx, req, &out)
	if errors.Is(err, entity.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if out.User == nil || out.User.ID == "" {
		return nil, nil
	}
	s := &entity.Session{User: *out.User.toEntity()}
	if out.Session != nil {
		if t, err := time.Parse(time.RFC3339Nano, out.Session.ExpiresAt); err == nil {
			s.ExpiresAt = t
		}
	}
	return s, nil
}

// SignIn exchanges credentials for a session cookie.
func (c *Client) SignIn(ctx context.Context, in entity.LoginInput) (*Result, error) {
	body := map[string]string{"email": strings.TrimSpace(in.Email), "password": in.Password}
	return c.authenticate(ctx, request{op: "sign_in", method: http.MethodPost, path: "/sign-in/email", body: body})
}

// SignUp registers an account. The service signs the new user in.
func (c *Client) SignUp(ctx context.Context, in entity.SignUpInput) (*Result, error) {
	body := map[string]string{
		"name":     strings.TrimSpace(in.Name),
		"email":    strings.TrimSpace(in.Email),
		"password": in.Password,
	}
	if in.Image != "" {
		body["image"] = in.Image
	}
	return c.authenticate(ctx, request{op: "sign_up", method: http.MethodPost, path: "/sign-up/email", body: body})
}

// SignOut ends the session carried by cookieHeader.
func (c *Client) SignOut(ctx context.Context, cookieHeader string) (*Result, error) {
	return c.authenticate(ctx, request{op: "sign_out", method: http.MethodPost, path: "/sign-out", body: struct{}{}, cookie: cookieHeader})
}

func (c *Client) authenticate(ctx context.Context, req request) (*Result, error) {
	var out struct {
		User *userDTO `json:"user"`
	}
	cookies, _, err := c.send(ctx, req, &out)
	if err != nil {
		return nil, err
	}
	return &Result{Cookies: cookies, User: out.User.toEntity()}, nil
}

type request struct {
	op     string
	method string
	path   string
	body   any
	cookie string
}

// send performs req through the breaker, decodes a 2xx body into out and
// returns the Set-Cookie values.
func (c *Client) send(ctx context.Context, req request, out any) ([]string, int, error) {
	start := time.Now()
	ctx, span := tracing.StartClientSpan(ctx, "auth."+req.op, req.method, req.path)

	var (
		cookies []string
		status  int
	)
	err := c.breaker.Do(func() error {
		var err error
		cookies, status, err = c.roundTrip(ctx, req, out)
		return err
	})
	if circuitbreaker.IsBreakerError(err) {
		err = &api.Error{Op: "auth." + req.op, Kind: api.KindTransport, Message: "auth service unavailable", Err: err}
	}

	tracing.EndClientSpan(span, status, err)
	metrics.RecordUpstreamCall("auth", req.op, metrics.Outcome(err), time.Since(start))
	if err != nil {
		level := slog.LevelInfo
		if api.CountsAgainstCircuit(err) {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "auth service call failed",
			slog.String("op", req.op),
			slog.Int("status", status),
			slog.Any("error", err))
	}
	return cookies, status, err
}

func (c *Client) roundTrip(ctx context.Context, req request, out any) ([]string, int, error) {
	op := "auth." + req.op
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal %s payload: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s request: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.cookie != "" {
		httpReq.Header.Set("Cookie", req.cookie)
	}
	tracing.InjectHeaders(ctx, httpReq.Header)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, &api.Error{Op: op, Kind: api.KindTransport, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, &api.Error{Op: op, Kind: api.KindTransport, Status: resp.StatusCode, Message: "read response", Err: err}
	}

	if kind, ok := api.KindForStatus(resp.StatusCode); !ok {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		// 認証情報の誤りはフォームの問題として扱う
		if req.op != "get_session" && kind == api.KindUnauthorized {
			kind = api.KindRejected
		}
		return nil, resp.StatusCode, &api.Error{Op: op, Kind: kind, Status: resp.StatusCode, Message: msg}
	}

	raw = bytes.TrimSpace(raw)
	if out != nil && len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, resp.StatusCode, &api.Error{Op: op, Kind: api.KindTransport, Status: resp.StatusCode, Message: "malformed response", Err: err}
		}
	}
	return resp.Header.Values("Set-Cookie"), resp.StatusCode, nil
}
