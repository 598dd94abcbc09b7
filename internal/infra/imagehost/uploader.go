// Package imagehost uploads images submitted with the registration and news
// forms to imgbb and returns the hosted URL.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"newspress/internal/infra/api"
	"newspress/internal/observability/metrics"
	"newspress/internal/observability/tracing"
	"newspress/internal/resilience/circuitbreaker"
)

// ErrUploadDisabled is returned when no API key is configured.
var ErrUploadDisabled = errors.New("image uploads are disabled")

// MaxImageBytes is the largest image accepted (imgbb's own limit is 32MB).
const MaxImageBytes = 8 << 20

// Config configures an Uploader.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// Rate and Burst bound uploads per second across the process.
	Rate       float64
	Burst      int
	HTTPClient *http.Client
	Breaker    *circuitbreaker.Config
}

// Uploader posts images to the host.
type Uploader struct {
	key      string
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *circuitbreaker.CircuitBreaker
}

// New creates an Uploader. An empty APIKey yields an Uploader whose Upload
// always returns ErrUploadDisabled.
func New(cfg Config) *Uploader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	r, burst := cfg.Rate, cfg.Burst
	if r <= 0 {
		r = 1
	}
	if burst <= 0 {
		burst = 3
	}
	cbCfg := circuitbreaker.ImageHostConfig()
	if cfg.Breaker != nil {
		cbCfg = *cfg.Breaker
	}
	cbCfg.IsSuccessful = func(err error) bool { return !api.CountsAgainstCircuit(err) }

	return &Uploader{
		key:      cfg.APIKey,
		endpoint: cfg.Endpoint,
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Limit(r), burst),
		breaker:  circuitbreaker.New(cbCfg),
	}
}

// Enabled reports whether uploads are configured.
func (u *Uploader) Enabled() bool {
	return u != nil && u.key != ""
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the image read from r and returns its hosted URL. Uploads wait
// for the token bucket, bounded by ctx.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !u.Enabled() {
		metrics.RecordImageUpload("disabled")
		return "", ErrUploadDisabled
	}
	if err := u.limiter.Wait(ctx); err != nil {
		metrics.RecordImageUpload("throttled")
		return "", &api.Error{Op: "imagehost.upload", Kind: api.KindRejected, Message: "Too many uploads, please try again shortly", Err: err}
	}

	body, contentType, err := multipartBody(filename, r)
	if err != nil {
		metrics.RecordImageUpload("rejected")
		return "", err
	}

	start := time.Now()
	ctx, span := tracing.StartClientSpan(ctx, "imagehost.upload", http.MethodPost, "/upload")
	var (
		hosted string
		status int
	)
	err = u.breaker.Do(func() error {
		var err error
		hosted, status, err = u.post(ctx, body, contentType)
		return err
	})
	if circuitbreaker.IsBreakerError(err) {
		err = &api.Error{Op: "imagehost.upload", Kind: api.KindTransport, Message: "image host unavailable", Err: err}
	}
	tracing.EndClientSpan(span, status, err)
	metrics.RecordUpstreamCall("imagehost", "upload", metrics.Outcome(err), time.Since(start))

	if err != nil {
		result := "error"
		if !api.CountsAgainstCircuit(err) {
			result = "rejected"
		}
		metrics.RecordImageUpload(result)
		slog.WarnContext(ctx, "image upload failed",
			slog.String("filename", filename),
			slog.Int("status", status),
			slog.Any("error", err))
		return "", err
	}
	metrics.RecordImageUpload("success")
	return hosted, nil
}

func (u *Uploader) post(ctx context.Context, body []byte, contentType string) (string, int, error) {
	const op = "imagehost.upload"
	endpoint, err := url.Parse(u.endpoint)
	if err != nil {
		return "", 0, fmt.Errorf("parse image host endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", u.key)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create upload request: %w", redact(err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := u.http.Do(req)
	if err != nil {
		return "", 0, &api.Error{Op: op, Kind: api.KindTransport, Message: "request failed", Err: redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", resp.StatusCode, &api.Error{Op: op, Kind: api.KindTransport, Status: resp.StatusCode, Message: "read response", Err: err}
	}

	var out uploadResponse
	decodeErr := json.Unmarshal(raw, &out)

	if kind, ok := api.KindForStatus(resp.StatusCode); !ok {
		msg := out.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", resp.StatusCode, &api.Error{Op: op, Kind: kind, Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", resp.StatusCode, &api.Error{Op: op, Kind: api.KindTransport, Status: resp.StatusCode, Message: "malformed response", Err: decodeErr}
	}
	if !out.Success || out.Data.URL == "" {
		msg := out.Error.Message
		if msg == "" {
			msg = "Image upload failed"
		}
		return "", resp.StatusCode, &api.Error{Op: op, Kind: api.KindRejected, Status: resp.StatusCode, Message: msg}
	}
	return out.Data.URL, resp.StatusCode, nil
}

func multipartBody(filename string, r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", &api.Error{Op: "imagehost.upload", Kind: api.KindRejected, Message: "Image is empty"}
	}
	if len(data) > MaxImageBytes {
		return nil, "", &api.Error{Op: "imagehost.upload", Kind: api.KindRejected, Message: "Image is too large"}
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return nil, "", &api.Error{Op: "imagehost.upload", Kind: api.KindRejected, Message: "File is not an image"}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" {
		name = "image"
	}
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// redact masks the API key in the URL a *url.Error carries.
func redact(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	if u, perr := url.Parse(uerr.URL); perr == nil && u.Query().Has("key") {
		q := u.Query()
		q.Set("key", "****")
		u.RawQuery = q.Encode()
		uerr.URL = u.String()
	}
	return err
}
