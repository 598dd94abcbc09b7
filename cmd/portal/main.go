package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"newspress/internal/common/pagination"
	"newspress/internal/config"
	hhttp "newspress/internal/handler/http"
	"newspress/internal/handler/http/account"
	harticle "newspress/internal/handler/http/article"
	hauth "newspress/internal/handler/http/auth"
	hcategory "newspress/internal/handler/http/category"
	"newspress/internal/handler/http/dashboard"
	"newspress/internal/handler/http/middleware"
	"newspress/internal/handler/http/page"
	"newspress/internal/handler/http/requestid"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/infra/flash"
	"newspress/internal/infra/imagehost"
	"newspress/internal/infra/session"
	"newspress/internal/infra/worker"
	"newspress/internal/observability/logging"
	"newspress/internal/observability/tracing"
	pkgconfig "newspress/internal/pkg/config"
	"newspress/pkg/security/csp"

	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
	dashUC "newspress/internal/usecase/dashboard"
)

// Request limits. The news form carries the largest upload.
const (
	maxRequestBody = dashboard.MaxImageBytes + 2<<20
	requestTimeout = 30 * time.Second
)

func main() {
	logger := logging.Setup()

	cfg := loadConfig(logger)
	shutdownTracing := tracing.Setup(cfg.TraceSampleRatio)

	components := setupServer(logger, cfg)
	runServer(logger, cfg, components)

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
}

// loadConfig reads the portal configuration and exits when a required
// setting is missing.
func loadConfig(logger *slog.Logger) *config.PortalConfig {
	loader := pkgconfig.NewLoader(logger, pkgconfig.NewConfigMetrics("portal", nil))
	cfg, err := config.Load(loader)
	loader.Done()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	AuthLimiter *middleware.RateLimiter
	Refresher   *worker.StatsRefresher
}

// setupServer builds the adapters, use cases and routes.
func setupServer(logger *slog.Logger, cfg *config.PortalConfig) *ServerComponents {
	client := api.NewClient(api.Config{BaseURL: cfg.APIURL, Timeout: cfg.UpstreamTimeout})
	sessions := session.NewClient(session.Config{BaseURL: cfg.AuthURL, Timeout: cfg.UpstreamTimeout})
	images := imagehost.New(imagehost.Config{APIKey: cfg.ImgbbAPIKey, Endpoint: cfg.ImgbbURL})
	if !images.Enabled() {
		logger.Warn("IMGBB_API_KEY not set, image uploads are disabled")
	}

	nav, err := config.LoadNavigation()
	if err != nil {
		logger.Error("failed to load navigation", slog.Any("error", err))
		os.Exit(1)
	}
	store := flash.NewStore(cfg.FlashSecret, true)
	renderer, err := view.New(store, nav)
	if err != nil {
		logger.Error("failed to parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	paginationCfg := pagination.LoadFromEnv()
	comments := &commentUC.Service{Repo: client.Comments()}
	articles := &artUC.Service{
		Articles:   client.News(),
		Categories: client.Categories(),
		Comments:   comments,
		Pagination: paginationCfg,
	}
	dash := &dashUC.Service{
		Articles:   client.News(),
		Categories: client.Categories(),
		Comments:   client.Comments(),
		Users:      client.Users(),
		Stats:      client.Stats(),
		Images:     images,
		Pagination: paginationCfg,
	}

	proxies, err := middleware.LoadTrustedProxies()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	var authLimiter *middleware.RateLimiter
	if cfg.AuthRate.Enabled {
		authLimiter = middleware.NewRateLimiter(cfg.AuthRate.Rate, cfg.AuthRate.Burst, middleware.NewIPExtractor(proxies))
		logger.Info("auth rate limiting enabled",
			slog.Float64("rate", cfg.AuthRate.Rate),
			slog.Int("burst", cfg.AuthRate.Burst))
	} else {
		logger.Warn("auth rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()

	// ヘルスチェックとメトリクス（セッション解決なし）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Upstream:       client,
		Version:        cfg.Version,
		UploadsEnabled: images.Enabled(),
		CSPEnabled:     cfg.CSPEnabled,
		CSPReportOnly:  cfg.CSPReportOnly,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Upstream: client})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /static/", view.Static())

	harticle.Register(mux, articles, comments, paginationCfg, logger)
	hcategory.Register(mux, client.Categories())
	account.Register(mux, sessions, images, renderer, store, authLimiter)
	dashboard.Register(mux, dash, renderer, store)
	page.Register(mux, articles, comments, renderer, store)

	workerMetrics := worker.NewMetrics(nil)
	refresher := worker.NewStatsRefresher(client.Stats(), worker.LoadConfigFromEnv(logger, workerMetrics), workerMetrics, logger)

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, sessions),
		AuthLimiter: authLimiter,
		Refresher:   refresher,
	}
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: Request ID → Recovery → Logging → Tracing → Metrics → CSP →
// Cross-origin → Body Limit → Input Validation → Timeout → Cookies → Gate
func applyMiddleware(logger *slog.Logger, cfg *config.PortalConfig, handler http.Handler, sessions hauth.SessionResolver) http.Handler {
	cspMiddleware := func(next http.Handler) http.Handler { return next }
	if cfg.CSPEnabled {
		cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
			Enabled:       true,
			DefaultPolicy: csp.PortalPolicy(),
			PathPolicies: map[string]*csp.CSPBuilder{
				"/api/": csp.StrictPolicy(),
			},
			ReportOnly: cfg.CSPReportOnly,
		})
		cspMiddleware = cspMW.Middleware()
		logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSPReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}

	// Rejects cross-site form posts using Sec-Fetch-Site and Origin.
	crossOrigin := http.NewCrossOriginProtection()

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hauth.Gate(sessions)(chain)
	chain = hhttp.ForwardCookies(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(maxRequestBody)(chain)
	chain = crossOrigin.Handler(chain)
	chain = cspMiddleware(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and the background jobs, and shuts both
// down on SIGINT or SIGTERM.
func runServer(logger *slog.Logger, cfg *config.PortalConfig, components *ServerComponents) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version),
			slog.String("api_url", cfg.APIURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return components.Refresher.Start(gctx)
	})
	if components.AuthLimiter != nil {
		g.Go(func() error {
			hhttp.StartRateLimitCleanup(gctx, components.AuthLimiter, hhttp.LoadCleanupConfigFromEnv(), "auth")
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
