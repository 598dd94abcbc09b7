package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"newspress/internal/domain/entity"
	"newspress/internal/observability/metrics"
)

// StatsSource supplies the dashboard summary.
type StatsSource interface {
	Summary(ctx context.Context) (*entity.Stats, error)
}

// StatsRefresher copies the API's dashboard summary into the stat gauges on a
// cron schedule. A failed run is logged and left for the next tick. Pages
// never read the gauges; the admin dashboard always fetches live numbers.
type StatsRefresher struct {
	source  StatsSource
	cfg     Config
	metrics *Metrics
	logger  *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewStatsRefresher creates a refresher. metrics may be nil.
func NewStatsRefresher(source StatsSource, cfg Config, m *Metrics, logger *slog.Logger) *StatsRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsRefresher{source: source, cfg: cfg, metrics: m, logger: logger}
}

// Start schedules the refresh and runs it once immediately so the gauges are
// populated before the first tick. It returns when ctx is done, after the
// in-flight run (if any) has finished.
func (r *StatsRefresher) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(r.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.cfg.Schedule, func() { r.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule stats refresh: %w", err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	r.logger.Info("stats refresher started",
		slog.String("schedule", r.cfg.Schedule),
		slog.String("timezone", r.cfg.Timezone))

	c.Start()
	r.RunOnce(ctx)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("stats refresher stopped")
	return nil
}

// RunOnce performs one refresh and reports whether it succeeded.
func (r *StatsRefresher) RunOnce(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	stats, err := r.source.Summary(ctx)
	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.RefreshDuration.Observe(elapsed.Seconds())
	}

	if err != nil || stats == nil {
		metrics.RecordStatsRefresh(false)
		r.logger.Warn("stats refresh failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return false
	}

	metrics.UpdateStats(*stats)
	metrics.RecordStatsRefresh(true)
	if r.metrics != nil {
		r.metrics.LastSuccessSeconds.SetToCurrentTime()
	}
	r.logger.Debug("stats refreshed",
		slog.Int64("news", stats.TotalNews),
		slog.Int64("users", stats.TotalUsers),
		slog.Int64("comments", stats.TotalComments),
		slog.Duration("duration", elapsed))
	return true
}

// Entries returns the number of scheduled jobs; zero before Start.
func (r *StatsRefresher) Entries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron == nil {
		return 0
	}
	return len(r.cron.Entries())
}
