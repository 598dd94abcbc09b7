package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newspress/internal/pkg/config"
)

// Metrics instruments the refresher and its configuration load.
//
//   - worker_config_*: see config.ConfigMetrics
//   - worker_stats_refresh_duration_seconds
//   - worker_stats_refresh_last_success_timestamp
//
// Per-run success/failure counts live in portal_stats_refresh_total.
type Metrics struct {
	*config.ConfigMetrics

	RefreshDuration    prometheus.Histogram
	LastSuccessSeconds prometheus.Gauge
}

// NewMetrics registers the worker metrics with reg (nil = default registry).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ConfigMetrics: config.NewConfigMetrics("worker", reg),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_stats_refresh_duration_seconds",
			Help:    "Duration of a dashboard stats refresh",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccessSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_stats_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful stats refresh",
		}),
	}
}
