// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeTransport    = "transport"
	OutcomeRejected     = "rejected"
	OutcomeNotFound     = "not_found"
	OutcomeUnauthorized = "unauthorized"
)

// Upstream metrics track calls to the news API, the auth service and the image host.
var (
	// UpstreamRequestsTotal counts upstream calls by resource, operation and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_upstream_requests_total",
			Help: "Total number of calls to upstream services",
		},
		[]string{"resource", "op", "outcome"},
	)

	// UpstreamRequestDuration measures upstream call latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_upstream_request_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "op"},
	)

	// FormSubmissionsTotal counts comment and dashboard form posts by form and result
	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_form_submissions_total",
			Help: "Total number of form submissions",
		},
		[]string{"form", "result"}, // result: success, invalid, forbidden, failure
	)

	// ImageUploadsTotal counts image host uploads by result
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_image_uploads_total",
			Help: "Total number of image uploads",
		},
		[]string{"result"}, // result: success, failure, throttled
	)
)

// Dashboard metrics mirror the stats summary of the news API.
var (
	// NewsTotal tracks the number of news articles reported by the API
	NewsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_news_total",
			Help: "Total number of news articles reported by the API",
		},
	)

	// UsersTotal tracks the number of registered users
	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_users_total",
			Help: "Total number of users reported by the API",
		},
	)

	// CommentsTotal tracks the number of comments
	CommentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_comments_total",
			Help: "Total number of comments reported by the API",
		},
	)

	// CategoriesTotal tracks the number of categories
	CategoriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_categories_total",
			Help: "Total number of categories reported by the API",
		},
	)

	// StatsRefreshTotal counts stats refresh runs by result
	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_stats_refresh_total",
			Help: "Total number of dashboard stats refresh runs",
		},
		[]string{"result"},
	)
)
