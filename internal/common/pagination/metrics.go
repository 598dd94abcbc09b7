package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesServedTotal counts shaped pages by list and page bucket.
	// Labels: list (home_latest, category, related, ...), page_range (1-10, 11-50, ...)
	PagesServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_list_pages_served_total",
			Help: "Total number of shaped list pages served",
		},
		[]string{"list", "page_range"},
	)

	// PageClampsTotal counts requests whose page was out of range and clamped.
	PageClampsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_list_page_clamps_total",
			Help: "Total number of out-of-range page requests that were clamped",
		},
		[]string{"list"},
	)

	// FilteredItems tracks how many items survive filtering per list.
	FilteredItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_list_filtered_items",
			Help:    "Number of items remaining after filtering",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"list"},
	)
)

// RecordPage records one served page of the named list.
func RecordPage(list string, requested int, meta Metadata) {
	PagesServedTotal.WithLabelValues(list, getPageRangeBucket(meta.Page)).Inc()
	FilteredItems.WithLabelValues(list).Observe(float64(meta.Total))
	if requested != meta.Page {
		PageClampsTotal.WithLabelValues(list).Inc()
	}
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
