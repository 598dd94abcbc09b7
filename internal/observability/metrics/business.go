package metrics

import (
	"errors"
	"time"

	"newspress/internal/domain/entity"
)

// RecordUpstreamCall records one call to an upstream service.
func RecordUpstreamCall(resource, op, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(resource, op, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(resource, op).Observe(duration.Seconds())
}

// Outcome classifies an upstream error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, entity.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, entity.ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, entity.ErrRejected):
		return OutcomeRejected
	default:
		return OutcomeTransport
	}
}

// Form submission results.
const (
	FormSuccess   = "success"
	FormInvalid   = "invalid"
	FormForbidden = "forbidden"
	FormFailure   = "failure"
)

// RecordFormSubmission records one form post, e.g. ("comment_create", FormSuccess).
func RecordFormSubmission(form, result string) {
	FormSubmissionsTotal.WithLabelValues(form, result).Inc()
}

// RecordImageUpload records the result of an image host upload.
// Result should be one of "success", "failure" or "throttled".
func RecordImageUpload(result string) {
	ImageUploadsTotal.WithLabelValues(result).Inc()
}

// UpdateStats sets the dashboard gauges from a stats summary.
// These gauges should be updated periodically to reflect the API state.
func UpdateStats(s entity.Stats) {
	NewsTotal.Set(float64(s.TotalNews))
	UsersTotal.Set(float64(s.TotalUsers))
	CommentsTotal.Set(float64(s.TotalComments))
	CategoriesTotal.Set(float64(s.TotalCategories))
}

// RecordStatsRefresh records the result of a stats refresh run.
func RecordStatsRefresh(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	StatsRefreshTotal.WithLabelValues(result).Inc()
}
