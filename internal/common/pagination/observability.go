package pagination

import "log/slog"

// LogPage logs a shaped page at debug level.
func LogPage(logger *slog.Logger, requestID, list string, requested int, meta Metadata, returnedCount int) {
	logger.Debug("shaped list page",
		slog.String("request_id", requestID),
		slog.String("list", list),
		slog.Int("requested_page", requested),
		slog.Int("page", meta.Page),
		slog.Int("total_pages", meta.TotalPages),
		slog.Int("total", meta.Total),
		slog.Int("returned_count", returnedCount))
}
