package article

import (
	"log/slog"
	"net/http"
	"time"

	"newspress/internal/common/pagination"
	"newspress/internal/handler/http/requestid"
	"newspress/internal/handler/http/respond"
	"newspress/internal/observability/logging"
	artUC "newspress/internal/usecase/article"
	"newspress/internal/usecase/listing"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 記事一覧取得
// Accepts the same filters as the category page (category, q, date, sort)
// plus page and limit. The page is clamped to the available range.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithFields(logging.WithRequestID(ctx, h.logger()), map[string]any{
		"handler": "api_news_list",
	})

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err == nil {
		params = params.WithDefaults(h.PaginationCfg)
		err = params.Validate(h.PaginationCfg)
	}
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	crit := listing.ParseCriteria(r.URL.Query())
	result, err := h.Svc.Search(ctx, crit, params.Page, params.Limit)
	if err != nil {
		logger.Error("Failed to list news",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit)
		fail(w, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Items))
	for i := range result.Items {
		dtos = append(dtos, toDTO(&result.Items[i], false))
	}

	pagination.LogPage(logger, reqID, "api_news", params.Page, result.Meta, len(dtos))
	logger.Debug("News list served",
		"filtered", crit.IsFiltered(),
		"duration_ms", time.Since(startTime).Milliseconds())

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Meta))
}

func (h ListHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
