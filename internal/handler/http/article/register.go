package article

import (
	"log/slog"
	"net/http"

	"newspress/internal/common/pagination"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

// Register registers the news JSON endpoints with the given mux.
// They are public; the comment thread carries no viewer-specific state.
func Register(mux *http.ServeMux, svc *artUC.Service, comments *commentUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /api/news", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/news/{slug}", GetHandler{svc})
	mux.Handle("GET /api/news/{slug}/comments", CommentsHandler{Svc: svc, Comments: comments})
}
