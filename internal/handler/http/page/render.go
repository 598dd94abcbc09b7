package page

import (
	"log/slog"
	"net/http"
	"strconv"

	"newspress/internal/handler/http/respond"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/observability/logging"
	artUC "newspress/internal/usecase/article"
)

// pageParam reads a 1-based page number from q; anything else is page 1.
// The upper bound is clamped when the list is shaped.
func pageParam(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// renderNotFound renders the not-found placeholder with the category bar.
func renderNotFound(w http.ResponseWriter, r *http.Request, svc *artUC.Service, v *view.Renderer, heading string) {
	v.Render(w, r, http.StatusNotFound, "notfound", view.Page{
		Title:      "Not found",
		Categories: svc.NavCategories(r.Context()),
		Data:       heading,
	})
}

// renderFailure renders the error page for a failed page load. The visitor
// only ever sees the API's user-safe message.
func renderFailure(w http.ResponseWriter, r *http.Request, v *view.Renderer, err error) {
	if r.Context().Err() != nil {
		return
	}
	code := respond.StatusFor(err)
	if code < http.StatusInternalServerError {
		code = http.StatusBadGateway
	}
	logging.WithRequestID(r.Context(), slog.Default()).Warn("page load failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err))
	v.Render(w, r, code, "error", view.Page{Title: "Unavailable", Data: api.UserMessage(err)})
}
