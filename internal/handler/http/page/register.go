// Package page serves the public HTML pages: the home rails, category
// listings, the article detail view with its comment thread, and the
// not-found page.
package page

import (
	"net/http"

	"newspress/internal/handler/http/view"
	"newspress/internal/infra/flash"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

// Register registers the public pages with the given mux.
// Comment writes follow post/redirect/get; the outcome travels as a flash notice.
// The catch-all "/" renders the not-found page for every unknown path.
func Register(mux *http.ServeMux, svc *artUC.Service, comments *commentUC.Service, v *view.Renderer, store *flash.Store) {
	mux.Handle("GET /{$}", HomeHandler{Svc: svc, View: v})
	mux.Handle("GET /category/{slug}", CategoryHandler{Svc: svc, View: v})
	mux.Handle("GET /news/{slug}", DetailHandler{Svc: svc, View: v})

	cw := commentWriter{Articles: svc, Comments: comments, View: v, Flash: store}
	mux.Handle("POST /news/{slug}/comments", CreateCommentHandler{cw})
	mux.Handle("POST /news/{slug}/comments/{id}", UpdateCommentHandler{cw})
	mux.Handle("POST /news/{slug}/comments/{id}/delete", DeleteCommentHandler{cw})

	mux.Handle("/", NotFoundHandler{Svc: svc, View: v})
}
