// Package dashboard serves the two dashboard subtrees: the member profile
// under /dashboard and the administrator screens under /admin-dashboard.
// Which subtree a visitor may reach is decided by the auth gate before any
// handler here runs.
package dashboard

import (
	"net/http"

	"newspress/internal/handler/http/view"
	"newspress/internal/infra/flash"
	dashUC "newspress/internal/usecase/dashboard"
)

// Register registers the dashboard pages with the given mux.
func Register(mux *http.ServeMux, svc *dashUC.Service, v *view.Renderer, store *flash.Store) {
	h := handlers{Svc: svc, View: v, Flash: store}

	// member subtree
	mux.HandleFunc("GET /dashboard", h.profile)

	// admin subtree
	mux.HandleFunc("GET /admin-dashboard", h.overview)

	mux.HandleFunc("GET /admin-dashboard/news", h.newsList)
	mux.HandleFunc("GET /admin-dashboard/news/create", h.newsCreateForm)
	mux.HandleFunc("POST /admin-dashboard/news/create", h.newsCreate)
	mux.HandleFunc("GET /admin-dashboard/news/edit/{id}", h.newsEditForm)
	mux.HandleFunc("POST /admin-dashboard/news/edit/{id}", h.newsUpdate)
	mux.HandleFunc("POST /admin-dashboard/news/{id}/delete", h.newsDelete)

	mux.HandleFunc("GET /admin-dashboard/categories", h.categoryList)
	mux.HandleFunc("POST /admin-dashboard/categories", h.categoryCreate)
	mux.HandleFunc("POST /admin-dashboard/categories/{id}", h.categoryRename)
	mux.HandleFunc("POST /admin-dashboard/categories/{id}/delete", h.categoryDelete)

	mux.HandleFunc("GET /admin-dashboard/users", h.userList)
	mux.HandleFunc("POST /admin-dashboard/users/{id}/role", h.userRole)

	mux.HandleFunc("GET /admin-dashboard/comments", h.commentList)
	mux.HandleFunc("POST /admin-dashboard/comments/{id}/delete", h.commentDelete)
}
