// Package category serves the category list as JSON for client-side filters.
package category

import (
	"context"
	"net/http"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/respond"
)

// Lister is the read side of the categories resource.
type Lister interface {
	List(ctx context.Context) ([]entity.Category, error)
}

type ListHandler struct{ Repo Lister }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context())
	if err != nil {
		respond.SafeError(w, respond.StatusFor(err), err)
		return
	}
	out := make([]DTO, 0, len(list))
	for i := range list {
		c := &list[i]
		out = append(out, DTO{
			ID: c.ID, Name: c.Name, Slug: c.CanonicalSlug(),
			CreatedAt: c.CreatedAt,
		})
	}
	respond.JSON(w, http.StatusOK, out)
}

// Register registers the category endpoint with the given mux.
func Register(mux *http.ServeMux, repo Lister) {
	mux.Handle("GET /api/categories", ListHandler{repo})
}
