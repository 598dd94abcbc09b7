package page

import (
	"errors"
	"net/http"
	"net/url"

	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/view"
	artUC "newspress/internal/usecase/article"
	"newspress/internal/usecase/listing"
)

// CategoryHandler renders the articles of one category with the visitor's
// search, date and sort filters taken from the query string.
type CategoryHandler struct {
	Svc  *artUC.Service
	View *view.Renderer
}

type categoryView struct {
	*artUC.CategoryPage
	Query url.Values
}

func (h CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.ExtractSlug(r, "slug")
	if err != nil {
		renderNotFound(w, r, h.Svc, h.View, "Category not found")
		return
	}

	q := r.URL.Query()
	cat, err := h.Svc.Category(r.Context(), slug, listing.ParseCriteria(q), pageParam(r, "page"))
	if err != nil {
		if errors.Is(err, artUC.ErrInvalidSlug) {
			renderNotFound(w, r, h.Svc, h.View, "Category not found")
			return
		}
		renderFailure(w, r, h.View, err)
		return
	}

	h.View.Render(w, r, http.StatusOK, "category", view.Page{
		Title:      cat.Heading,
		Categories: cat.Categories,
		Data:       &categoryView{CategoryPage: cat, Query: q},
	})
}
