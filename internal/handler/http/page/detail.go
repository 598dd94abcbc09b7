package page

import (
	"errors"
	"net/http"
	"net/url"

	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/view"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

// DetailHandler renders one article with related stories, the featured
// sidebar and the comment thread. The reply and edit forms open from the
// "reply" and "edit" query parameters.
type DetailHandler struct {
	Svc  *artUC.Service
	View *view.Renderer
}

type detailView struct {
	Page     *artUC.DetailPage
	Composer commentUC.Composer
	LoginURL string
	Query    url.Values
}

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.ExtractSlug(r, "slug")
	if err != nil {
		renderNotFound(w, r, h.Svc, h.View, "News not found")
		return
	}

	d, err := h.Svc.Detail(r.Context(), slug, pageParam(r, "more"))
	if err != nil {
		if errors.Is(err, artUC.ErrArticleNotFound) || errors.Is(err, artUC.ErrInvalidSlug) {
			renderNotFound(w, r, h.Svc, h.View, "News not found")
			return
		}
		renderFailure(w, r, h.View, err)
		return
	}

	q := r.URL.Query()
	composer, err := commentUC.ComposerFromQuery(q, auth.ViewerFrom(r.Context()), d.Thread)
	if errors.Is(err, commentUC.ErrAuthRequired) {
		http.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}

	h.View.Render(w, r, http.StatusOK, "detail", view.Page{
		Title:      d.Article.Title,
		Categories: h.Svc.NavCategories(r.Context()),
		Data: &detailView{
			Page:     d,
			Composer: composer,
			LoginURL: auth.LoginURL(r.URL.Path),
			Query:    q,
		},
	})
}

// NotFoundHandler renders the placeholder page for unknown paths.
type NotFoundHandler struct {
	Svc  *artUC.Service
	View *view.Renderer
}

func (h NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.Svc, h.View, "")
}
