package page

import (
	"net/http"
	"net/url"

	"newspress/internal/handler/http/view"
	artUC "newspress/internal/usecase/article"
)

// HomeHandler renders the front page. Each rail pages independently through
// its own query parameter: hero, latest and popular.
type HomeHandler struct {
	Svc  *artUC.Service
	View *view.Renderer
}

type homeView struct {
	*artUC.HomePage
	Query url.Values
}

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	home, err := h.Svc.Home(r.Context(), artUC.HomeQuery{
		HeroPage:    pageParam(r, "hero"),
		LatestPage:  pageParam(r, "latest"),
		PopularPage: pageParam(r, "popular"),
	})
	if err != nil {
		renderFailure(w, r, h.View, err)
		return
	}

	h.View.Render(w, r, http.StatusOK, "home", view.Page{
		Categories: home.Categories,
		Data:       &homeView{HomePage: home, Query: r.URL.Query()},
	})
}
