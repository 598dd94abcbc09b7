package article

import (
	"errors"
	"net/http"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/respond"
	"newspress/internal/infra/api"
	artUC "newspress/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事詳細取得
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, ok := loadArticle(w, r, h.Svc)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a, true))
}

// loadArticle resolves the {slug} of r and writes the error response itself
// when the article cannot be served.
func loadArticle(w http.ResponseWriter, r *http.Request, svc *artUC.Service) (*entity.Article, bool) {
	slug, err := pathutil.ExtractSlug(r, "slug")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	a, err := svc.Get(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, artUC.ErrInvalidSlug):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			fail(w, err)
		}
		return nil, false
	}
	return a, true
}

// fail answers an upstream failure with its status and the message a visitor
// may see; the cause is only logged.
func fail(w http.ResponseWriter, err error) {
	respond.SafeErrorV2(w, 0, respond.NewAppError(respond.StatusFor(err), api.UserMessage(err), err))
}
