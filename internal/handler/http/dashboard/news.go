package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/observability/logging"
	"newspress/internal/observability/metrics"
	dashUC "newspress/internal/usecase/dashboard"
	"newspress/internal/usecase/listing"
)

// MaxImageBytes bounds the featured image accepted with the news form.
const MaxImageBytes = 10 << 20

const newsListPath = "/admin-dashboard/news"

type newsForm struct {
	ID             string
	Input          entity.ArticleInput
	Categories     []entity.Category
	UploadsEnabled bool
	Message        string
	Errors         entity.ValidationErrors
}

func (h handlers) newsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Svc.News(r.Context(), listing.ParseCriteria(q), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.View.Render(w, r, http.StatusOK, "admin/news", view.Page{
		Title: "All News",
		Data:  &listView[entity.Article]{Result: res, Query: q},
	})
}

func (h handlers) newsCreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderNewsForm(w, r, http.StatusOK, &newsForm{Input: entity.ArticleInput{Status: "PUBLISHED"}})
}

func (h handlers) newsEditForm(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.Article(r.Context(), pathID(r))
	if err != nil {
		if errors.Is(err, dashUC.ErrArticleNotFound) {
			h.Flash.Error(w, "News not found")
			http.Redirect(w, r, newsListPath, http.StatusSeeOther)
			return
		}
		h.fail(w, r, err)
		return
	}
	h.renderNewsForm(w, r, http.StatusOK, &newsForm{ID: a.ID, Input: inputFromArticle(a)})
}

func (h handlers) newsCreate(w http.ResponseWriter, r *http.Request) {
	in, img, cleanup, err := parseArticleForm(w, r)
	if err != nil {
		h.renderNewsForm(w, r, http.StatusRequestEntityTooLarge, &newsForm{Input: in, Errors: entity.ValidationErrors{{Field: "featuredImage", Message: "Image is too large"}}})
		return
	}
	defer cleanup()

	err = h.Svc.CreateNews(r.Context(), in, img)
	h.finishNews(w, r, "news_create", &newsForm{Input: in}, err, "News created")
}

func (h handlers) newsUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	in, img, cleanup, err := parseArticleForm(w, r)
	if err != nil {
		h.renderNewsForm(w, r, http.StatusRequestEntityTooLarge, &newsForm{ID: id, Input: in, Errors: entity.ValidationErrors{{Field: "featuredImage", Message: "Image is too large"}}})
		return
	}
	defer cleanup()

	err = h.Svc.UpdateNews(r.Context(), id, in, img)
	h.finishNews(w, r, "news_update", &newsForm{ID: id, Input: in}, err, "News updated")
}

func (h handlers) newsDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.DeleteNews(r.Context(), pathID(r))
	h.done(w, r, "news_delete", backTo(r, newsListPath), err, "News deleted")
}

// finishNews redirects to the list on success. Any failure re-renders the
// form with what the administrator typed.
func (h handlers) finishNews(w http.ResponseWriter, r *http.Request, name string, form *newsForm, err error, success string) {
	if err == nil {
		metrics.RecordFormSubmission(name, metrics.FormSuccess)
		h.Flash.Success(w, success)
		http.Redirect(w, r, newsListPath, http.StatusSeeOther)
		return
	}

	var verrs entity.ValidationErrors
	code := http.StatusUnprocessableEntity
	switch {
	case errors.As(err, &verrs):
		metrics.RecordFormSubmission(name, metrics.FormInvalid)
		form.Errors = verrs
	case errors.Is(err, dashUC.ErrMissingID):
		metrics.RecordFormSubmission(name, metrics.FormForbidden)
		form.Message = err.Error()
	default:
		metrics.RecordFormSubmission(name, metrics.FormFailure)
		logging.WithRequestID(r.Context(), slog.Default()).Warn("news form failed",
			slog.String("form", name),
			slog.Any("error", err))
		form.Message = api.UserMessage(err)
		if !errors.Is(err, entity.ErrRejected) {
			code = http.StatusBadGateway
		}
	}
	h.renderNewsForm(w, r, code, form)
}

func (h handlers) renderNewsForm(w http.ResponseWriter, r *http.Request, code int, form *newsForm) {
	cats, err := h.Svc.AllCategories(r.Context())
	if err != nil {
		logging.WithRequestID(r.Context(), slog.Default()).Warn("news form: failed to list categories", slog.Any("error", err))
		if form.Message == "" {
			form.Message = "Categories could not be loaded, please reload the page"
		}
	}
	form.Categories = cats
	form.UploadsEnabled = h.Svc.Images != nil && h.Svc.Images.Enabled()

	title := "Create News"
	if form.ID != "" {
		title = "Edit News"
	}
	h.View.Render(w, r, code, "admin/news_form", view.Page{Title: title, Data: form})
}

// parseArticleForm reads the news form. The returned cleanup releases the
// uploaded file and must be called once the image has been used.
func parseArticleForm(w http.ResponseWriter, r *http.Request) (entity.ArticleInput, *dashUC.ImageFile, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return entity.ArticleInput{}, nil, noop, err
	}

	in := entity.ArticleInput{
		Title:         r.FormValue("title"),
		Content:       r.FormValue("content"),
		Summary:       r.FormValue("summary"),
		FeaturedImage: r.FormValue("featuredImage"),
		ImageCaption:  strings.TrimSpace(r.FormValue("imageCaption")),
		VideoURL:      r.FormValue("videoUrl"),
		CategoryID:    strings.TrimSpace(r.FormValue("categoryId")),
		Status:        strings.TrimSpace(r.FormValue("status")),
		IsBreaking:    r.FormValue("isBreaking") == "true",
		IsFeatured:    r.FormValue("isFeatured") == "true",
	}

	file, header, err := r.FormFile("image")
	if err != nil || header.Size == 0 {
		if file != nil {
			_ = file.Close()
		}
		return in, nil, noop, nil
	}
	return in, &dashUC.ImageFile{Name: header.Filename, Body: file}, func() { _ = file.Close() }, nil
}

func inputFromArticle(a *entity.Article) entity.ArticleInput {
	categoryID := a.CategoryID
	if categoryID == "" && a.Category != nil {
		categoryID = a.Category.ID
	}
	return entity.ArticleInput{
		Title:         a.Title,
		Content:       a.Content,
		Summary:       a.Summary,
		FeaturedImage: a.FeaturedImage,
		VideoURL:      a.VideoURL,
		CategoryID:    categoryID,
		Status:        "PUBLISHED",
		IsBreaking:    a.IsBreaking,
		IsFeatured:    a.IsFeatured,
	}
}
