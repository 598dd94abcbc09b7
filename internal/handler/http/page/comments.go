package page

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/infra/flash"
	"newspress/internal/observability/logging"
	"newspress/internal/observability/metrics"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

// commentWriter holds what every comment form handler needs.
type commentWriter struct {
	Articles *artUC.Service
	Comments *commentUC.Service
	View     *view.Renderer
	Flash    *flash.Store
}

// CreateCommentHandler posts a comment, or a reply when parentId is set.
type CreateCommentHandler struct{ commentWriter }

func (h CreateCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art, slug, ok := h.article(w, r)
	if !ok {
		return
	}
	in := entity.CommentInput{
		Text:     r.PostFormValue("text"),
		PostID:   art.ID,
		ParentID: r.PostFormValue("parentId"),
	}
	_, err := h.Comments.Create(r.Context(), auth.ViewerFrom(r.Context()), in)
	retry := composerURL(slug, "reply", in.ParentID)
	h.finish(w, r, "comment_create", slug, err, "Comment posted", retry, in.Text)
}

// UpdateCommentHandler replaces the text of a comment.
type UpdateCommentHandler struct{ commentWriter }

func (h UpdateCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art, slug, ok := h.article(w, r)
	if !ok {
		return
	}
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		h.finish(w, r, "comment_update", slug, commentUC.ErrCommentNotFound, "", "", "")
		return
	}
	text := r.PostFormValue("text")
	_, err = h.Comments.Update(r.Context(), auth.ViewerFrom(r.Context()), art.ID, id, text)
	h.finish(w, r, "comment_update", slug, err, "Comment updated", composerURL(slug, "edit", id), text)
}

// DeleteCommentHandler removes a comment.
type DeleteCommentHandler struct{ commentWriter }

func (h DeleteCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art, slug, ok := h.article(w, r)
	if !ok {
		return
	}
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		h.finish(w, r, "comment_delete", slug, commentUC.ErrCommentNotFound, "", "", "")
		return
	}
	_, err = h.Comments.Delete(r.Context(), auth.ViewerFrom(r.Context()), art.ID, id)
	h.finish(w, r, "comment_delete", slug, err, "Comment deleted", "", "")
}

// article resolves the article the form belongs to. Anonymous visitors are
// sent to the login page before anything is fetched.
func (cw commentWriter) article(w http.ResponseWriter, r *http.Request) (*entity.Article, string, bool) {
	slug, err := pathutil.ExtractSlug(r, "slug")
	if err != nil {
		renderNotFound(w, r, cw.Articles, cw.View, "News not found")
		return nil, "", false
	}
	if auth.ViewerFrom(r.Context()) == nil {
		http.Redirect(w, r, auth.LoginURL("/news/"+slug), http.StatusSeeOther)
		return nil, "", false
	}
	art, err := cw.Articles.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, artUC.ErrArticleNotFound) || errors.Is(err, artUC.ErrInvalidSlug) {
			renderNotFound(w, r, cw.Articles, cw.View, "News not found")
			return nil, "", false
		}
		metrics.RecordFormSubmission("comment", metrics.FormFailure)
		cw.Flash.Error(w, api.UserMessage(err))
		http.Redirect(w, r, "/news/"+slug+"#comments", http.StatusSeeOther)
		return nil, "", false
	}
	return art, slug, true
}

// composerURL is the thread URL with the reply or edit form for id open.
// An empty id means the top-level comment form.
func composerURL(slug, param, id string) string {
	back := "/news/" + slug
	if id == "" {
		return back + "#comments"
	}
	return back + "?" + url.Values{param: {id}}.Encode() + "#comment-" + url.PathEscape(id)
}

// finish turns the outcome of a comment write into a flash notice and
// redirects back to the thread. Success closes the composer. Validation,
// rejection and upstream failures send the visitor to retry, which reopens
// the form the submit came from with the typed text as a draft. Forbidden
// and missing targets cannot be retried and close it.
func (cw commentWriter) finish(w http.ResponseWriter, r *http.Request, form, slug string, err error, success, retry, draft string) {
	back := "/news/" + slug + "#comments"
	if retry == "" {
		retry = back
	}
	failed := func(msg string) {
		cw.Flash.Set(w, flash.Notice{Level: flash.LevelError, Message: msg, Draft: draft})
		http.Redirect(w, r, retry, http.StatusSeeOther)
	}

	var verrs entity.ValidationErrors
	switch {
	case err == nil:
		metrics.RecordFormSubmission(form, metrics.FormSuccess)
		cw.Flash.Success(w, success)
	case errors.Is(err, commentUC.ErrAuthRequired):
		http.Redirect(w, r, auth.LoginURL("/news/"+slug), http.StatusSeeOther)
		return
	case errors.As(err, &verrs) && len(verrs) > 0:
		metrics.RecordFormSubmission(form, metrics.FormInvalid)
		failed(verrs[0].Message)
		return
	case errors.Is(err, commentUC.ErrForbidden), errors.Is(err, commentUC.ErrCommentNotFound):
		metrics.RecordFormSubmission(form, metrics.FormForbidden)
		cw.Flash.Error(w, err.Error())
	default:
		metrics.RecordFormSubmission(form, metrics.FormFailure)
		logging.WithRequestID(r.Context(), slog.Default()).Warn("comment write failed",
			slog.String("form", form),
			slog.String("slug", slug),
			slog.Any("error", err))
		failed(api.UserMessage(err))
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
