package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/pathutil"
	"newspress/internal/handler/http/respond"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/infra/flash"
	"newspress/internal/observability/logging"
	"newspress/internal/observability/metrics"
	dashUC "newspress/internal/usecase/dashboard"
	"newspress/internal/usecase/listing"
)

type handlers struct {
	Svc   *dashUC.Service
	View  *view.Renderer
	Flash *flash.Store
}

// listView is the data of every management list.
type listView[T any] struct {
	Result listing.Result[T]
	Query  url.Values
	// Name and Errors echo a rejected create form above the list.
	Name   string
	Errors entity.ValidationErrors
}

func (h handlers) profile(w http.ResponseWriter, r *http.Request) {
	h.View.Render(w, r, http.StatusOK, "dashboard", view.Page{Title: "My Profile"})
}

func (h handlers) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Svc.Overview(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.View.Render(w, r, http.StatusOK, "admin/overview", view.Page{Title: "Dashboard", Data: ov})
}

// fail renders the error page for a dashboard screen that could not load.
func (h handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	code := respond.StatusFor(err)
	if code < http.StatusInternalServerError {
		code = http.StatusBadGateway
	}
	logging.WithRequestID(r.Context(), slog.Default()).Warn("dashboard load failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	h.View.Render(w, r, code, "error", view.Page{Title: "Unavailable", Data: api.UserMessage(err)})
}

// done finishes a write with a flash notice and a redirect to back.
func (h handlers) done(w http.ResponseWriter, r *http.Request, form, back string, err error, success string) {
	var verrs entity.ValidationErrors
	switch {
	case err == nil:
		metrics.RecordFormSubmission(form, metrics.FormSuccess)
		h.Flash.Success(w, success)
	case errors.As(err, &verrs) && len(verrs) > 0:
		metrics.RecordFormSubmission(form, metrics.FormInvalid)
		h.Flash.Error(w, verrs[0].Message)
	case errors.Is(err, dashUC.ErrSelfDemotion), errors.Is(err, dashUC.ErrInvalidRole),
		errors.Is(err, dashUC.ErrMissingID), errors.Is(err, dashUC.ErrArticleNotFound):
		metrics.RecordFormSubmission(form, metrics.FormForbidden)
		h.Flash.Error(w, err.Error())
	default:
		metrics.RecordFormSubmission(form, metrics.FormFailure)
		logging.WithRequestID(r.Context(), slog.Default()).Warn("dashboard write failed",
			slog.String("form", form),
			slog.Any("error", err))
		h.Flash.Error(w, api.UserMessage(err))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// pathID reads the {id} wildcard; a malformed id is reported as missing.
func pathID(r *http.Request) string {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		return ""
	}
	return id
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// backTo returns the list page the form was posted from when the Referer
// points at it, else fallback.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path != fallback {
		return fallback
	}
	if ref.RawQuery == "" {
		return fallback
	}
	return fallback + "?" + ref.RawQuery
}
