package account

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/infra/flash"
	"newspress/internal/observability/logging"
)

type loginForm struct {
	Email   string
	Next    string
	Message string
	Errors  entity.ValidationErrors
}

// LoginPage renders the sign-in form. Signed-in visitors go straight to
// where they would land after signing in.
type LoginPage struct {
	View *view.Renderer
}

func (h LoginPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if viewer := auth.ViewerFrom(r.Context()); viewer != nil {
		http.Redirect(w, r, auth.AfterLogin(r.URL.Query(), viewer.Role), http.StatusSeeOther)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	h.View.Render(w, r, http.StatusOK, "login", view.Page{
		Title: "Sign in",
		Data:  &loginForm{Next: safeNext(r)},
	})
}

// LoginHandler signs the visitor in.
type LoginHandler struct {
	Svc   Authenticator
	View  *view.Renderer
	Flash *flash.Store
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in := entity.LoginInput{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := &loginForm{Email: in.Email, Next: safeNext(r)}

	if err := in.Validate(); err != nil {
		auth.RecordAuthAttempt("sign_in", "invalid")
		form.Errors = validationErrors(err)
		h.render(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	res, err := h.Svc.SignIn(r.Context(), in)
	if err != nil {
		auth.RecordAuthAttempt("sign_in", "failure")
		logging.WithRequestID(r.Context(), slog.Default()).Info("sign in failed", slog.Any("error", err))
		form.Message = api.UserMessage(err)
		h.render(w, r, statusForAuthError(err), form)
		return
	}

	auth.RecordAuthAttempt("sign_in", "success")
	relayCookies(w, res)
	if res.User != nil && res.User.Name != "" {
		h.Flash.Success(w, "Welcome back, "+res.User.Name)
	}
	http.Redirect(w, r, auth.AfterLogin(r.URL.Query(), roleOf(res)), http.StatusSeeOther)
}

func (h LoginHandler) render(w http.ResponseWriter, r *http.Request, code int, form *loginForm) {
	w.Header().Set("Cache-Control", "no-store")
	h.View.Render(w, r, code, "login", view.Page{Title: "Sign in", Data: form})
}

// safeNext returns the post-login path carried in the query, if it is local.
func safeNext(r *http.Request) string {
	if next := r.URL.Query().Get("next"); auth.IsLocalPath(next) {
		return next
	}
	return ""
}

func validationErrors(err error) entity.ValidationErrors {
	var errs entity.ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return entity.ValidationErrors{{Field: "form", Message: err.Error()}}
}

// statusForAuthError maps a failed auth call onto the status of the
// re-rendered form: rejected credentials are the visitor's problem, anything
// else is the auth service's.
func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, entity.ErrRejected), errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
