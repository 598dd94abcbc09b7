package account

import (
	"log/slog"
	"net/http"

	"newspress/internal/handler/http/auth"
	"newspress/internal/infra/flash"
	"newspress/internal/observability/logging"
)

// LogoutHandler ends the session and returns to the front page with the auth
// service's cookie-clearing headers.
type LogoutHandler struct {
	Svc   Authenticator
	Flash *flash.Store
}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.SignOut(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		auth.RecordAuthAttempt("sign_out", "failure")
		logging.WithRequestID(r.Context(), slog.Default()).Warn("sign out failed", slog.Any("error", err))
		h.Flash.Error(w, "We could not sign you out, please try again")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	auth.RecordAuthAttempt("sign_out", "success")
	relayCookies(w, res)
	h.Flash.Success(w, "You have been signed out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
