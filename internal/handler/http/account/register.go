// Package account serves the sign-in, registration and sign-out forms. The
// auth service owns the session; this package relays its Set-Cookie headers
// and picks the page to land on afterwards.
package account

import (
	"context"
	"io"
	"net/http"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/middleware"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/flash"
	"newspress/internal/infra/session"
)

// Authenticator is the auth service as seen by the forms.
type Authenticator interface {
	SignIn(ctx context.Context, in entity.LoginInput) (*session.Result, error)
	SignUp(ctx context.Context, in entity.SignUpInput) (*session.Result, error)
	SignOut(ctx context.Context, cookieHeader string) (*session.Result, error)
}

// ImageUploader hosts the optional profile image.
type ImageUploader interface {
	Enabled() bool
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Register registers the account forms with the given mux.
// Form posts go through limiter when one is given; page loads are never limited.
func Register(mux *http.ServeMux, svc Authenticator, images ImageUploader, v *view.Renderer, store *flash.Store, limiter *middleware.RateLimiter) {
	limit := func(h http.Handler) http.Handler {
		if limiter == nil {
			return h
		}
		return limiter.Middleware(h)
	}

	mux.Handle("GET /login", LoginPage{View: v})
	mux.Handle("POST /login", limit(LoginHandler{Svc: svc, View: v, Flash: store}))
	mux.Handle("GET /register", RegisterPage{View: v, Images: images})
	mux.Handle("POST /register", limit(RegisterHandler{Svc: svc, Images: images, View: v, Flash: store}))
	mux.Handle("POST /logout", limit(LogoutHandler{Svc: svc, Flash: store}))
}

// relayCookies copies the auth service's Set-Cookie headers to the browser.
func relayCookies(w http.ResponseWriter, res *session.Result) {
	if res == nil {
		return
	}
	for _, c := range res.Cookies {
		w.Header().Add("Set-Cookie", c)
	}
}

func roleOf(res *session.Result) entity.Role {
	if res == nil || res.User == nil {
		return entity.RoleNone
	}
	return res.User.Role
}
