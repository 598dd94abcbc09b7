// Package auth gates the dashboards by session role. It owns the role to
// zone table, the post-login redirect rules and the session context.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/requestid"
)

// SessionResolver resolves the visitor from the forwarded Cookie header.
// A nil session with a nil error means an anonymous visitor.
type SessionResolver interface {
	GetSession(ctx context.Context, cookieHeader string) (*entity.Session, error)
}

type ctxKey string

const (
	ctxSession ctxKey = "session"
	ctxSubtree ctxKey = "subtree"
)

// Gate resolves the session on every request and applies Decide before the
// handler runs. Nothing about a previous request is remembered, so a revoked
// session or a changed role takes effect on the next navigation.
//
// Resolution failures are treated as anonymous: protected paths redirect to
// the login page, public pages render without a viewer.
func Gate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsSessionless(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			sess := resolve(r, resolver)
			role := entity.RoleOf(sess)
			zone := ZoneOf(r.URL.Path)
			d := Decide(role, r.URL.Path)
			RecordGateDecision(zone, role.String(), d)

			if zone != ZonePublic {
				w.Header().Set("Cache-Control", "no-store")
			}
			if d.Redirect != "" {
				target := d.Redirect
				if target == LoginPath {
					target = LoginURL(r.URL.RequestURI())
				}
				slog.Info("gate redirect",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("zone", zone.String()),
					slog.String("role", role.String()),
					slog.String("redirect", d.Redirect))
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ctxSession, sess)
			ctx = context.WithValue(ctx, ctxSubtree, d.Subtree)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(r *http.Request, resolver SessionResolver) *entity.Session {
	cookie := r.Header.Get("Cookie")
	if cookie == "" {
		return nil
	}
	start := time.Now()
	sess, err := resolver.GetSession(r.Context(), cookie)
	elapsed := time.Since(start).Seconds()
	switch {
	case err != nil:
		RecordSessionLookup("error", elapsed)
		slog.Warn("session lookup failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Any("error", err))
		return nil
	case sess == nil:
		RecordSessionLookup("anonymous", elapsed)
	default:
		RecordSessionLookup("session", elapsed)
	}
	return sess
}

// WithSession returns a context carrying sess and the subtree Gate would mount
// for path.
func WithSession(ctx context.Context, sess *entity.Session, path string) context.Context {
	ctx = context.WithValue(ctx, ctxSession, sess)
	return context.WithValue(ctx, ctxSubtree, Decide(entity.RoleOf(sess), path).Subtree)
}

// SessionFrom returns the session resolved by Gate, or nil for anonymous visitors.
func SessionFrom(ctx context.Context) *entity.Session {
	sess, _ := ctx.Value(ctxSession).(*entity.Session)
	return sess
}

// ViewerFrom returns the signed-in user, or nil.
func ViewerFrom(ctx context.Context) *entity.User {
	if sess := SessionFrom(ctx); sess != nil {
		return &sess.User
	}
	return nil
}

// SubtreeFrom returns the dashboard subtree chosen by Gate.
func SubtreeFrom(ctx context.Context) Subtree {
	s, _ := ctx.Value(ctxSubtree).(Subtree)
	return s
}
