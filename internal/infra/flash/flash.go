// Package flash carries one-shot notices across a redirect in a signed cookie.
package flash

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie a notice travels in.
const CookieName = "np_flash"

// Lifetime bounds how long a notice survives unread.
const Lifetime = time.Minute

// Level is the visual class of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// MaxDraftBytes bounds the draft carried with a notice so the cookie stays
// well under browser limits. Longer drafts are not carried.
const MaxDraftBytes = 2048

// Notice is a message shown once on the next page. Draft optionally holds
// form text the visitor typed before a rejected submit, so the reopened
// form can show it again.
type Notice struct {
	Level   Level
	Message string
	Draft   string
}

type claims struct {
	Level   Level  `json:"lvl"`
	Message string `json:"msg"`
	Draft   string `json:"draft,omitempty"`
	jwt.RegisteredClaims
}

// Store signs and verifies notices.
type Store struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewStore creates a Store signing with secret. secure sets the cookie's
// Secure attribute.
func NewStore(secret []byte, secure bool) *Store {
	return &Store{secret: secret, secure: secure, now: time.Now}
}

// Set queues n for the next page the visitor sees.
func (s *Store) Set(w http.ResponseWriter, n Notice) {
	if n.Message == "" {
		return
	}
	if n.Level == "" {
		n.Level = LevelInfo
	}
	if len(n.Draft) > MaxDraftBytes {
		n.Draft = ""
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Level:   n.Level,
		Message: n.Message,
		Draft:   n.Draft,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		slog.Error("failed to sign flash notice", slog.Any("error", err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(Lifetime / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Success and Error are shorthands for Set.
func (s *Store) Success(w http.ResponseWriter, msg string) {
	s.Set(w, Notice{Level: LevelSuccess, Message: msg})
}

func (s *Store) Error(w http.ResponseWriter, msg string) {
	s.Set(w, Notice{Level: LevelError, Message: msg})
}

// Pop returns the pending notice and clears it. Missing, tampered and
// expired cookies yield nil.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) *Notice {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	s.clear(w)

	var cl claims
	_, err = jwt.ParseWithClaims(c.Value, &cl, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			slog.Debug("discarding invalid flash cookie", slog.Any("error", err))
		}
		return nil
	}
	switch cl.Level {
	case LevelSuccess, LevelError, LevelInfo:
	default:
		cl.Level = LevelInfo
	}
	return &Notice{Level: cl.Level, Message: cl.Message, Draft: cl.Draft}
}

func (s *Store) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
