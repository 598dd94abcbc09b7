package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"newspress/internal/domain/entity"
)

// Kind classifies a failed call to the news API.
type Kind int

const (
	// KindTransport covers network failures, 5xx answers, malformed bodies and an open circuit.
	KindTransport Kind = iota
	// KindRejected is a 4xx answer or a success:false envelope.
	KindRejected
	// KindNotFound is a 404 or an empty keyed lookup.
	KindNotFound
	// KindUnauthorized is a 401 or 403.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "transport"
	}
}

// Error is the normalized failure of one API call.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("api %s: %s (status %d)", e.Op, msg, e.Status)
	}
	return fmt.Sprintf("api %s: %s", e.Op, msg)
}

// Unwrap exposes both the domain sentinel for the kind and the cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindRejected:
		return entity.ErrRejected
	case KindNotFound:
		return entity.ErrNotFound
	case KindUnauthorized:
		return entity.ErrUnauthorized
	default:
		return entity.ErrUpstream
	}
}

// KindForStatus maps an HTTP status onto a kind. ok reports a 2xx status.
func KindForStatus(status int) (kind Kind, ok bool) {
	switch {
	case status >= 200 && status < 300:
		return 0, true
	case status == http.StatusNotFound:
		return KindNotFound, false
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized, false
	case status >= 500:
		return KindTransport, false
	default:
		return KindRejected, false
	}
}

// UserMessage returns the text shown to a visitor for err. Application
// rejections carry the server's own message; everything else is generic.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindRejected:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "The request was rejected"
		case KindNotFound:
			return "Not found"
		case KindUnauthorized:
			return "Please sign in to continue"
		}
	}
	return "Something went wrong, please try again"
}

// CountsAgainstCircuit reports whether err should trip the circuit breaker.
// Only transport failures do; rejections are the API working as intended.
func CountsAgainstCircuit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind != KindTransport {
			return false
		}
		if errors.Is(apiErr.Err, context.Canceled) {
			return false
		}
	}
	return true
}
