// Package dashboard implements the administrator dashboard: the summary
// numbers and the news, category, user and comment management screens. Lists
// are fetched whole and shaped in memory; every write is followed by a fresh
// fetch on the next render.
package dashboard

import "errors"

// Sentinel errors for dashboard use case operations.
var (
	// ErrArticleNotFound indicates the article to edit is not in the API's list.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidRole indicates a role change to something other than USER or ADMIN.
	ErrInvalidRole = errors.New("role must be USER or ADMIN")

	// ErrSelfDemotion indicates an administrator tried to remove their own admin role.
	ErrSelfDemotion = errors.New("you cannot remove your own administrator role")

	// ErrMissingID indicates a write without a target id.
	ErrMissingID = errors.New("id is required")
)
