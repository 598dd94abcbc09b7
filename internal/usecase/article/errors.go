// Package article assembles the public news pages: the home rails, the
// category listing and the article detail view. Every page fetches the full
// article list from the API and shapes it in memory; no page state is shared
// between requests.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that no article has the requested slug.
	// Handlers render the not-found page for it.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidSlug indicates an empty or malformed slug in the URL.
	ErrInvalidSlug = errors.New("invalid article slug")
)
