package pathutil

import (
	"errors"
	"net/http"
	"regexp"
)

var (
	// ErrInvalidID is returned when the ID in the URL path is invalid.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidSlug is returned when the slug in the URL path is invalid.
	ErrInvalidSlug = errors.New("invalid slug")
)

// maxSegmentLength bounds path keys forwarded to the API.
const maxSegmentLength = 200

// segmentPattern matches the keys the API issues: ids and slugs alike are
// ASCII letters, digits, hyphens and underscores.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtractID returns the {name} wildcard of r as a resource id.
//
// Example:
//
//	// pattern "POST /admin-dashboard/news/{id}/delete"
//	id, err := ExtractID(r, "id")
//	// "/admin-dashboard/news/clx9a2/delete" -> "clx9a2", nil
func ExtractID(r *http.Request, name string) (string, error) {
	if !validSegment(r.PathValue(name)) {
		return "", ErrInvalidID
	}
	return r.PathValue(name), nil
}

// ExtractSlug returns the {name} wildcard of r as a slug.
func ExtractSlug(r *http.Request, name string) (string, error) {
	if !validSegment(r.PathValue(name)) {
		return "", ErrInvalidSlug
	}
	return r.PathValue(name), nil
}

func validSegment(s string) bool {
	return s != "" && len(s) <= maxSegmentLength && segmentPattern.MatchString(s)
}
