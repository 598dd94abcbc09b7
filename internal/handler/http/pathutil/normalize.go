package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Public pages
	{Pattern: regexp.MustCompile(`^/news/[^/]+$`), Template: "/news/:slug"},
	{Pattern: regexp.MustCompile(`^/news/[^/]+/comments$`), Template: "/news/:slug/comments"},
	{Pattern: regexp.MustCompile(`^/news/[^/]+/comments/[^/]+$`), Template: "/news/:slug/comments/:id"},
	{Pattern: regexp.MustCompile(`^/news/[^/]+/comments/[^/]+/delete$`), Template: "/news/:slug/comments/:id/delete"},
	{Pattern: regexp.MustCompile(`^/category/[^/]+$`), Template: "/category/:slug"},

	// JSON API
	{Pattern: regexp.MustCompile(`^/api/news/[^/]+$`), Template: "/api/news/:slug"},
	{Pattern: regexp.MustCompile(`^/api/news/[^/]+/comments$`), Template: "/api/news/:slug/comments"},

	// Admin dashboard
	{Pattern: regexp.MustCompile(`^/admin-dashboard/news/edit/[^/]+$`), Template: "/admin-dashboard/news/edit/:id"},
	{Pattern: regexp.MustCompile(`^/admin-dashboard/(news|categories|comments)/[^/]+/delete$`), Template: "/admin-dashboard/$1/:id/delete"},
	{Pattern: regexp.MustCompile(`^/admin-dashboard/categories/[^/]+$`), Template: "/admin-dashboard/categories/:id"},
	{Pattern: regexp.MustCompile(`^/admin-dashboard/users/[^/]+/role$`), Template: "/admin-dashboard/users/:id/role"},

	// Static assets
	{Pattern: regexp.MustCompile(`^/static/.+$`), Template: "/static/*"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with slugs or ids (e.g., /news/markets-rally) to template
// format (e.g., /news/:slug). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/news/markets-rally")                  // "/news/:slug"
//	NormalizePath("/category/politics")                   // "/category/:slug"
//	NormalizePath("/api/news/markets-rally/comments")     // "/api/news/:slug/comments"
//	NormalizePath("/admin-dashboard/news/clx9/delete")    // "/admin-dashboard/news/:id/delete"
//	NormalizePath("/static/site.css")                     // "/static/*"
//	NormalizePath("/health")                              // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/category/sports?page=2")  // "/category/:slug"
//	NormalizePath("/news/markets-rally/")     // "/news/:slug"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Pattern.ReplaceAllString(path, p.Template)
		}
	}

	// Unknown paths are rendered as the not-found page; collapse them so a
	// crawler cannot mint new label values.
	if !isKnownStatic(path) {
		return "/:unknown"
	}
	return path
}

// staticPaths are the routes without path parameters.
var staticPaths = map[string]struct{}{
	"/": {}, "/login": {}, "/register": {}, "/logout": {},
	"/dashboard": {}, "/admin-dashboard": {},
	"/admin-dashboard/news": {}, "/admin-dashboard/news/create": {},
	"/admin-dashboard/categories": {}, "/admin-dashboard/users": {}, "/admin-dashboard/comments": {},
	"/api/news": {}, "/api/categories": {},
	"/health": {}, "/ready": {}, "/live": {}, "/metrics": {},
}

func isKnownStatic(path string) bool {
	_, ok := staticPaths[path]
	return ok
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization. This is useful for capacity planning and monitoring.
func GetExpectedCardinality() int {
	// the delete pattern expands to three templates
	return len(pathPatterns) + 2 + len(staticPaths) + 1
}
