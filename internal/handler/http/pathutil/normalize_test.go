package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "article detail", path: "/news/markets-rally-on-rate-cut", expected: "/news/:slug"},
		{name: "article detail trailing slash", path: "/news/markets-rally/", expected: "/news/:slug"},
		{name: "comment create", path: "/news/markets-rally/comments", expected: "/news/:slug/comments"},
		{name: "comment update", path: "/news/markets-rally/comments/c1", expected: "/news/:slug/comments/:id"},
		{name: "comment delete", path: "/news/markets-rally/comments/c1/delete", expected: "/news/:slug/comments/:id/delete"},
		{name: "category with query", path: "/category/sports?page=2", expected: "/category/:slug"},
		{name: "api detail", path: "/api/news/markets-rally", expected: "/api/news/:slug"},
		{name: "api categories", path: "/api/categories", expected: "/api/categories"},
		{name: "api comments", path: "/api/news/markets-rally/comments", expected: "/api/news/:slug/comments"},
		{name: "admin edit", path: "/admin-dashboard/news/edit/clx9", expected: "/admin-dashboard/news/edit/:id"},
		{name: "admin news delete", path: "/admin-dashboard/news/clx9/delete", expected: "/admin-dashboard/news/:id/delete"},
		{name: "admin category delete", path: "/admin-dashboard/categories/c7/delete", expected: "/admin-dashboard/categories/:id/delete"},
		{name: "admin comment delete", path: "/admin-dashboard/comments/k2/delete", expected: "/admin-dashboard/comments/:id/delete"},
		{name: "admin category rename", path: "/admin-dashboard/categories/c7", expected: "/admin-dashboard/categories/:id"},
		{name: "admin role", path: "/admin-dashboard/users/u1/role", expected: "/admin-dashboard/users/:id/role"},
		{name: "static asset", path: "/static/site.css", expected: "/static/*"},
		{name: "root", path: "/", expected: "/"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "admin list", path: "/admin-dashboard/news", expected: "/admin-dashboard/news"},
		{name: "unknown collapses", path: "/wp-admin/setup.php", expected: "/:unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got < len(staticPaths) {
		t.Errorf("GetExpectedCardinality() = %d, want at least %d", got, len(staticPaths))
	}
}
