package auth

import (
	"net/url"
	"strings"

	"newspress/internal/domain/entity"
)

// Entry points the gate redirects to.
const (
	LoginPath          = "/login"
	MemberDashboard    = "/dashboard"
	AdminDashboard     = "/admin-dashboard"
	afterLoginParamKey = "next"
)

// Zone is the protection class of a request path.
type Zone int

const (
	ZonePublic Zone = iota
	ZoneMember
	ZoneAdmin
)

func (z Zone) String() string {
	switch z {
	case ZoneMember:
		return "member"
	case ZoneAdmin:
		return "admin"
	default:
		return "public"
	}
}

// ZonePaths maps each protected zone to its path patterns.
//
// Path Patterns:
// - "/dashboard/*" matches /dashboard, /dashboard/profile, ...
// - it does not match /dashboards or /dashboard-old
var ZonePaths = map[Zone][]string{
	ZoneMember: {MemberDashboard + "/*"},
	ZoneAdmin:  {AdminDashboard + "/*"},
}

// ZoneOf classifies path. Paths outside both dashboards are public.
func ZoneOf(path string) Zone {
	switch {
	case matchesPathPattern(path, ZonePaths[ZoneAdmin]):
		return ZoneAdmin
	case matchesPathPattern(path, ZonePaths[ZoneMember]):
		return ZoneMember
	default:
		return ZonePublic
	}
}

// Subtree is the dashboard view mounted for a request.
type Subtree int

const (
	// SubtreeNone is used for public pages and for redirects.
	SubtreeNone Subtree = iota
	SubtreeMember
	SubtreeAdmin
)

func (s Subtree) String() string {
	switch s {
	case SubtreeMember:
		return "member"
	case SubtreeAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Decision is the outcome of gating one request: either a redirect target or
// the subtree to render, never both.
type Decision struct {
	Redirect string
	Subtree  Subtree
}

// Decide is the single place where a role gates a path.
//
//	role \ zone   public   member               admin
//	none          render   -> /login            -> /login
//	USER          render   member subtree       -> /dashboard
//	ADMIN         render   -> /admin-dashboard  admin subtree
func Decide(role entity.Role, path string) Decision {
	zone := ZoneOf(path)
	if zone == ZonePublic {
		return Decision{}
	}
	if !role.IsValid() {
		return Decision{Redirect: LoginPath}
	}
	home := DashboardFor(role)
	want := SelectSubtree(role)
	if (zone == ZoneMember && want != SubtreeMember) || (zone == ZoneAdmin && want != SubtreeAdmin) {
		return Decision{Redirect: home}
	}
	return Decision{Subtree: want}
}

// SelectSubtree returns the dashboard subtree for role; exactly one for each
// authenticated role.
func SelectSubtree(role entity.Role) Subtree {
	switch role {
	case entity.RoleAdmin:
		return SubtreeAdmin
	case entity.RoleUser:
		return SubtreeMember
	case entity.RoleNone:
		return SubtreeNone
	default:
		return SubtreeNone
	}
}

// DashboardFor returns the dashboard root matching role, or the login page.
func DashboardFor(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return AdminDashboard
	case entity.RoleUser:
		return MemberDashboard
	case entity.RoleNone:
		return LoginPath
	default:
		return LoginPath
	}
}

// LoginURL returns the login page that sends the visitor back to next afterwards.
// Only same-site absolute paths are kept.
func LoginURL(next string) string {
	if !IsLocalPath(next) || next == LoginPath {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{afterLoginParamKey: {next}}.Encode()
}

// AfterLogin returns the safe post-login destination carried in q.
func AfterLogin(q url.Values, role entity.Role) string {
	if next := q.Get(afterLoginParamKey); IsLocalPath(next) && Decide(role, next).Redirect == "" {
		return next
	}
	if role == entity.RoleAdmin {
		return AdminDashboard
	}
	return "/"
}

// IsLocalPath reports whether p is a path on this site (no scheme, no host).
func IsLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}

// matchesPathPattern checks if a path matches any of the patterns.
//
// Pattern Matching Rules:
// - "/*" matches all paths
// - "/dashboard/*" matches "/dashboard" and "/dashboard/anything"
// - "/login" matches only "/login" (exact match)
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}
