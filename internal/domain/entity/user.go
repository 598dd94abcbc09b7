package entity

import (
	"strings"
	"time"
)

// Role is the closed set of visitor roles. The zero value is an anonymous visitor.
type Role int

const (
	RoleNone Role = iota
	RoleUser
	RoleAdmin
)

// ParseRole maps the auth service's role attribute onto Role.
// Unknown values resolve to RoleNone so they never gain access.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin
	case "USER":
		return RoleUser
	default:
		return RoleNone
	}
}

// String returns the wire form of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	default:
		return ""
	}
}

// IsValid reports whether r names an authenticated role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account managed by the auth service.
type User struct {
	ID        string
	Name      string
	Email     string
	Image     string
	Role      Role
	CreatedAt time.Time
}

// Session is the resolved identity of the current visitor.
type Session struct {
	User      User
	ExpiresAt time.Time
}

// RoleOf returns the role carried by s, treating a nil session as anonymous.
func RoleOf(s *Session) Role {
	if s == nil {
		return RoleNone
	}
	return s.User.Role
}
