package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Kept in string form for easy persistence and JSON round-trips.
// Valid values are defined as constants below; the set is closed.
type Role string

const (
	RoleSuperAdmin Role = "superAdmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// HomePath returns the default landing path for the role after
// authentication has fully resolved. Unknown roles land on the
// regular dashboard, the least privileged destination.
func (r Role) HomePath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin"
	case RoleAdmin:
		return "/admin"
	case RoleUser:
		return "/dashboard"
	default:
		return "/dashboard"
	}
}

// ParseRole normalizes a role string from the upstream API.
// Matching is case-insensitive on the canonical spellings.
func ParseRole(value string) (Role, error) {
	v := strings.TrimSpace(value)
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleUser} {
		if strings.EqualFold(v, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// Identity is the authenticated user's record as reported by the
// upstream library API. LibraryID is empty for superAdmin accounts,
// which are not scoped to a single library.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	LibraryID string `json:"library_id,omitempty"`

	// PasswordResetRequired marks an account that must change its
	// password before it may reach any other protected screen.
	// Upstream calls this "oneTime".
	PasswordResetRequired bool `json:"password_reset_required"`
}

// Session is the record we persist for an authenticated browser.
// ID is an opaque session identifier; UpstreamCookie is the raw
// credential the upstream API issued at login, replayed on every
// upstream call made on this session's behalf.
type Session struct {
	ID             string    `json:"id"`
	Identity       Identity  `json:"identity"`
	UpstreamCookie string    `json:"upstream_cookie"`
	RefreshedAt    time.Time `json:"refreshed_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// StaleAfter reports whether the session's identity is older than the
// given revalidation window and should be confirmed against upstream.
func (s Session) StaleAfter(window time.Duration, now time.Time) bool {
	return now.Sub(s.RefreshedAt) > window
}
