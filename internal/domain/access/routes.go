package access

import (
	"strings"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// Route is one static entry in the application's route table.
// A nil RequiredRole means any authenticated, reset-compliant identity
// may view the route. Public routes bypass the guard entirely.
type Route struct {
	Path         string
	RequiredRole *domainauth.Role
	Public       bool
}

// RequireRole is a convenience for declaring role-gated table entries.
func RequireRole(role domainauth.Role) *domainauth.Role {
	r := role
	return &r
}

// Table is the application's static route table. It is declared once at
// startup and never mutated afterwards.
type Table struct {
	routes   []Route
	catchAll Route
}

// NewTable builds a route table. The catch-all entry serves any path
// with no declared route; it is guarded like every protected entry, so
// unauthenticated visitors to unknown paths still land on login.
func NewTable(routes []Route) *Table {
	return &Table{
		routes:   routes,
		catchAll: Route{Path: NotFoundPath},
	}
}

// Match returns the route for the given path. Entries whose path ends
// with a slash (other than the root) match by prefix, so "/books/"
// covers "/books/{id}/delete". Unmatched paths fall through to the
// guarded catch-all.
func (t *Table) Match(path string) Route {
	for _, r := range t.routes {
		if r.Path == path {
			return r
		}
		if len(r.Path) > 1 && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return t.catchAll
}

// Routes returns the declared entries, excluding the catch-all.
func (t *Table) Routes() []Route {
	return t.routes
}
