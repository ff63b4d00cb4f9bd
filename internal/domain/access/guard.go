package access

// Package access holds the pure navigation-gating logic for the admin UI.
// Evaluate consumes a session snapshot, the matched route, and the current
// path, and produces a render-or-redirect decision. It reads no ambient
// state and performs no I/O, so the same inputs always yield the same
// decision; the HTTP layer translates decisions into responses.

import (
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// Well-known application paths the guard redirects to.
const (
	LoginPath         = "/"
	ResetPasswordPath = "/reset-password"
	NotFoundPath      = "/404"
)

// SessionState is the guard's view of the current session.
//
// Loading is true while the session's identity is still being resolved
// (the first "who am I" call for this browser has not settled). While
// loading, Identity is unknown rather than asserted absent, and no
// redirect decision may be made from it.
type SessionState struct {
	Loading  bool
	Identity *domainauth.Identity
}

// Resolved returns a settled state carrying the given identity (which
// may be nil for an unauthenticated visitor).
func Resolved(identity *domainauth.Identity) SessionState {
	return SessionState{Identity: identity}
}

// Loading returns the indeterminate state observed before the first
// session resolution settles.
func Loading() SessionState {
	return SessionState{Loading: true}
}

// Outcome enumerates the kinds of decision the guard can reach.
type Outcome int

const (
	// OutcomeRender permits the matched route's content.
	OutcomeRender Outcome = iota
	// OutcomeLoading renders a neutral loading view: no protected
	// content, no login content, and critically no redirect.
	OutcomeLoading
	// OutcomeRedirect sends the browser to Decision.Location.
	OutcomeRedirect
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Outcome  Outcome
	Location string // set only when Outcome is OutcomeRedirect
}

func render() Decision                { return Decision{Outcome: OutcomeRender} }
func loading() Decision               { return Decision{Outcome: OutcomeLoading} }
func redirectTo(path string) Decision { return Decision{Outcome: OutcomeRedirect, Location: path} }

// Evaluate applies the access decision table, in strict order:
//
//  1. An unresolved session renders the loading view. This must come
//     before every redirect rule: treating "unknown" as "logged out"
//     would bounce a still-authenticating user to the login page, and
//     rendering content would flash protected screens.
//  2. No identity means redirect to login, whatever the route.
//  3. An outstanding forced password reset dominates role gating; any
//     protected path other than the reset screen redirects there.
//  4. A settled account has no business on the reset screen and is
//     sent to its role home instead.
//  5. A role mismatch redirects to the not-found page, never to login:
//     the user is authenticated, just not authorized for this screen.
//  6. Otherwise the route renders.
//
// Public routes bypass the guard entirely and must not be passed here.
func Evaluate(state SessionState, route Route, currentPath string) Decision {
	if state.Loading {
		return loading()
	}

	identity := state.Identity
	if identity == nil {
		return redirectTo(LoginPath)
	}

	if identity.PasswordResetRequired && currentPath != ResetPasswordPath {
		return redirectTo(ResetPasswordPath)
	}

	if !identity.PasswordResetRequired && currentPath == ResetPasswordPath {
		return redirectTo(identity.Role.HomePath())
	}

	if route.RequiredRole != nil && identity.Role != *route.RequiredRole {
		return redirectTo(NotFoundPath)
	}

	return render()
}
