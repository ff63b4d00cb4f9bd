package httpx

import (
	"context"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions
// across packages. Centralized here so the guard and all handlers use
// the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the given
// session. A nil session returns ctx unchanged.
func SetSessionInContext(ctx context.Context, sess *domainauth.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the guard-approved session for this
// request, or nil on public routes.
func SessionFromContext(ctx context.Context) *domainauth.Session {
	if sess, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok {
		return sess
	}
	return nil
}

// IdentityFromContext returns the identity behind the current request,
// or nil when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *domainauth.Identity {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return nil
	}
	identity := sess.Identity
	return &identity
}
