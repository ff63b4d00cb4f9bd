package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// ErrNoSession is returned by CurrentUser when the upstream credential
// no longer identifies anyone. Absence of a session is a normal
// outcome, not an error condition for callers.
var ErrNoSession = errors.New("no upstream session")

// Credentials carries a login attempt against the upstream API.
type Credentials struct {
	Email    string
	Password string
}

// LoginResult is the upstream's answer to a successful login: the
// authenticated identity plus the raw session cookie the upstream
// issued, which must be replayed on subsequent calls.
type LoginResult struct {
	Identity domainauth.Identity
	Cookie   string
}

// PasswordChange groups parameters for the forced password reset call.
type PasswordChange struct {
	OldPassword string
	NewPassword string
}

// IdentityProvider authenticates against the upstream library API and
// answers "who am I" for an existing upstream credential.
type IdentityProvider interface {
	// Login exchanges credentials for an identity and upstream cookie.
	// Credential rejection returns an Upstream error carrying the
	// server's human-readable message.
	Login(ctx context.Context, creds Credentials) (LoginResult, error)

	// CurrentUser resolves the identity behind an upstream cookie.
	// A 401 (or any upstream rejection) returns ErrNoSession; callers
	// treat that as "not logged in", never as a failure.
	CurrentUser(ctx context.Context, upstreamCookie string) (domainauth.Identity, error)

	// Logout terminates the upstream session. Best effort: callers
	// ignore the error beyond logging it.
	Logout(ctx context.Context, upstreamCookie string) error

	// ResetPassword performs the mandatory password change and returns
	// the refreshed identity with the one-time flag cleared.
	ResetPassword(ctx context.Context, upstreamCookie string, change PasswordChange) (domainauth.Identity, error)
}

// RecoverySender drives the public password-recovery flow, which runs
// without a session.
type RecoverySender interface {
	// SendVerificationCode asks upstream to email a recovery code.
	SendVerificationCode(ctx context.Context, email string) error

	// VerifyCode submits a recovery code together with the new password.
	VerifyCode(ctx context.Context, email, code, newPassword string) error
}

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
