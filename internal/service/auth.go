package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/openshelf/library-admin/internal/domain/access"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

const (
	defaultSessionTTL      = 12 * time.Hour
	defaultRevalidateAfter = 5 * time.Minute
	refreshTimeout         = 10 * time.Second
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider
	Recovery ports.RecoverySender
	Sessions ports.SessionStore

	// SessionTTL bounds how long a browser session may live before the
	// user must log in again. Zero means the default.
	SessionTTL time.Duration

	// RevalidateAfter is how long a resolved identity is trusted before
	// it must be confirmed against upstream again. Zero means the
	// default.
	RevalidateAfter time.Duration

	Logger *slog.Logger

	// Now overrides the clock (tests).
	Now func() time.Time
}

// AuthService owns the browser session lifecycle: login, the per-request
// session resolution the access guard consumes, forced password resets,
// and logout. It is the only writer of session state.
type AuthService struct {
	provider ports.IdentityProvider
	recovery ports.RecoverySender
	sessions ports.SessionStore

	sessionTTL      time.Duration
	revalidateAfter time.Duration

	logger *slog.Logger
	now    func() time.Time

	// refresh coalesces concurrent upstream revalidations per session.
	refresh singleflight.Group
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	revalidate := opts.RevalidateAfter
	if revalidate <= 0 {
		revalidate = defaultRevalidateAfter
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		provider:        opts.Provider,
		recovery:        opts.Recovery,
		sessions:        opts.Sessions,
		sessionTTL:      ttl,
		revalidateAfter: revalidate,
		logger:          logger,
		now:             now,
	}
}

// Login authenticates against the upstream API and mints a browser
// session. Credential rejection returns an Upstream error carrying the
// server's message; session state is untouched on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domainauth.Session{}, apperrors.Validation("email is required")
	}
	if password == "" {
		return domainauth.Session{}, apperrors.Validation("password is required")
	}

	result, err := s.provider.Login(ctx, ports.Credentials{Email: email, Password: password})
	if err != nil {
		return domainauth.Session{}, err
	}

	now := s.now()
	sess := domainauth.Session{
		ID:             uuid.New().String(),
		Identity:       result.Identity,
		UpstreamCookie: result.Cookie,
		RefreshedAt:    now,
		ExpiresAt:      now.Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return domainauth.Session{}, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}

	return sess, nil
}

// Resolve answers the guard's question for one request: what is the
// session state behind this cookie? It never fails; any store or
// upstream trouble collapses to "not logged in", and a record past its
// revalidation window yields a loading state while a single upstream
// confirmation runs in the background.
//
// The returned session is non-nil only when the state is resolved with
// an identity; handlers use it for the upstream cookie.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (access.SessionState, *domainauth.Session) {
	if sessionID == "" {
		return access.Resolved(nil), nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		// Missing, expired, or store failure: all resolve to
		// unauthenticated rather than blocking navigation.
		s.logger.DebugContext(ctx, "session resolution found nothing", "error", err)
		return access.Resolved(nil), nil
	}

	if sess.StaleAfter(s.revalidateAfter, s.now()) {
		s.refreshInBackground(sess)
		return access.Loading(), nil
	}

	identity := sess.Identity
	return access.Resolved(&identity), &sess
}

// refreshInBackground confirms a stale session against upstream exactly
// once, no matter how many requests observe the staleness concurrently.
// Any failure to confirm, rejection or transport trouble alike, deletes
// the record: the next resolution settles to unauthenticated rather
// than looping on the loading state.
func (s *AuthService) refreshInBackground(sess domainauth.Session) {
	go func() {
		_, _, _ = s.refresh.Do(sess.ID, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			identity, err := s.provider.CurrentUser(ctx, sess.UpstreamCookie)
			if err != nil {
				if !errors.Is(err, ports.ErrNoSession) {
					s.logger.WarnContext(ctx, "session revalidation failed",
						"session_id", sess.ID, "error", err)
				}
				if delErr := s.sessions.Delete(ctx, sess.ID); delErr != nil {
					s.logger.WarnContext(ctx, "delete unconfirmed session failed",
						"session_id", sess.ID, "error", delErr)
				}
				return nil, nil
			}

			if saveErr := s.stampRefreshed(ctx, sess, identity); saveErr != nil {
				s.logger.WarnContext(ctx, "save refreshed session failed",
					"session_id", sess.ID, "error", saveErr)
			}
			return nil, nil
		})
	}()
}

func (s *AuthService) stampRefreshed(
	ctx context.Context,
	sess domainauth.Session,
	identity domainauth.Identity,
) error {
	sess.Identity = identity
	sess.RefreshedAt = s.now()
	return s.sessions.Save(ctx, sess)
}

// SetIdentity replaces the identity stored on a session. It trusts the
// caller; the only callers are the login and reset flows, which hold an
// identity the upstream just vouched for.
func (s *AuthService) SetIdentity(ctx context.Context, sessionID string, identity domainauth.Identity) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "no session to update")
	}
	if err := s.stampRefreshed(ctx, sess, identity); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return nil
}

// ResetPassword performs the mandatory password change on the session's
// upstream credential and stores the refreshed identity (one-time flag
// cleared upstream).
func (s *AuthService) ResetPassword(
	ctx context.Context,
	sessionID, oldPassword, newPassword string,
) (domainauth.Identity, error) {
	if newPassword == "" {
		return domainauth.Identity{}, apperrors.Validation("new password is required")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "no session")
	}

	identity, err := s.provider.ResetPassword(ctx, sess.UpstreamCookie, ports.PasswordChange{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return domainauth.Identity{}, err
	}

	if saveErr := s.stampRefreshed(ctx, sess, identity); saveErr != nil {
		return domainauth.Identity{}, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}

	return identity, nil
}

// Logout terminates the session. The upstream call is best effort;
// logout always succeeds locally so a dead upstream can never trap a
// user in an authenticated browser.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err == nil {
		if logoutErr := s.provider.Logout(ctx, sess.UpstreamCookie); logoutErr != nil {
			s.logger.WarnContext(ctx, "upstream logout failed", "error", logoutErr)
		}
	}

	if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
		s.logger.WarnContext(ctx, "delete session failed", "session_id", sessionID, "error", delErr)
	}
	return nil
}

// SendRecoveryCode starts the public password-recovery flow.
func (s *AuthService) SendRecoveryCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.Validation("email is required")
	}
	if s.recovery == nil {
		return apperrors.Internal("password recovery is not configured")
	}
	if err := s.recovery.SendVerificationCode(ctx, email); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// SubmitRecoveryCode completes the public password-recovery flow.
func (s *AuthService) SubmitRecoveryCode(ctx context.Context, email, code, newPassword string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.Validation("email is required")
	}
	if strings.TrimSpace(code) == "" {
		return apperrors.Validation("verification code is required")
	}
	if newPassword == "" {
		return apperrors.Validation("new password is required")
	}
	if s.recovery == nil {
		return apperrors.Internal("password recovery is not configured")
	}
	if err := s.recovery.VerifyCode(ctx, email, code, newPassword); err != nil {
		return fmt.Errorf("verify recovery code: %w", err)
	}
	return nil
}
