package libraryapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

// Compile-time conformance to the auth ports.
var (
	_ ports.IdentityProvider = (*Client)(nil)
	_ ports.RecoverySender   = (*Client)(nil)
)

// userPayload is the upstream's identity wire shape. "oneTime" marks an
// outstanding forced password reset.
type userPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LibraryID string `json:"library_id"`
	OneTime   bool   `json:"oneTime"`
}

// userEnvelope wraps identity-bearing responses: {"user": {...}}.
type userEnvelope struct {
	User userPayload `json:"user"`
}

func (p userPayload) toIdentity() (domainauth.Identity, error) {
	role, err := domainauth.ParseRole(p.Role)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream,
			"upstream returned unknown role")
	}
	return domainauth.Identity{
		ID:                    p.ID,
		Name:                  p.Name,
		Email:                 p.Email,
		Role:                  role,
		LibraryID:             p.LibraryID,
		PasswordResetRequired: p.OneTime,
	}, nil
}

// Login exchanges credentials for an identity and the upstream session
// cookie. POST /auth/login.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	resp, err := c.send(ctx, callParams{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": creds.Email, "password": creds.Password},
	})
	if err != nil {
		return ports.LoginResult{}, err
	}
	defer c.discard(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.LoginResult{}, c.asError(resp)
	}

	cookie := sessionCookie(resp)
	if cookie == "" {
		return ports.LoginResult{}, apperrors.Upstream("login response carried no session cookie")
	}

	var envelope userEnvelope
	if decodeErr := decodeInto(resp, &envelope); decodeErr != nil {
		return ports.LoginResult{}, decodeErr
	}
	identity, err := envelope.User.toIdentity()
	if err != nil {
		return ports.LoginResult{}, err
	}

	return ports.LoginResult{Identity: identity, Cookie: cookie}, nil
}

// CurrentUser resolves the identity behind an upstream cookie.
// GET /auth/me; any rejection collapses to ErrNoSession.
func (c *Client) CurrentUser(ctx context.Context, upstreamCookie string) (domainauth.Identity, error) {
	resp, err := c.send(ctx, callParams{
		method: http.MethodGet,
		path:   "/auth/me",
		cookie: upstreamCookie,
	})
	if err != nil {
		// Transport failure is indistinguishable from "not logged in"
		// for navigation purposes.
		return domainauth.Identity{}, ports.ErrNoSession
	}
	defer c.discard(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domainauth.Identity{}, ports.ErrNoSession
	}

	var envelope userEnvelope
	if decodeErr := decodeInto(resp, &envelope); decodeErr != nil {
		return domainauth.Identity{}, ports.ErrNoSession
	}
	return envelope.User.toIdentity()
}

// Logout terminates the upstream session. POST /auth/logout.
func (c *Client) Logout(ctx context.Context, upstreamCookie string) error {
	return c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/auth/logout",
		cookie: upstreamCookie,
	}, nil)
}

// ResetPassword performs the mandatory password change.
// PATCH /auth/reset-password.
func (c *Client) ResetPassword(
	ctx context.Context,
	upstreamCookie string,
	change ports.PasswordChange,
) (domainauth.Identity, error) {
	var envelope userEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPatch,
		path:   "/auth/reset-password",
		cookie: upstreamCookie,
		body: map[string]string{
			"oldPassword": change.OldPassword,
			"newPassword": change.NewPassword,
		},
	}, &envelope)
	if err != nil {
		return domainauth.Identity{}, err
	}
	return envelope.User.toIdentity()
}

// SendVerificationCode asks upstream to email a recovery code.
// POST /auth/send-verification-code.
func (c *Client) SendVerificationCode(ctx context.Context, email string) error {
	return c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/auth/send-verification-code",
		body:   map[string]string{"email": email},
	}, nil)
}

// VerifyCode submits a recovery code with the replacement password.
// POST /auth/verify-code.
func (c *Client) VerifyCode(ctx context.Context, email, code, newPassword string) error {
	return c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/auth/verify-code",
		body: map[string]string{
			"email":       email,
			"code":        code,
			"newPassword": newPassword,
		},
	}, nil)
}

// sessionCookie extracts the upstream session cookie from a login
// response as a raw "name=value" pair. The upstream owns the cookie
// name; we only replay it.
func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		value := strings.Trim(c.Value, `"`)
		if value == "" {
			continue
		}
		return c.Name + "=" + value
	}
	return ""
}

func decodeInto(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode upstream response")
	}
	return nil
}
