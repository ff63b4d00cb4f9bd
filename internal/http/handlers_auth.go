package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openshelf/library-admin/internal/domain/access"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/service"
)

// CookieConfig controls the attributes of the browser session cookie.
type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

// AuthHandlers serves the login, logout, password-reset, and recovery
// flows plus the JSON session status probe.
type AuthHandlers struct {
	Auth   *service.AuthService
	Render *Renderer
	Cookie CookieConfig
	Logger *slog.Logger
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.Cookie.Domain,
		MaxAge:   int(h.Cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.Cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// landingPath is where a freshly settled identity belongs: the reset
// screen while the one-time flag is outstanding, the role home after.
func landingPath(identity domainauth.Identity) string {
	if identity.PasswordResetRequired {
		return access.ResetPasswordPath
	}
	return identity.Role.HomePath()
}

// LoginPage renders the sign-in form. A visitor who already holds a
// settled session is sent where they belong instead.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if identity := IdentityFromContext(r.Context()); identity != nil {
		http.Redirect(w, r, landingPath(*identity), http.StatusSeeOther)
		return
	}
	h.Render.Page(w, http.StatusOK, "login", PageData{Title: "Sign in"})
}

// LoginSubmit authenticates the posted credentials and mints the
// browser session. Rejections re-render the form with the upstream
// message verbatim.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render.Page(w, http.StatusBadRequest, "login", PageData{
			Title: "Sign in",
			Error: "Could not read the submitted form.",
		})
		return
	}

	sess, err := h.Auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		h.Render.Page(w, http.StatusOK, "login", PageData{
			Title: "Sign in",
			Error: apperrors.UserMessage(err),
		})
		return
	}

	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, landingPath(sess.Identity), http.StatusSeeOther)
}

// Logout terminates the session and always lands on the login page,
// upstream reachable or not.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), sessionIDFromRequest(r)); err != nil {
		h.Logger.ErrorContext(r.Context(), "logout failed", "error", err)
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, access.LoginPath, http.StatusSeeOther)
}

// ResetPasswordPage renders the mandatory password-change form.
func (h *AuthHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.Render.Page(w, http.StatusOK, "reset_password", PageData{
		Title:    "Reset password",
		Identity: IdentityFromContext(r.Context()),
	})
}

// ResetPasswordSubmit performs the password change against upstream and
// sends the refreshed identity to its role home.
func (h *AuthHandlers) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.Render.Page(w, http.StatusBadRequest, "reset_password", PageData{
			Title:    "Reset password",
			Identity: identity,
			Error:    "Could not read the submitted form.",
		})
		return
	}

	newPassword := r.PostFormValue("new_password")
	if newPassword != r.PostFormValue("confirm_password") {
		h.Render.Page(w, http.StatusOK, "reset_password", PageData{
			Title:    "Reset password",
			Identity: identity,
			Error:    "Passwords do not match.",
		})
		return
	}

	sess := SessionFromContext(r.Context())
	refreshed, err := h.Auth.ResetPassword(r.Context(), sess.ID, r.PostFormValue("old_password"), newPassword)
	if err != nil {
		h.Render.Page(w, http.StatusOK, "reset_password", PageData{
			Title:    "Reset password",
			Identity: identity,
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, refreshed.Role.HomePath(), http.StatusSeeOther)
}

// ForgotPasswordPage renders the recovery-code request form.
func (h *AuthHandlers) ForgotPasswordPage(w http.ResponseWriter, _ *http.Request) {
	h.Render.Page(w, http.StatusOK, "forgot_password", PageData{Title: "Forgot password"})
}

// ForgotPasswordSubmit asks upstream to email a verification code.
func (h *AuthHandlers) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render.Page(w, http.StatusBadRequest, "forgot_password", PageData{
			Title: "Forgot password",
			Error: "Could not read the submitted form.",
		})
		return
	}

	email := r.PostFormValue("email")
	if err := h.Auth.SendRecoveryCode(r.Context(), email); err != nil {
		h.Render.Page(w, http.StatusOK, "forgot_password", PageData{
			Title: "Forgot password",
			Error: apperrors.UserMessage(err),
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "forgot_password_verify", PageData{
		Title:  "Verify code",
		Notice: "If that address has an account, a verification code is on its way.",
		Data:   map[string]string{"Email": email},
	})
}

// VerifyCodePage renders the code + new password form directly, for
// users following an emailed link.
func (h *AuthHandlers) VerifyCodePage(w http.ResponseWriter, _ *http.Request) {
	h.Render.Page(w, http.StatusOK, "forgot_password_verify", PageData{Title: "Verify code"})
}

// VerifyCodeSubmit completes recovery with the emailed code and a new
// password, then sends the visitor to sign in.
func (h *AuthHandlers) VerifyCodeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render.Page(w, http.StatusBadRequest, "forgot_password_verify", PageData{
			Title: "Verify code",
			Error: "Could not read the submitted form.",
		})
		return
	}

	email := r.PostFormValue("email")
	err := h.Auth.SubmitRecoveryCode(r.Context(), email, r.PostFormValue("code"), r.PostFormValue("new_password"))
	if err != nil {
		h.Render.Page(w, http.StatusOK, "forgot_password_verify", PageData{
			Title: "Verify code",
			Error: apperrors.UserMessage(err),
			Data:  map[string]string{"Email": email},
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "login", PageData{
		Title:  "Sign in",
		Notice: "Password updated. Sign in with your new password.",
	})
}

// Status reports the session state as JSON. The loading answer mirrors
// what the guard sees: unknown, not logged out.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state, _ := h.Auth.Resolve(r.Context(), sessionIDFromRequest(r))

	if state.Loading {
		WriteJSON(w, http.StatusOK, map[string]any{"loading": true, "authenticated": false})
		return
	}
	if state.Identity == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"loading": false, "authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"loading":       false,
		"authenticated": true,
		"user":          state.Identity,
	})
}
