package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/library-admin/internal/adapters/libraryapi"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/service"
)

// memStore is an in-memory session store for router tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]domainauth.Session{}}
}

func (m *memStore) Save(_ context.Context, sess domainauth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, apperrors.NotFound("session not found")
	}
	return sess, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// stubUpstream fakes the library platform API for one fixed account.
func stubUpstream(role string, oneTime bool) http.Handler {
	userJSON := fmt.Sprintf(
		`{"user":{"id":"u-1","name":"Ada","email":"ada@example.com","role":%q,"library_id":"lib-1","oneTime":%v}}`,
		role, oneTime,
	)
	writeUser := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "upstream-abc"})
		writeUser(w, userJSON)
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, userJSON)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PATCH /auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, strings.Replace(userJSON, `"oneTime":true`, `"oneTime":false`, 1))
	})
	mux.HandleFunc("GET /book-management/books", func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, `{"books":[],"pagination":{"page":1,"pageSize":10,"totalPages":1,"totalBooks":0}}`)
	})
	mux.HandleFunc("GET /lending-book/lending", func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, `{"lends":[],"pagination":{"page":1,"pageSize":10,"totalPages":1,"totalLends":0}}`)
	})
	return mux
}

type testEnv struct {
	server *httptest.Server
	store  *memStore
}

func newTestEnv(t *testing.T, upstream http.Handler) *testEnv {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api, err := libraryapi.New(libraryapi.Config{BaseURL: up.URL, HTTPClient: up.Client(), Logger: logger})
	require.NoError(t, err)

	store := newMemStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Provider:        api,
		Recovery:        api,
		Sessions:        store,
		RevalidateAfter: time.Hour,
		Logger:          logger,
	})

	router, err := NewRouter(RouterServices{
		Auth:      auth,
		Catalog:   service.NewCatalogService(api, api),
		Directory: service.NewDirectoryService(api, api),
		Lending:   service.NewLendingService(api),
		Logger:    logger,
	})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{server: server, store: store}
}

// get issues a request without following redirects, attaching the
// session cookie when sessionID is non-empty.
func (e *testEnv) get(t *testing.T, path, sessionID string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) postForm(t *testing.T, path, sessionID string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// login posts credentials and returns the minted session cookie value
// plus the redirect target.
func (e *testEnv) login(t *testing.T) (sessionID, location string) {
	t.Helper()
	resp := e.postForm(t, "/auth/login", "", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID, "login should set the session cookie")
	return sessionID, resp.Header.Get("Location")
}

func TestHealthzIsPublic(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", false))
	resp := env.get(t, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedIsSentToLogin(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", false))

	for _, path := range []string{"/dashboard", "/admin", "/reset-password", "/no/such/page"} {
		resp := env.get(t, path, "")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestLoginLandsOnRoleHome(t *testing.T) {
	cases := []struct {
		role string
		home string
	}{
		{"superAdmin", "/super-admin"},
		{"admin", "/admin"},
		{"user", "/dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			env := newTestEnv(t, stubUpstream(tc.role, false))
			sessionID, location := env.login(t)
			assert.Equal(t, tc.home, location)

			resp := env.get(t, tc.home, sessionID)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRoleMismatchLandsOnNotFound(t *testing.T) {
	env := newTestEnv(t, stubUpstream("admin", false))
	sessionID, _ := env.login(t)

	resp := env.get(t, "/super-admin", sessionID)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/404", resp.Header.Get("Location"))

	resp = env.get(t, "/404", sessionID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOneTimeFlagForcesResetScreen(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", true))
	sessionID, location := env.login(t)
	assert.Equal(t, "/reset-password", location)

	// Every protected screen bounces back to the reset form.
	resp := env.get(t, "/dashboard", sessionID)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/reset-password", resp.Header.Get("Location"))

	resp = env.get(t, "/reset-password", sessionID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResetPasswordClearsFlagAndLandsHome(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", true))
	sessionID, _ := env.login(t)

	resp := env.postForm(t, "/reset-password", sessionID, url.Values{
		"old_password":     {"starter"},
		"new_password":     {"fresh"},
		"confirm_password": {"fresh"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestSettledIdentityBouncedOffResetScreen(t *testing.T) {
	env := newTestEnv(t, stubUpstream("admin", false))
	sessionID, _ := env.login(t)

	resp := env.get(t, "/reset-password", sessionID)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestStaleSessionRendersLoadingNotRedirect(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", false))
	sessionID, _ := env.login(t)

	// Age the record past the revalidation window.
	env.store.mu.Lock()
	sess := env.store.sessions[sessionID]
	sess.RefreshedAt = time.Now().Add(-2 * time.Hour)
	env.store.sessions[sessionID] = sess
	env.store.mu.Unlock()

	resp := env.get(t, "/dashboard", sessionID)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Refresh"))
	assert.Contains(t, string(body), "Checking your session")
	assert.NotContains(t, string(body), "Welcome back")
}

func TestLogoutClearsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", false))
	sessionID, _ := env.login(t)

	resp := env.postForm(t, "/auth/logout", sessionID, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout should expire the session cookie")

	// The old cookie no longer opens any door.
	resp = env.get(t, "/dashboard", sessionID)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAuthStatusJSON(t *testing.T) {
	env := newTestEnv(t, stubUpstream("admin", false))

	resp := env.get(t, "/auth/status", "")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"authenticated":false`)

	sessionID, _ := env.login(t)
	resp = env.get(t, "/auth/status", sessionID)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"authenticated":true`)
	assert.Contains(t, string(body), `"admin"`)
}

func TestSignedInVisitorSkipsLoginPage(t *testing.T) {
	env := newTestEnv(t, stubUpstream("user", false))
	sessionID, _ := env.login(t)

	resp := env.get(t, "/", sessionID)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}
