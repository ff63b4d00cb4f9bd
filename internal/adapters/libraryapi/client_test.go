package libraryapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

func modelListOptions(page, limit int) model.ListOptions {
	return model.ListOptions{Page: page, Limit: limit}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)
	return client, server
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestLogin_CapturesCookieAndIdentity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc123", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Ada","email":"ada@example.com","role":"admin","library_id":"lib-1","oneTime":true}}`))
	}))

	result, err := client.Login(context.Background(), ports.Credentials{
		Email:    "ada@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "token=abc123", result.Cookie)
	assert.Equal(t, "u-1", result.Identity.ID)
	assert.Equal(t, domainauth.RoleAdmin, result.Identity.Role)
	assert.Equal(t, "lib-1", result.Identity.LibraryID)
	assert.True(t, result.Identity.PasswordResetRequired)
}

func TestLogin_SurfacesUpstreamMessageVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials. Please try again."}`))
	}))

	_, err := client.Login(context.Background(), ports.Credentials{Email: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "Invalid credentials. Please try again.", apperrors.UserMessage(err))
}

func TestLogin_MissingCookieIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Ada","email":"a@b.c","role":"user"}}`))
	}))

	_, err := client.Login(context.Background(), ports.Credentials{Email: "x", Password: "y"})
	assert.Error(t, err)
}

func TestCurrentUser_ReplaysCookie(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "token=abc123", r.Header.Get("Cookie"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Ada","email":"a@b.c","role":"superAdmin"}}`))
	}))

	identity, err := client.CurrentUser(context.Background(), "token=abc123")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleSuperAdmin, identity.Role)
	assert.False(t, identity.PasswordResetRequired)
}

func TestCurrentUser_RejectionIsNoSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.CurrentUser(context.Background(), "token=stale")
	assert.True(t, errors.Is(err, ports.ErrNoSession))
}

func TestCurrentUser_TransportFailureIsNoSession(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)
	server.Close() // force a connection error

	_, err = client.CurrentUser(context.Background(), "token=abc")
	assert.True(t, errors.Is(err, ports.ErrNoSession))
}

func TestResetPassword_ReturnsRefreshedIdentity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/auth/reset-password", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Ada","email":"a@b.c","role":"user","oneTime":false}}`))
	}))

	identity, err := client.ResetPassword(context.Background(), "token=abc", ports.PasswordChange{
		OldPassword: "old",
		NewPassword: "new",
	})
	require.NoError(t, err)
	assert.False(t, identity.PasswordResetRequired)
}

func TestListBooks_MapsPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/book-management/books", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"books":[{"id":"b-1","title":"Dune","author":"Herbert","category_id":"c-1","status":"available","quantity":3}],
			"pagination":{"page":2,"pageSize":10,"totalPages":5,"totalBooks":42}
		}`))
	}))

	page, err := client.ListBooks(context.Background(), "token=abc", modelListOptions(2, 10))
	require.NoError(t, err)
	require.Len(t, page.Books, 1)
	assert.Equal(t, "Dune", page.Books[0].Title)
	assert.Equal(t, 42, page.Pagination.TotalItems)
	assert.Equal(t, 5, page.Pagination.TotalPages)
}

func TestListUsers_SendsSearchAndMapsStats(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user-management/users", r.URL.Path)
		require.Equal(t, "ada", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"users":[{"id":"u-1","name":"Ada","email":"a@b.c","role":"admin","library_id":"lib-1"}],
			"stats":{"superAdmins":1,"admins":3,"users":12},
			"pagination":{"page":1,"pageSize":10,"totalPages":2,"totalUsers":16}
		}`))
	}))

	page, err := client.ListUsers(context.Background(), "token=abc", modelListOptions(1, 10), "ada")
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, 3, page.Stats.Admins)
	assert.Equal(t, 16, page.Pagination.TotalItems)
}

func TestDeleteBook_NoBody(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.DeleteBook(context.Background(), "token=abc", "b-9")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/book-management/books/b-9", gotPath)
}
