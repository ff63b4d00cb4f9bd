package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/service"
)

// DirectoryHandlers serves the staff-management and library-branch
// screens.
type DirectoryHandlers struct {
	Directory *service.DirectoryService
	Render    *Renderer
	Logger    *slog.Logger
}

type usersPageData struct {
	Users      []model.User
	Stats      model.UserStats
	Pagination model.Pagination
	Search     string
}

// UsersList shows staff accounts with role stats and optional search.
func (h *DirectoryHandlers) UsersList(w http.ResponseWriter, r *http.Request) {
	h.renderUsers(w, r, "")
}

func (h *DirectoryHandlers) renderUsers(w http.ResponseWriter, r *http.Request, formError string) {
	sess := SessionFromContext(r.Context())
	search := r.URL.Query().Get("search")

	page, err := h.Directory.ListUsers(r.Context(), sess, listOptionsFromQuery(r), search)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list users failed", "error", err)
		h.Render.Page(w, http.StatusBadGateway, "users", PageData{
			Title:    "Staff",
			Identity: IdentityFromContext(r.Context()),
			Error:    apperrors.UserMessage(err),
			Data:     usersPageData{Search: search},
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "users", PageData{
		Title:    "Staff",
		Identity: IdentityFromContext(r.Context()),
		Error:    formError,
		Data: usersPageData{
			Users:      page.Users,
			Stats:      page.Stats,
			Pagination: page.Pagination,
			Search:     search,
		},
	})
}

// UserCreate provisions a staff account from the list page's form.
func (h *DirectoryHandlers) UserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderUsers(w, r, "Could not read the submitted form.")
		return
	}

	role, err := domainauth.ParseRole(r.PostFormValue("role"))
	if err != nil {
		h.renderUsers(w, r, "Unknown role.")
		return
	}

	req := model.CreateUserRequest{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Role:      role,
		LibraryID: r.PostFormValue("library_id"),
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Directory.CreateUser(r.Context(), sess, req); err != nil {
		h.renderUsers(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserUpdate patches a staff account. Empty form fields are left alone.
func (h *DirectoryHandlers) UserUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderUsers(w, r, "Could not read the submitted form.")
		return
	}

	req := model.UpdateUserRequest{
		Name:      optString(r, "name"),
		Email:     optString(r, "email"),
		LibraryID: optString(r, "library_id"),
	}
	if v := r.PostFormValue("role"); v != "" {
		role, err := domainauth.ParseRole(v)
		if err != nil {
			h.renderUsers(w, r, "Unknown role.")
			return
		}
		req.Role = &role
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Directory.UpdateUser(r.Context(), sess, r.PathValue("id"), req); err != nil {
		h.renderUsers(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserDelete removes a staff account.
func (h *DirectoryHandlers) UserDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := h.Directory.DeleteUser(r.Context(), sess, r.PathValue("id")); err != nil {
		h.renderUsers(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

type librariesPageData struct {
	Libraries []model.Library
}

// LibrariesList shows all branches.
func (h *DirectoryHandlers) LibrariesList(w http.ResponseWriter, r *http.Request) {
	h.renderLibraries(w, r, "")
}

func (h *DirectoryHandlers) renderLibraries(w http.ResponseWriter, r *http.Request, formError string) {
	sess := SessionFromContext(r.Context())

	libraries, err := h.Directory.ListLibraries(r.Context(), sess)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list libraries failed", "error", err)
		h.Render.Page(w, http.StatusBadGateway, "libraries", PageData{
			Title:    "Libraries",
			Identity: IdentityFromContext(r.Context()),
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "libraries", PageData{
		Title:    "Libraries",
		Identity: IdentityFromContext(r.Context()),
		Error:    formError,
		Data:     librariesPageData{Libraries: libraries},
	})
}

// LibraryCreate adds a branch.
func (h *DirectoryHandlers) LibraryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLibraries(w, r, "Could not read the submitted form.")
		return
	}

	req := model.CreateLibraryRequest{
		Name:     r.PostFormValue("name"),
		Location: r.PostFormValue("location"),
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Directory.CreateLibrary(r.Context(), sess, req); err != nil {
		h.renderLibraries(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/libraries", http.StatusSeeOther)
}

// LibraryUpdate patches a branch.
func (h *DirectoryHandlers) LibraryUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLibraries(w, r, "Could not read the submitted form.")
		return
	}

	req := model.UpdateLibraryRequest{
		Name:     optString(r, "name"),
		Location: optString(r, "location"),
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Directory.UpdateLibrary(r.Context(), sess, r.PathValue("id"), req); err != nil {
		h.renderLibraries(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/libraries", http.StatusSeeOther)
}

// LibraryDelete removes a branch.
func (h *DirectoryHandlers) LibraryDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := h.Directory.DeleteLibrary(r.Context(), sess, r.PathValue("id")); err != nil {
		h.renderLibraries(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/libraries", http.StatusSeeOther)
}
