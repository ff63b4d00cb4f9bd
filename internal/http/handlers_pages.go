package httpx

import (
	"net/http"
)

// PageHandlers serves the role home pages and the branded 404.
type PageHandlers struct {
	Render *Renderer
}

// Dashboard is the home page for regular accounts.
func (h *PageHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Render.Page(w, http.StatusOK, "dashboard", PageData{
		Title:    "Dashboard",
		Identity: IdentityFromContext(r.Context()),
	})
}

// AdminHome is the home page for admin accounts.
func (h *PageHandlers) AdminHome(w http.ResponseWriter, r *http.Request) {
	h.Render.Page(w, http.StatusOK, "admin_home", PageData{
		Title:    "Administration",
		Identity: IdentityFromContext(r.Context()),
	})
}

// SuperAdminHome is the home page for superAdmin accounts.
func (h *PageHandlers) SuperAdminHome(w http.ResponseWriter, r *http.Request) {
	h.Render.Page(w, http.StatusOK, "super_admin_home", PageData{
		Title:    "Platform administration",
		Identity: IdentityFromContext(r.Context()),
	})
}

// NotFound serves unknown paths and the /404 screen role mismatches
// redirect to.
func (h *PageHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render.NotFound(w, r)
}
