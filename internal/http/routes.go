package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	libraryadmin "github.com/openshelf/library-admin"
	"github.com/openshelf/library-admin/internal/domain/access"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Directory *service.DirectoryService
	Lending   *service.LendingService

	CookieDomain string
	CookieSecure bool
	SessionTTL   time.Duration

	// IsDev serves templates and static assets from disk so edits show
	// up without a rebuild.
	IsDev  bool
	Logger *slog.Logger
}

// routeTable is the application's static route table. The guard
// consults it on every request; handlers below must stay in sync with
// it.
func routeTable() *access.Table {
	return access.NewTable([]access.Route{
		{Path: access.LoginPath, Public: true},
		{Path: "/auth/login", Public: true},
		{Path: "/auth/logout", Public: true},
		{Path: "/auth/status", Public: true},
		{Path: "/forgot-password", Public: true},
		{Path: "/forgot-password/verify", Public: true},
		{Path: "/healthz", Public: true},
		{Path: "/static/", Public: true},

		{Path: "/dashboard"},
		{Path: access.ResetPasswordPath},
		{Path: access.NotFoundPath},
		{Path: "/books"},
		{Path: "/books/"},
		{Path: "/categories"},
		{Path: "/categories/"},
		{Path: "/lends"},

		{Path: "/admin", RequiredRole: access.RequireRole(domainauth.RoleAdmin)},
		{Path: "/users", RequiredRole: access.RequireRole(domainauth.RoleAdmin)},
		{Path: "/users/", RequiredRole: access.RequireRole(domainauth.RoleAdmin)},

		{Path: "/super-admin", RequiredRole: access.RequireRole(domainauth.RoleSuperAdmin)},
		{Path: "/libraries", RequiredRole: access.RequireRole(domainauth.RoleSuperAdmin)},
		{Path: "/libraries/", RequiredRole: access.RequireRole(domainauth.RoleSuperAdmin)},
	})
}

// NewRouter creates the fully wired HTTP handler: routes, guard,
// logging, and panic recovery.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewRenderer(templateFS(services.IsDev), logger)
	if err != nil {
		return nil, err
	}

	auth := &AuthHandlers{
		Auth:   services.Auth,
		Render: renderer,
		Cookie: CookieConfig{
			Domain: services.CookieDomain,
			Secure: services.CookieSecure,
			MaxAge: services.SessionTTL,
		},
		Logger: logger,
	}
	pages := &PageHandlers{Render: renderer}
	catalog := &CatalogHandlers{Catalog: services.Catalog, Render: renderer, Logger: logger}
	directory := &DirectoryHandlers{Directory: services.Directory, Render: renderer, Logger: logger}
	lending := &LendingHandlers{Lending: services.Lending, Render: renderer, Logger: logger}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, auth)
	registerPageRoutes(mux, pages)
	registerCatalogRoutes(mux, catalog)
	registerDirectoryRoutes(mux, directory)
	registerLendingRoutes(mux, lending)

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	// Anything the mux doesn't know lands on the branded 404. The guard
	// has already bounced unauthenticated visitors by this point.
	mux.HandleFunc("/", pages.NotFound)

	guard := &Guard{Auth: services.Auth, Table: routeTable(), Render: renderer}

	var handler http.Handler = mux
	handler = guard.Middleware(handler)
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler, nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /{$}", h.LoginPage)
	mux.HandleFunc("POST /auth/login", h.LoginSubmit)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("GET /reset-password", h.ResetPasswordPage)
	mux.HandleFunc("POST /reset-password", h.ResetPasswordSubmit)
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", h.ForgotPasswordSubmit)
	mux.HandleFunc("GET /forgot-password/verify", h.VerifyCodePage)
	mux.HandleFunc("POST /forgot-password/verify", h.VerifyCodeSubmit)
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers) {
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /admin", h.AdminHome)
	mux.HandleFunc("GET /super-admin", h.SuperAdminHome)
	mux.HandleFunc("GET "+access.NotFoundPath, h.NotFound)
}

func registerCatalogRoutes(mux *http.ServeMux, h *CatalogHandlers) {
	mux.HandleFunc("GET /books", h.BooksList)
	mux.HandleFunc("POST /books", h.BookCreate)
	mux.HandleFunc("POST /books/{id}", h.BookUpdate)
	mux.HandleFunc("POST /books/{id}/delete", h.BookDelete)
	mux.HandleFunc("GET /categories", h.CategoriesList)
	mux.HandleFunc("POST /categories", h.CategoryCreate)
	mux.HandleFunc("POST /categories/{id}/delete", h.CategoryDelete)
}

func registerDirectoryRoutes(mux *http.ServeMux, h *DirectoryHandlers) {
	mux.HandleFunc("GET /users", h.UsersList)
	mux.HandleFunc("POST /users", h.UserCreate)
	mux.HandleFunc("POST /users/{id}", h.UserUpdate)
	mux.HandleFunc("POST /users/{id}/delete", h.UserDelete)
	mux.HandleFunc("GET /libraries", h.LibrariesList)
	mux.HandleFunc("POST /libraries", h.LibraryCreate)
	mux.HandleFunc("POST /libraries/{id}", h.LibraryUpdate)
	mux.HandleFunc("POST /libraries/{id}/delete", h.LibraryDelete)
}

func registerLendingRoutes(mux *http.ServeMux, h *LendingHandlers) {
	mux.HandleFunc("GET /lends", h.LendsList)
	mux.HandleFunc("POST /books/{id}/lend", h.BookLend)
}

// templateFS chooses the template source: disk in dev mode for hot
// reloading, the embedded filesystem otherwise.
func templateFS(isDev bool) fs.FS {
	if isDev {
		return os.DirFS("frontend/templates")
	}
	sub, err := fs.Sub(libraryadmin.TemplateFS, "frontend/templates")
	if err != nil {
		return os.DirFS("frontend/templates")
	}
	return sub
}

// staticHandler serves /static/* assets with the same dev/prod split.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	sub, err := fs.Sub(libraryadmin.StaticFS, "frontend/static")
	if err != nil {
		logger.Error("embedded static assets unavailable, serving from disk", slog.Any("error", err))
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
