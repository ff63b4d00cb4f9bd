package httpx

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// PageData is the envelope every template receives.
type PageData struct {
	Title    string
	Identity *domainauth.Identity
	Error    string
	Notice   string
	Data     any
}

// Renderer renders HTML pages for UI responses. Templates are parsed
// once at construction; each page template pulls in the shared header
// and footer partials.
type Renderer struct {
	t      *template.Template
	logger *slog.Logger
}

// NewRenderer parses all page templates from the given filesystem.
func NewRenderer(templateFS fs.FS, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	t, err := template.New("root").Funcs(funcs).ParseFS(templateFS, "*.tmpl")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	return &Renderer{t: t, logger: logger}, nil
}

// Page renders the named page template with the given status code.
// Render failures fall back to a plain 500 so a broken template never
// sends half a page.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", name),
			slog.Any("error", err),
		)
	}
}

// Loading renders the neutral holding view shown while a session
// revalidation settles. The Refresh header makes the browser retry in a
// second; no protected content, login content, or redirect is emitted.
func (r *Renderer) Loading(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Refresh", "1")
	w.Header().Set("Cache-Control", "no-store")
	r.Page(w, http.StatusOK, "loading", PageData{Title: "Loading"})
}

// NotFound renders the branded 404 page. The same page serves unknown
// paths and role mismatches; it does not say which.
func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.Page(w, http.StatusNotFound, "not_found", PageData{
		Title:    "Page not found",
		Identity: IdentityFromContext(req.Context()),
	})
}
