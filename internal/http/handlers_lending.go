package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/service"
)

// LendingHandlers serves the lending desk screens.
type LendingHandlers struct {
	Lending *service.LendingService
	Render  *Renderer
	Logger  *slog.Logger
}

type lendsPageData struct {
	Records    []model.LendRecord
	Pagination model.Pagination
}

// LendsList shows the lending records.
func (h *LendingHandlers) LendsList(w http.ResponseWriter, r *http.Request) {
	h.renderLends(w, r, "")
}

func (h *LendingHandlers) renderLends(w http.ResponseWriter, r *http.Request, formError string) {
	sess := SessionFromContext(r.Context())

	page, err := h.Lending.ListLends(r.Context(), sess, listOptionsFromQuery(r))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list lends failed", "error", err)
		h.Render.Page(w, http.StatusBadGateway, "lends", PageData{
			Title:    "Lending",
			Identity: IdentityFromContext(r.Context()),
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "lends", PageData{
		Title:    "Lending",
		Identity: IdentityFromContext(r.Context()),
		Error:    formError,
		Data: lendsPageData{
			Records:    page.Records,
			Pagination: page.Pagination,
		},
	})
}

// BookLend records a lending transaction from the books screen.
func (h *LendingHandlers) BookLend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLends(w, r, "Could not read the submitted form.")
		return
	}

	req := model.LendBookRequest{Borrower: r.PostFormValue("borrower")}
	if v := r.PostFormValue("due_at"); v != "" {
		due, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.renderLends(w, r, "Due date must look like 2006-01-02.")
			return
		}
		req.DueAt = due
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Lending.LendBook(r.Context(), sess, r.PathValue("id"), req); err != nil {
		h.renderLends(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/lends", http.StatusSeeOther)
}
