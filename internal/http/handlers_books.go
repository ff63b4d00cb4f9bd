package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/service"
)

// CatalogHandlers serves the book and category screens.
type CatalogHandlers struct {
	Catalog *service.CatalogService
	Render  *Renderer
	Logger  *slog.Logger
}

type booksPageData struct {
	Books      []model.Book
	Pagination model.Pagination
	Category   string
}

// BooksList shows the catalog, optionally narrowed to one category.
func (h *CatalogHandlers) BooksList(w http.ResponseWriter, r *http.Request) {
	h.renderBooks(w, r, "")
}

func (h *CatalogHandlers) renderBooks(w http.ResponseWriter, r *http.Request, formError string) {
	sess := SessionFromContext(r.Context())
	category := r.URL.Query().Get("category")

	page, err := h.Catalog.ListBooks(r.Context(), sess, category, listOptionsFromQuery(r))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list books failed", "error", err)
		h.Render.Page(w, http.StatusBadGateway, "books", PageData{
			Title:    "Books",
			Identity: IdentityFromContext(r.Context()),
			Error:    apperrors.UserMessage(err),
			Data:     booksPageData{Category: category},
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "books", PageData{
		Title:    "Books",
		Identity: IdentityFromContext(r.Context()),
		Error:    formError,
		Data: booksPageData{
			Books:      page.Books,
			Pagination: page.Pagination,
			Category:   category,
		},
	})
}

// BookCreate adds a catalog entry from the list page's form.
func (h *CatalogHandlers) BookCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderBooks(w, r, "Could not read the submitted form.")
		return
	}

	quantity, _ := strconv.Atoi(r.PostFormValue("quantity"))
	req := model.CreateBookRequest{
		Title:      r.PostFormValue("title"),
		Author:     r.PostFormValue("author"),
		CategoryID: r.PostFormValue("category_id"),
		Status:     model.BookStatus(r.PostFormValue("status")),
		Quantity:   quantity,
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Catalog.CreateBook(r.Context(), sess, req); err != nil {
		h.renderBooks(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// BookUpdate patches a catalog entry. Empty form fields are left alone.
func (h *CatalogHandlers) BookUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderBooks(w, r, "Could not read the submitted form.")
		return
	}

	req := model.UpdateBookRequest{
		Title:      optString(r, "title"),
		Author:     optString(r, "author"),
		CategoryID: optString(r, "category_id"),
		Quantity:   optInt(r, "quantity"),
	}
	if v := r.PostFormValue("status"); v != "" {
		status := model.BookStatus(v)
		req.Status = &status
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Catalog.UpdateBook(r.Context(), sess, r.PathValue("id"), req); err != nil {
		h.renderBooks(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// BookDelete removes a catalog entry.
func (h *CatalogHandlers) BookDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := h.Catalog.DeleteBook(r.Context(), sess, r.PathValue("id")); err != nil {
		h.renderBooks(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

type categoriesPageData struct {
	Categories []model.Category
	Pagination model.Pagination
	LibraryID  string
}

// CategoriesList shows the categories for a library branch.
func (h *CatalogHandlers) CategoriesList(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, "")
}

func (h *CatalogHandlers) renderCategories(w http.ResponseWriter, r *http.Request, formError string) {
	sess := SessionFromContext(r.Context())
	libraryID := r.URL.Query().Get("library")

	categories, pagination, err := h.Catalog.ListCategories(r.Context(), sess, libraryID, listOptionsFromQuery(r))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list categories failed", "error", err)
		h.Render.Page(w, http.StatusBadGateway, "categories", PageData{
			Title:    "Categories",
			Identity: IdentityFromContext(r.Context()),
			Error:    apperrors.UserMessage(err),
			Data:     categoriesPageData{LibraryID: libraryID},
		})
		return
	}

	h.Render.Page(w, http.StatusOK, "categories", PageData{
		Title:    "Categories",
		Identity: IdentityFromContext(r.Context()),
		Error:    formError,
		Data: categoriesPageData{
			Categories: categories,
			Pagination: pagination,
			LibraryID:  libraryID,
		},
	})
}

// CategoryCreate adds a category from the list page's form.
func (h *CatalogHandlers) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderCategories(w, r, "Could not read the submitted form.")
		return
	}

	req := model.CreateCategoryRequest{
		Name:      r.PostFormValue("name"),
		LibraryID: r.PostFormValue("library_id"),
	}

	sess := SessionFromContext(r.Context())
	if _, err := h.Catalog.CreateCategory(r.Context(), sess, req); err != nil {
		h.renderCategories(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// CategoryDelete removes a category.
func (h *CatalogHandlers) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := h.Catalog.DeleteCategory(r.Context(), sess, r.PathValue("id")); err != nil {
		h.renderCategories(w, r, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
