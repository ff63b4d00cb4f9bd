package libraryapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openshelf/library-admin/internal/domain/model"
	"github.com/openshelf/library-admin/internal/ports"
)

var (
	_ ports.BookCatalog     = (*Client)(nil)
	_ ports.CategoryCatalog = (*Client)(nil)
)

// paginationPayload is the upstream paging envelope. The total count
// field is named per resource (totalBooks, totalUsers, ...); whichever
// is present wins.
type paginationPayload struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalBooks int `json:"totalBooks"`
	TotalUsers int `json:"totalUsers"`
	TotalLends int `json:"totalLends"`
	TotalItems int `json:"totalItems"`
}

func (p paginationPayload) toModel() model.Pagination {
	total := p.TotalItems
	for _, candidate := range []int{p.TotalBooks, p.TotalUsers, p.TotalLends} {
		if total == 0 && candidate > 0 {
			total = candidate
		}
	}
	return model.Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		TotalItems: total,
	}
}

type bookListEnvelope struct {
	Books      []model.Book      `json:"books"`
	Pagination paginationPayload `json:"pagination"`
}

type bookEnvelope struct {
	Book model.Book `json:"book"`
}

// ListBooks fetches one page of the whole catalog.
// GET /book-management/books.
func (c *Client) ListBooks(ctx context.Context, cookie string, opts model.ListOptions) (ports.BookPage, error) {
	opts.Normalize()
	var envelope bookListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/book-management/books",
		query:  pageQuery(opts.Page, opts.Limit),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return ports.BookPage{}, err
	}
	return ports.BookPage{Books: envelope.Books, Pagination: envelope.Pagination.toModel()}, nil
}

// ListBooksByCategory fetches one page of a category's books.
// GET /book-management/books/{categoryID}.
func (c *Client) ListBooksByCategory(
	ctx context.Context,
	cookie, categoryID string,
	opts model.ListOptions,
) (ports.BookPage, error) {
	opts.Normalize()
	var envelope bookListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/book-management/books/" + url.PathEscape(categoryID),
		query:  pageQuery(opts.Page, opts.Limit),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return ports.BookPage{}, err
	}
	return ports.BookPage{Books: envelope.Books, Pagination: envelope.Pagination.toModel()}, nil
}

// CreateBook adds a catalog entry. POST /book-management/books.
func (c *Client) CreateBook(
	ctx context.Context,
	cookie string,
	req model.CreateBookRequest,
) (model.Book, error) {
	var envelope bookEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/book-management/books",
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.Book{}, err
	}
	return envelope.Book, nil
}

// UpdateBook patches a catalog entry. PATCH /book-management/books/{id}.
func (c *Client) UpdateBook(
	ctx context.Context,
	cookie, id string,
	req model.UpdateBookRequest,
) (model.Book, error) {
	var envelope bookEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPatch,
		path:   "/book-management/books/" + url.PathEscape(id),
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.Book{}, err
	}
	return envelope.Book, nil
}

// DeleteBook removes a catalog entry. DELETE /book-management/books/{id}.
func (c *Client) DeleteBook(ctx context.Context, cookie, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/book-management/books/" + url.PathEscape(id),
		cookie: cookie,
	}, nil)
}

type categoryListEnvelope struct {
	Categories []model.Category  `json:"categories"`
	Pagination paginationPayload `json:"pagination"`
}

type categoryEnvelope struct {
	Category model.Category `json:"category"`
}

// ListCategories fetches one page of a library's categories.
// GET /category-management/category/{libraryID}.
func (c *Client) ListCategories(
	ctx context.Context,
	cookie, libraryID string,
	opts model.ListOptions,
) ([]model.Category, model.Pagination, error) {
	opts.Normalize()
	var envelope categoryListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/category-management/category/" + url.PathEscape(libraryID),
		query:  pageQuery(opts.Page, opts.Limit),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return envelope.Categories, envelope.Pagination.toModel(), nil
}

// CreateCategory adds a category. POST /category-management/category.
func (c *Client) CreateCategory(
	ctx context.Context,
	cookie string,
	req model.CreateCategoryRequest,
) (model.Category, error) {
	var envelope categoryEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/category-management/category",
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.Category{}, err
	}
	return envelope.Category, nil
}

// DeleteCategory removes a category. DELETE /category-management/category/{id}.
func (c *Client) DeleteCategory(ctx context.Context, cookie, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/category-management/category/" + url.PathEscape(id),
		cookie: cookie,
	}, nil)
}
