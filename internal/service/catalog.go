package service

import (
	"context"
	"fmt"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

// CatalogService exposes the book and category screens' operations.
// Every call replays the caller's upstream credential; handlers only
// reach this after guard approval, so no unauthenticated request can
// trigger upstream traffic.
type CatalogService struct {
	books      ports.BookCatalog
	categories ports.CategoryCatalog
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(books ports.BookCatalog, categories ports.CategoryCatalog) *CatalogService {
	return &CatalogService{books: books, categories: categories}
}

// ListBooks lists the whole catalog, or one category when categoryID is
// set.
func (s *CatalogService) ListBooks(
	ctx context.Context,
	sess *domainauth.Session,
	categoryID string,
	opts model.ListOptions,
) (ports.BookPage, error) {
	if categoryID == "" {
		return s.books.ListBooks(ctx, sess.UpstreamCookie, opts)
	}
	return s.books.ListBooksByCategory(ctx, sess.UpstreamCookie, categoryID, opts)
}

// CreateBook validates and creates a catalog entry.
func (s *CatalogService) CreateBook(
	ctx context.Context,
	sess *domainauth.Session,
	req model.CreateBookRequest,
) (model.Book, error) {
	if err := req.Validate(); err != nil {
		return model.Book{}, apperrors.Validation(err.Error())
	}
	book, err := s.books.CreateBook(ctx, sess.UpstreamCookie, req)
	if err != nil {
		return model.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// UpdateBook patches a catalog entry.
func (s *CatalogService) UpdateBook(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.UpdateBookRequest,
) (model.Book, error) {
	if !req.HasUpdates() {
		return model.Book{}, apperrors.Validation("at least one field must be updated")
	}
	book, err := s.books.UpdateBook(ctx, sess.UpstreamCookie, id, req)
	if err != nil {
		return model.Book{}, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a catalog entry.
func (s *CatalogService) DeleteBook(ctx context.Context, sess *domainauth.Session, id string) error {
	if err := s.books.DeleteBook(ctx, sess.UpstreamCookie, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// ListCategories lists a library's categories.
func (s *CatalogService) ListCategories(
	ctx context.Context,
	sess *domainauth.Session,
	libraryID string,
	opts model.ListOptions,
) ([]model.Category, model.Pagination, error) {
	if libraryID == "" {
		// Library-scoped accounts browse their own branch by default.
		libraryID = sess.Identity.LibraryID
	}
	if libraryID == "" {
		return nil, model.Pagination{}, apperrors.Validation("library is required")
	}
	return s.categories.ListCategories(ctx, sess.UpstreamCookie, libraryID, opts)
}

// CreateCategory validates and creates a category.
func (s *CatalogService) CreateCategory(
	ctx context.Context,
	sess *domainauth.Session,
	req model.CreateCategoryRequest,
) (model.Category, error) {
	if req.LibraryID == "" {
		req.LibraryID = sess.Identity.LibraryID
	}
	if err := req.Validate(); err != nil {
		return model.Category{}, apperrors.Validation(err.Error())
	}
	category, err := s.categories.CreateCategory(ctx, sess.UpstreamCookie, req)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, sess *domainauth.Session, id string) error {
	if err := s.categories.DeleteCategory(ctx, sess.UpstreamCookie, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
