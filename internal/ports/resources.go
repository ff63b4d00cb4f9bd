package ports

import (
	"context"

	"github.com/openshelf/library-admin/internal/domain/model"
)

// BookPage is one page of catalog results.
type BookPage struct {
	Books      []model.Book
	Pagination model.Pagination
}

// UserPage is one page of staff accounts plus the role stats the
// upstream attaches to listings.
type UserPage struct {
	Users      []model.User
	Stats      model.UserStats
	Pagination model.Pagination
}

// LendPage is one page of lending records.
type LendPage struct {
	Records    []model.LendRecord
	Pagination model.Pagination
}

// BookCatalog exposes the upstream book-management endpoints. All calls
// replay the caller's upstream cookie; they are only reachable from
// guard-approved handlers.
type BookCatalog interface {
	ListBooks(ctx context.Context, cookie string, opts model.ListOptions) (BookPage, error)
	ListBooksByCategory(ctx context.Context, cookie, categoryID string, opts model.ListOptions) (BookPage, error)
	CreateBook(ctx context.Context, cookie string, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, cookie, id string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, cookie, id string) error
}

// CategoryCatalog exposes the upstream category-management endpoints.
type CategoryCatalog interface {
	ListCategories(ctx context.Context, cookie, libraryID string, opts model.ListOptions) ([]model.Category, model.Pagination, error)
	CreateCategory(ctx context.Context, cookie string, req model.CreateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, cookie, id string) error
}

// LibraryRegistry exposes the superAdmin library-branch endpoints.
type LibraryRegistry interface {
	ListLibraries(ctx context.Context, cookie string) ([]model.Library, error)
	GetLibrary(ctx context.Context, cookie, id string) (model.Library, error)
	CreateLibrary(ctx context.Context, cookie string, req model.CreateLibraryRequest) (model.Library, error)
	UpdateLibrary(ctx context.Context, cookie, id string, req model.UpdateLibraryRequest) (model.Library, error)
	DeleteLibrary(ctx context.Context, cookie, id string) error
}

// StaffDirectory exposes the upstream user-management endpoints.
type StaffDirectory interface {
	ListUsers(ctx context.Context, cookie string, opts model.ListOptions, search string) (UserPage, error)
	GetUser(ctx context.Context, cookie, id string) (model.User, error)
	CreateUser(ctx context.Context, cookie string, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, cookie, id string, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, cookie, id string) error
}

// LendingDesk exposes the upstream lending endpoints.
type LendingDesk interface {
	LendBook(ctx context.Context, cookie, bookID string, req model.LendBookRequest) (model.LendRecord, error)
	ListLends(ctx context.Context, cookie string, opts model.ListOptions) (LendPage, error)
}
