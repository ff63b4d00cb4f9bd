package libraryapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openshelf/library-admin/internal/domain/model"
	"github.com/openshelf/library-admin/internal/ports"
)

var (
	_ ports.LibraryRegistry = (*Client)(nil)
	_ ports.StaffDirectory  = (*Client)(nil)
	_ ports.LendingDesk     = (*Client)(nil)
)

type libraryListEnvelope struct {
	Libraries []model.Library `json:"libraries"`
}

type libraryEnvelope struct {
	Library model.Library `json:"library"`
}

// ListLibraries fetches all branches. GET /superAdmin/library.
func (c *Client) ListLibraries(ctx context.Context, cookie string) ([]model.Library, error) {
	var envelope libraryListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/superAdmin/library",
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Libraries, nil
}

// GetLibrary fetches one branch. GET /superAdmin/library/{id}.
func (c *Client) GetLibrary(ctx context.Context, cookie, id string) (model.Library, error) {
	var envelope libraryEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/superAdmin/library/" + url.PathEscape(id),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return model.Library{}, err
	}
	return envelope.Library, nil
}

// CreateLibrary adds a branch. POST /superAdmin/library.
func (c *Client) CreateLibrary(
	ctx context.Context,
	cookie string,
	req model.CreateLibraryRequest,
) (model.Library, error) {
	var envelope libraryEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/superAdmin/library",
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.Library{}, err
	}
	return envelope.Library, nil
}

// UpdateLibrary patches a branch. PATCH /superAdmin/library/{id}.
func (c *Client) UpdateLibrary(
	ctx context.Context,
	cookie, id string,
	req model.UpdateLibraryRequest,
) (model.Library, error) {
	var envelope libraryEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPatch,
		path:   "/superAdmin/library/" + url.PathEscape(id),
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.Library{}, err
	}
	return envelope.Library, nil
}

// DeleteLibrary removes a branch. DELETE /superAdmin/library/{id}.
func (c *Client) DeleteLibrary(ctx context.Context, cookie, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/superAdmin/library/" + url.PathEscape(id),
		cookie: cookie,
	}, nil)
}

type userListEnvelope struct {
	Users      []model.User      `json:"users"`
	Stats      model.UserStats   `json:"stats"`
	Pagination paginationPayload `json:"pagination"`
}

type singleUserEnvelope struct {
	User model.User `json:"user"`
}

// ListUsers fetches one page of staff accounts with role stats.
// GET /user-management/users.
func (c *Client) ListUsers(
	ctx context.Context,
	cookie string,
	opts model.ListOptions,
	search string,
) (ports.UserPage, error) {
	opts.Normalize()
	query := pageQuery(opts.Page, opts.Limit)
	if search != "" {
		query.Set("search", search)
	}

	var envelope userListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/user-management/users",
		query:  query,
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return ports.UserPage{}, err
	}
	return ports.UserPage{
		Users:      envelope.Users,
		Stats:      envelope.Stats,
		Pagination: envelope.Pagination.toModel(),
	}, nil
}

// GetUser fetches one staff account. GET /user-management/users/{id}.
func (c *Client) GetUser(ctx context.Context, cookie, id string) (model.User, error) {
	var envelope singleUserEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/user-management/users/" + url.PathEscape(id),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return model.User{}, err
	}
	return envelope.User, nil
}

// CreateUser provisions a staff account. POST /user-management/users.
func (c *Client) CreateUser(
	ctx context.Context,
	cookie string,
	req model.CreateUserRequest,
) (model.User, error) {
	var envelope singleUserEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/user-management/users",
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.User{}, err
	}
	return envelope.User, nil
}

// UpdateUser patches a staff account. PATCH /user-management/users/{id}.
func (c *Client) UpdateUser(
	ctx context.Context,
	cookie, id string,
	req model.UpdateUserRequest,
) (model.User, error) {
	var envelope singleUserEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPatch,
		path:   "/user-management/users/" + url.PathEscape(id),
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.User{}, err
	}
	return envelope.User, nil
}

// DeleteUser removes a staff account. DELETE /user-management/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, cookie, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/user-management/users/" + url.PathEscape(id),
		cookie: cookie,
	}, nil)
}

type lendListEnvelope struct {
	Lends      []model.LendRecord `json:"lends"`
	Pagination paginationPayload  `json:"pagination"`
}

type lendEnvelope struct {
	Lend model.LendRecord `json:"lend"`
}

// LendBook records a lending transaction. POST /lending-book/lending/{bookID}.
func (c *Client) LendBook(
	ctx context.Context,
	cookie, bookID string,
	req model.LendBookRequest,
) (model.LendRecord, error) {
	var envelope lendEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/lending-book/lending/" + url.PathEscape(bookID),
		cookie: cookie,
		body:   req,
	}, &envelope)
	if err != nil {
		return model.LendRecord{}, err
	}
	return envelope.Lend, nil
}

// ListLends fetches one page of lending records. GET /lending-book/lending.
func (c *Client) ListLends(
	ctx context.Context,
	cookie string,
	opts model.ListOptions,
) (ports.LendPage, error) {
	opts.Normalize()
	var envelope lendListEnvelope
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/lending-book/lending",
		query:  pageQuery(opts.Page, opts.Limit),
		cookie: cookie,
	}, &envelope)
	if err != nil {
		return ports.LendPage{}, err
	}
	return ports.LendPage{Records: envelope.Lends, Pagination: envelope.Pagination.toModel()}, nil
}
