package service

import (
	"context"
	"fmt"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

// DirectoryService exposes the staff-management and library-branch
// screens' operations.
type DirectoryService struct {
	staff     ports.StaffDirectory
	libraries ports.LibraryRegistry
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(staff ports.StaffDirectory, libraries ports.LibraryRegistry) *DirectoryService {
	return &DirectoryService{staff: staff, libraries: libraries}
}

// ListUsers lists staff accounts with optional substring search.
func (s *DirectoryService) ListUsers(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.ListOptions,
	search string,
) (ports.UserPage, error) {
	return s.staff.ListUsers(ctx, sess.UpstreamCookie, opts, search)
}

// CreateUser validates and provisions a staff account.
func (s *DirectoryService) CreateUser(
	ctx context.Context,
	sess *domainauth.Session,
	req model.CreateUserRequest,
) (model.User, error) {
	if err := req.Validate(); err != nil {
		return model.User{}, apperrors.Validation(err.Error())
	}
	user, err := s.staff.CreateUser(ctx, sess.UpstreamCookie, req)
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser patches a staff account.
func (s *DirectoryService) UpdateUser(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.UpdateUserRequest,
) (model.User, error) {
	if !req.HasUpdates() {
		return model.User{}, apperrors.Validation("at least one field must be updated")
	}
	user, err := s.staff.UpdateUser(ctx, sess.UpstreamCookie, id, req)
	if err != nil {
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a staff account. Self-deletion is refused here so
// an admin cannot saw off the branch they are sitting on.
func (s *DirectoryService) DeleteUser(ctx context.Context, sess *domainauth.Session, id string) error {
	if id == sess.Identity.ID {
		return apperrors.Validation("you cannot delete your own account")
	}
	if err := s.staff.DeleteUser(ctx, sess.UpstreamCookie, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListLibraries lists all branches.
func (s *DirectoryService) ListLibraries(ctx context.Context, sess *domainauth.Session) ([]model.Library, error) {
	return s.libraries.ListLibraries(ctx, sess.UpstreamCookie)
}

// CreateLibrary validates and creates a branch.
func (s *DirectoryService) CreateLibrary(
	ctx context.Context,
	sess *domainauth.Session,
	req model.CreateLibraryRequest,
) (model.Library, error) {
	if err := req.Validate(); err != nil {
		return model.Library{}, apperrors.Validation(err.Error())
	}
	library, err := s.libraries.CreateLibrary(ctx, sess.UpstreamCookie, req)
	if err != nil {
		return model.Library{}, fmt.Errorf("create library: %w", err)
	}
	return library, nil
}

// UpdateLibrary patches a branch.
func (s *DirectoryService) UpdateLibrary(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.UpdateLibraryRequest,
) (model.Library, error) {
	if !req.HasUpdates() {
		return model.Library{}, apperrors.Validation("at least one field must be updated")
	}
	library, err := s.libraries.UpdateLibrary(ctx, sess.UpstreamCookie, id, req)
	if err != nil {
		return model.Library{}, fmt.Errorf("update library: %w", err)
	}
	return library, nil
}

// DeleteLibrary removes a branch.
func (s *DirectoryService) DeleteLibrary(ctx context.Context, sess *domainauth.Session, id string) error {
	if err := s.libraries.DeleteLibrary(ctx, sess.UpstreamCookie, id); err != nil {
		return fmt.Errorf("delete library: %w", err)
	}
	return nil
}
