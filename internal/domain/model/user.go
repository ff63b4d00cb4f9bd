package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

// User is a staff account as managed through the admin screens.
type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domainauth.Role `json:"role"`
	LibraryID string          `json:"library_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserStats carries the per-role account counts the upstream API
// attaches to staff listings.
type UserStats struct {
	SuperAdmins int `json:"superAdmins"`
	Admins      int `json:"admins"`
	Users       int `json:"users"`
}

// CreateUserRequest carries the fields for provisioning a staff account.
// New accounts are issued a starter password upstream and flagged for a
// forced reset on first login.
type CreateUserRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      domainauth.Role `json:"role"`
	LibraryID string          `json:"library_id,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.Password) == "" {
		return errors.New("password is required")
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	if r.Role != domainauth.RoleSuperAdmin && strings.TrimSpace(r.LibraryID) == "" {
		return errors.New("library_id is required for non-superAdmin accounts")
	}
	return nil
}

// UpdateUserRequest carries optional fields for updating a staff account.
type UpdateUserRequest struct {
	Name      *string          `json:"name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Role      *domainauth.Role `json:"role,omitempty"`
	LibraryID *string          `json:"library_id,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Role != nil || r.LibraryID != nil
}
