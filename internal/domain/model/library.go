package model

import (
	"errors"
	"strings"
)

// Library is a managed library branch. Only superAdmin accounts may
// create or modify branches.
type Library struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateLibraryRequest carries the fields for creating a branch.
type CreateLibraryRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate validates CreateLibraryRequest.
func (r *CreateLibraryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateLibraryRequest carries optional fields for updating a branch.
type UpdateLibraryRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateLibraryRequest) HasUpdates() bool {
	return r.Name != nil || r.Location != nil
}

// Category groups books within a library branch.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LibraryID string `json:"library_id"`
}

// CreateCategoryRequest carries the fields for creating a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	LibraryID string `json:"library_id"`
}

// Validate validates CreateCategoryRequest.
func (r *CreateCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.LibraryID) == "" {
		return errors.New("library_id is required")
	}
	return nil
}
