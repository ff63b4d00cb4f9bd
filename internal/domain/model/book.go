// Package model holds the resource types managed through the admin
// screens, mirroring the upstream API's wire shapes.
package model

import (
	"errors"
	"strings"
)

// BookStatus mirrors the upstream availability flag on a book.
type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusUnavailable BookStatus = "unavailable"
)

// Valid reports whether the status is a supported value.
func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusAvailable, BookStatusUnavailable:
		return true
	default:
		return false
	}
}

// Book is a catalog entry as returned by the upstream API.
type Book struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CategoryID string     `json:"category_id"`
	Status     BookStatus `json:"status"`
	Quantity   int        `json:"quantity"`
	ImageURL   string     `json:"image_url,omitempty"`
}

// CreateBookRequest carries the fields for creating a catalog entry.
type CreateBookRequest struct {
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CategoryID string     `json:"category_id"`
	Status     BookStatus `json:"status"`
	Quantity   int        `json:"quantity"`
}

// Validate validates CreateBookRequest.
func (r *CreateBookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Author) == "" {
		return errors.New("author is required")
	}
	if strings.TrimSpace(r.CategoryID) == "" {
		return errors.New("category_id is required")
	}
	if r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if r.Status != "" && !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// UpdateBookRequest carries optional fields for updating a catalog entry.
type UpdateBookRequest struct {
	Title      *string     `json:"title,omitempty"`
	Author     *string     `json:"author,omitempty"`
	CategoryID *string     `json:"category_id,omitempty"`
	Status     *BookStatus `json:"status,omitempty"`
	Quantity   *int        `json:"quantity,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateBookRequest) HasUpdates() bool {
	return r.Title != nil || r.Author != nil || r.CategoryID != nil || r.Status != nil || r.Quantity != nil
}
