package model

import (
	"errors"
	"strings"
	"time"
)

// LendRecord is one lending transaction as returned by the upstream API.
type LendRecord struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	Borrower   string     `json:"borrower"`
	LentAt     time.Time  `json:"lent_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Returned reports whether the book has come back.
func (l LendRecord) Returned() bool { return l.ReturnedAt != nil }

// LendBookRequest carries the fields for lending out a book.
type LendBookRequest struct {
	Borrower string    `json:"borrower"`
	DueAt    time.Time `json:"due_at"`
}

// Validate validates LendBookRequest.
func (r *LendBookRequest) Validate() error {
	if strings.TrimSpace(r.Borrower) == "" {
		return errors.New("borrower is required")
	}
	if r.DueAt.IsZero() {
		return errors.New("due_at is required")
	}
	return nil
}
