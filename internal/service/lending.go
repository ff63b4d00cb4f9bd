package service

import (
	"context"
	"fmt"

	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
	"github.com/openshelf/library-admin/internal/domain/model"
	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/ports"
)

// LendingService exposes the lending desk operations.
type LendingService struct {
	desk ports.LendingDesk
}

// NewLendingService constructs a LendingService.
func NewLendingService(desk ports.LendingDesk) *LendingService {
	return &LendingService{desk: desk}
}

// LendBook validates and records a lending transaction.
func (s *LendingService) LendBook(
	ctx context.Context,
	sess *domainauth.Session,
	bookID string,
	req model.LendBookRequest,
) (model.LendRecord, error) {
	if bookID == "" {
		return model.LendRecord{}, apperrors.Validation("book is required")
	}
	if err := req.Validate(); err != nil {
		return model.LendRecord{}, apperrors.Validation(err.Error())
	}
	record, err := s.desk.LendBook(ctx, sess.UpstreamCookie, bookID, req)
	if err != nil {
		return model.LendRecord{}, fmt.Errorf("lend book: %w", err)
	}
	return record, nil
}

// ListLends lists lending records.
func (s *LendingService) ListLends(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.ListOptions,
) (ports.LendPage, error) {
	return s.desk.ListLends(ctx, sess.UpstreamCookie, opts)
}
