// File: internal/admin/service.go
package admin

import (
	"context"

	"habitalink_backend/internal/listing"
	"habitalink_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for admin-panel operations. It composes the
// user and listing layers rather than owning write paths of its own.
type Service interface {
	ListUsers(ctx context.Context) ([]user.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListProperties(ctx context.Context) ([]PropertyRow, error)
	UpdateListingStatus(ctx context.Context, id uuid.UUID, status listing.ListingStatus) error
}

type service struct {
	repo     Repository
	users    user.Repository
	listings listing.Service
	logger   *zap.Logger
}

// NewService creates a new admin service.
func NewService(repo Repository, users user.Repository, listings listing.Service, logger *zap.Logger) Service {
	return &service{repo: repo, users: users, listings: listings, logger: logger.Named("AdminService")}
}

func (s *service) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]user.UserResponse, len(all))
	for i := range all {
		out[i] = user.ToUserResponse(&all[i])
	}
	return out, nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted by admin", zap.String("userID", id.String()))
	return nil
}

func (s *service) ListProperties(ctx context.Context) ([]PropertyRow, error) {
	return s.repo.ListProperties(ctx)
}

func (s *service) UpdateListingStatus(ctx context.Context, id uuid.UUID, status listing.ListingStatus) error {
	return s.listings.SetStatus(ctx, id, status)
}
