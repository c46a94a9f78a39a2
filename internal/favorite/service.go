// File: internal/favorite/service.go
package favorite

import (
	"context"
	"strings"

	"habitalink_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for favorite operations.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	Add(ctx context.Context, userID uuid.UUID, listingID string) error
	Remove(ctx context.Context, userID uuid.UUID, listingID string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new favorite service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("FavoriteService")}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.repo.ListForUser(ctx, userID.String())
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, listingID string) error {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return common.ErrBadRequest.WithDetails("A listing ID is required.")
	}
	if err := s.repo.Add(ctx, userID.String(), listingID); err != nil {
		s.logger.Error("Failed to add favorite",
			zap.String("userID", userID.String()),
			zap.String("listingID", listingID),
			zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save favorite.")
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, listingID string) (bool, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return false, common.ErrBadRequest.WithDetails("A listing ID is required.")
	}
	return s.repo.Remove(ctx, userID.String(), listingID)
}
