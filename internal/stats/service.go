// File: internal/stats/service.go
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// agencyWindowDays is how far back the agency dashboard reaches.
const agencyWindowDays = 30

// Service defines the interface for statistics operations. TrackVisit and
// TrackContact are fire-and-forget counters: failures are logged, never
// returned, so a broken stats table cannot break a listing read.
type Service interface {
	TrackVisit(ctx context.Context, listingID uuid.UUID)
	TrackContact(ctx context.Context, listingID uuid.UUID)
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	AgencyDaily(ctx context.Context, ownerID uuid.UUID) ([]DailyActivity, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new statistics service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("StatsService")}
}

func (s *service) TrackVisit(ctx context.Context, listingID uuid.UUID) {
	if err := s.repo.IncrementVisits(ctx, listingID, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to record visit", zap.String("listingID", listingID.String()), zap.Error(err))
	}
}

func (s *service) TrackContact(ctx context.Context, listingID uuid.UUID) {
	if err := s.repo.IncrementContacts(ctx, listingID, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to record contact", zap.String("listingID", listingID.String()), zap.Error(err))
	}
}

func (s *service) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	return s.repo.AdminOverview(ctx)
}

func (s *service) AgencyDaily(ctx context.Context, ownerID uuid.UUID) ([]DailyActivity, error) {
	since := time.Now().UTC().AddDate(0, 0, -agencyWindowDays)
	return s.repo.AgencyDaily(ctx, ownerID, since)
}
