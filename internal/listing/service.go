// File: internal/listing/service.go
package listing

import (
	"context"
	"strings"

	"habitalink_backend/internal/common"
	"habitalink_backend/internal/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// DefaultLocation is used when a create request carries no location. A
// deliberate fallback, not an error.
const DefaultLocation = "Sevilla"

// VisitTracker records a listing detail view. Implementations are best
// effort and must not fail the read path.
type VisitTracker interface {
	TrackVisit(ctx context.Context, listingID uuid.UUID)
}

// CreateInput carries the plain field map handed over by the HTTP layer.
// Numeric fields arrive as text (multipart form values); missing or
// malformed values take their documented defaults.
type CreateInput struct {
	Title           string
	Description     string
	Price           string
	Area            string
	Bedrooms        string
	Bathrooms       string
	Category        string
	Location        string
	Latitude        string
	Longitude       string
	Characteristics *string  // raw text: JSON array, comma list or plain
	Images          []string // ordered upload paths, first becomes primary
}

// Service defines listing business operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Listing, error)
	GetAll(ctx context.Context) ([]Listing, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, in UpdateInput) (*Listing, error)
	SetStatus(ctx context.Context, id uuid.UUID, status ListingStatus) error
	Delete(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo   Repository
	visits VisitTracker
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new listing service.
func NewService(repo Repository, visits VisitTracker, cfg *config.Config, logger *zap.Logger) Service {
	return &service{repo: repo, visits: visits, cfg: cfg, logger: logger.Named("ListingService")}
}

// Create builds the listing record with documented defaults and persists it
// atomically. New listings always start pending; only an administrative
// status change makes them visible.
func (s *service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Listing, error) {
	if userID == uuid.Nil {
		return nil, common.ErrBadRequest.WithDetails("An owning user is required.")
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = DefaultLocation
	}

	lat := parseFloatOr(in.Latitude, 0)
	lon := parseFloatOr(in.Longitude, 0)

	l := &Listing{
		UserID:          userID,
		Title:           in.Title,
		Slug:            slug.Make(in.Title),
		Description:     in.Description,
		Price:           parseFloatOr(in.Price, 0),
		Area:            parseFloatOr(in.Area, 0),
		Bedrooms:        parseIntOr(in.Bedrooms, 0),
		Bathrooms:       parseIntOr(in.Bathrooms, 0),
		Category:        in.Category,
		Location:        location,
		Latitude:        &lat,
		Longitude:       &lon,
		Status:          StatusPending,
		Characteristics: decodeCharacteristics(in.Characteristics),
		Images:          in.Images,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("Listing created",
		zap.String("listingID", l.ID.String()),
		zap.String("userID", userID.String()),
		zap.Int("images", len(l.Images)))
	return l, nil
}

func (s *service) GetAll(ctx context.Context) ([]Listing, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error) {
	return s.repo.GetByUser(ctx, userID)
}

// GetByID fetches a normalized listing and records the visit best effort.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.visits != nil {
		s.visits.TrackVisit(ctx, id)
	}
	return l, nil
}

// Update applies a partial update after an ownership check, then returns the
// refreshed record.
func (s *service) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, in UpdateInput) (*Listing, error) {
	if err := s.authorize(ctx, callerID, isAdmin, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status ListingStatus) error {
	return s.repo.SetStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if err := s.authorize(ctx, callerID, isAdmin, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) authorize(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return nil
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l.UserID != callerID {
		return common.ErrForbidden.WithDetails("You do not own this listing.")
	}
	return nil
}

// decodeCharacteristics accepts whatever shape the client sent: a JSON array
// string, a comma list, or nothing.
func decodeCharacteristics(raw *string) []string {
	if raw == nil {
		return nil
	}
	return DecodeStringList(raw)
}
