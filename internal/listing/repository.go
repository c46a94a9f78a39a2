// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"habitalink_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for listing data operations.
//
// Concurrency note: concurrent updates to the same listing are
// last-writer-wins at the row level; there is no version check. Create and
// Update each hold exactly one transaction for their full duration.
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	GetAll(ctx context.Context) ([]Listing, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) error
	SetStatus(ctx context.Context, id uuid.UUID, status ListingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateInput is a partial update: nil fields retain their stored values.
// Numeric fields arrive as raw text and are safe-parsed against the stored
// row, so malformed input keeps the prior value rather than zeroing it.
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *string
	Area        *string
	Bedrooms    *string
	Bathrooms   *string
	Category    *string
	Location    *string
	Latitude    *string
	Longitude   *string
	// Characteristics: nil leaves the column untouched; an empty non-nil
	// slice clears it.
	Characteristics []string
	// Images: a non-empty slice inserts a new primary-image row and
	// overwrites the sequence. Previously referenced image rows are kept.
	Images []string
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a listing and, when images are present, the primary-image
// row, inside a single transaction. The identifier is only visible to callers
// after commit; on any step failure the transaction rolls back in full and
// the underlying error is surfaced unmodified.
func (r *gormRepository) Create(ctx context.Context, l *Listing) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(l.Images) > 0 {
			img := Image{URL: l.Images[0]}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("failed to create image record: %w", err)
			}
			l.PrimaryImageID = &img.ID
			l.PrimaryImage = &img
		}

		l.RawImages = EncodeStringList(l.Images)
		l.RawCharacteristics = EncodeStringList(l.Characteristics)

		if err := tx.Omit(clause.Associations).Create(l).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		return nil
	})
	if err != nil {
		// Do not leak identifiers for rows that never became visible.
		l.PrimaryImageID = nil
		l.PrimaryImage = nil
		return err
	}
	return nil
}

// GetAll retrieves every listing, most recently created first, normalized.
func (r *gormRepository) GetAll(ctx context.Context) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Preload("PrimaryImage").
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	for i := range listings {
		normalize(&listings[i])
	}
	return listings, nil
}

// GetByUser retrieves a user's listings, most recently created first.
func (r *gormRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Preload("PrimaryImage").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	for i := range listings {
		normalize(&listings[i])
	}
	return listings, nil
}

// GetByID retrieves a single normalized listing.
func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).
		Preload("PrimaryImage").
		First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	normalize(&l)
	return &l, nil
}

// Update applies a partial update inside a transaction. The pre-update row is
// read first so safe-parse fallbacks have a value to fall back to, and so a
// missing row fails with not-found before any write is attempted.
func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, in UpdateInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Listing
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound.WithDetails("Listing not found.")
			}
			return err
		}

		updates := map[string]interface{}{}

		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Price != nil {
			updates["price"] = parseFloatOr(*in.Price, current.Price)
		}
		if in.Area != nil {
			updates["area"] = parseFloatOr(*in.Area, current.Area)
		}
		if in.Bedrooms != nil {
			updates["bedrooms"] = parseIntOr(*in.Bedrooms, current.Bedrooms)
		}
		if in.Bathrooms != nil {
			updates["bathrooms"] = parseIntOr(*in.Bathrooms, current.Bathrooms)
		}
		if in.Category != nil {
			updates["category"] = *in.Category
		}
		if in.Location != nil {
			updates["location"] = *in.Location
		}
		if in.Latitude != nil {
			updates["latitude"] = parseFloatOr(*in.Latitude, derefFloat(current.Latitude))
		}
		if in.Longitude != nil {
			updates["longitude"] = parseFloatOr(*in.Longitude, derefFloat(current.Longitude))
		}
		if in.Characteristics != nil {
			updates["characteristics"] = EncodeStringList(in.Characteristics)
		}
		if len(in.Images) > 0 {
			img := Image{URL: in.Images[0]}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("failed to create image record: %w", err)
			}
			updates["primary_image_id"] = img.ID
			updates["images"] = EncodeStringList(in.Images)
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&Listing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}
		return nil
	})
}

// SetStatus updates the lifecycle status of a listing.
func (r *gormRepository) SetStatus(ctx context.Context, id uuid.UUID, status ListingStatus) error {
	result := r.db.WithContext(ctx).Model(&Listing{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found.")
	}
	return nil
}

// Delete removes a listing by ID. Hard removal; image rows are not cleaned up.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found.")
	}
	return nil
}

// normalize populates the decoded views of the raw columns. Decoding never
// fails: characteristics fall back to comma-splitting the raw text; images
// fall back to the mirrored primary image.
func normalize(l *Listing) {
	l.Characteristics = DecodeStringList(l.RawCharacteristics)

	var images []string
	if l.RawImages != nil && strings.TrimSpace(*l.RawImages) != "" {
		if decoded, ok := decodeJSONArray(*l.RawImages); ok {
			images = decoded
		}
	}
	if len(images) == 0 && l.PrimaryImage != nil {
		images = []string{l.PrimaryImage.URL}
	}
	if images == nil {
		images = []string{}
	}
	l.Images = images
}

// parseFloatOr converts raw text to a float, keeping the fallback on invalid
// input. Falling back to the stored value rather than zero means a bad price
// string can never silently zero a listing's price.
func parseFloatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseIntOr(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
