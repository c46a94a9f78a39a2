// File: internal/admin/repository.go
package admin

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyRow is a flattened listing row for the admin panel, joined with the
// owner's name so the panel does not issue one lookup per listing.
type PropertyRow struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
}

// Repository defines the admin-panel read queries.
type Repository interface {
	ListProperties(ctx context.Context) ([]PropertyRow, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM admin repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// ListProperties returns every listing with its owner's first name. Listings
// whose owner row is gone still appear, with an empty owner.
func (r *gormRepository) ListProperties(ctx context.Context) ([]PropertyRow, error) {
	var rows []PropertyRow
	err := r.db.WithContext(ctx).
		Table("listings AS l").
		Select("l.id, l.title, l.location, l.price, l.category, l.status, l.description, COALESCE(u.first_name, '') AS owner").
		Joins("LEFT JOIN users u ON u.id = l.user_id").
		Order("l.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
