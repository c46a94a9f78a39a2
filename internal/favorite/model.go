// File: internal/favorite/model.go
package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is the canonical row shape. Legacy deployments may carry the same
// data under differently named tables or columns, which the repository probes
// for at query time, so this model is only authoritative for fresh databases.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ListingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}

// AddFavoriteRequest is the payload for marking a listing as favorite.
type AddFavoriteRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}
