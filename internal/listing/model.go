// File: internal/listing/model.go
package listing

import (
	"time"

	"habitalink_backend/internal/common"

	"github.com/google/uuid"
)

// --- Main Listing Model ---
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusActive   ListingStatus = "active"
	StatusExpired  ListingStatus = "expired"
	StatusRejected ListingStatus = "rejected"
)

// Listing is a real-estate advertisement row. The characteristics and images
// columns are raw legacy-encoded text (see codec.go); the decoded slices are
// populated by the repository on every read and are what callers consume.
type Listing struct {
	common.BaseModel
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	Title       string        `gorm:"type:varchar(255)"`
	Slug        string        `gorm:"type:varchar(255);index"`
	Description string        `gorm:"type:text"`
	Price       float64       `gorm:"type:numeric(12,2);not null;default:0"`
	Area        float64       `gorm:"type:numeric(10,2);not null;default:0"`
	Bedrooms    int           `gorm:"not null;default:0"`
	Bathrooms   int           `gorm:"not null;default:0"`
	Category    string        `gorm:"type:varchar(100)"` // free-form tag, e.g. "venta", "alquiler"
	Location    string        `gorm:"type:varchar(255);not null;default:'Sevilla'"`
	Latitude    *float64      `gorm:"type:decimal(10,8)"`
	Longitude   *float64      `gorm:"type:decimal(11,8)"`
	Status      ListingStatus `gorm:"type:varchar(50);not null;default:'pending'"`

	// Primary-image mirror for legacy single-image consumers. Always equals
	// the first element of the image sequence.
	PrimaryImageID *uuid.UUID `gorm:"type:uuid"`
	PrimaryImage   *Image     `gorm:"foreignKey:PrimaryImageID;references:ID"`

	RawImages          *string `gorm:"column:images;type:text"`
	RawCharacteristics *string `gorm:"column:characteristics;type:text"`

	// Decoded views of the raw columns. Not persisted.
	Images          []string `gorm:"-"`
	Characteristics []string `gorm:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

// --- Image Model ---

// Image is a stored photo reference, owned by the listing that created it.
// Orphaned rows are not garbage-collected by this layer.
type Image struct {
	common.BaseModel
	URL string `gorm:"type:text;not null"`
}

func (Image) TableName() string {
	return "images"
}

// --- DTOs for API ---

// AdminUpdateStatusRequest is the admin moderation payload.
type AdminUpdateStatusRequest struct {
	Status ListingStatus `json:"status" binding:"required,oneof=pending active expired rejected"`
}

// ListingResponse is the normalized wire shape: list-valued fields are always
// decoded arrays and coordinates are always numeric, 0.0 when unset. Callers
// must not read 0.0 as "unknown"; it is the documented default.
type ListingResponse struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug,omitempty"`
	Description     string        `json:"description"`
	Price           float64       `json:"price"`
	Area            float64       `json:"area"`
	Bedrooms        int           `json:"bedrooms"`
	Bathrooms       int           `json:"bathrooms"`
	Category        string        `json:"category"`
	Location        string        `json:"location"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	Status          ListingStatus `json:"status"`
	PrimaryImageURL string        `json:"primary_image_url,omitempty"`
	Images          []string      `json:"images"`
	Characteristics []string      `json:"characteristics"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ToListingResponse converts a normalized Listing to its response DTO.
func ToListingResponse(l *Listing) ListingResponse {
	resp := ListingResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		Title:           l.Title,
		Slug:            l.Slug,
		Description:     l.Description,
		Price:           l.Price,
		Area:            l.Area,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		Category:        l.Category,
		Location:        l.Location,
		Status:          l.Status,
		Images:          l.Images,
		Characteristics: l.Characteristics,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.Latitude != nil {
		resp.Latitude = *l.Latitude
	}
	if l.Longitude != nil {
		resp.Longitude = *l.Longitude
	}
	if l.PrimaryImage != nil {
		resp.PrimaryImageURL = l.PrimaryImage.URL
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if resp.Characteristics == nil {
		resp.Characteristics = []string{}
	}
	return resp
}

// ToListingResponses maps a slice of listings.
func ToListingResponses(listings []Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i := range listings {
		out[i] = ToListingResponse(&listings[i])
	}
	return out
}
