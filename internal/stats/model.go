// File: internal/stats/model.go
package stats

import (
	"time"

	"github.com/google/uuid"
)

// ListingStat is a per-listing, per-day counter row. Visits and contacts are
// incremented in place via upsert, so there is at most one row per
// (listing, day) pair.
type ListingStat struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_date" json:"listing_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_listing_date" json:"date"`
	Visits    int       `gorm:"not null;default:0" json:"visits"`
	Contacts  int       `gorm:"not null;default:0" json:"contacts"`
}

// TableName specifies the table name for the ListingStat model.
func (ListingStat) TableName() string {
	return "listing_stats"
}

// AdminOverview aggregates platform-wide counts for the admin dashboard.
type AdminOverview struct {
	TotalUsers       int64              `json:"total_users"`
	TotalListings    int64              `json:"total_listings"`
	UserDistribution []AccountTypeCount `json:"user_distribution"`
}

// AccountTypeCount is one slice of the account-type distribution chart.
type AccountTypeCount struct {
	AccountType string `json:"account_type"`
	Count       int64  `json:"count"`
}

// DailyActivity is one day of aggregated visits and contacts across an
// owner's listings. Day is rendered as "dd/mm" for chart labels.
type DailyActivity struct {
	Day      string `json:"day"`
	Visits   int64  `json:"visits"`
	Contacts int64  `json:"contacts"`
}
