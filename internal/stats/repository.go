// File: internal/stats/repository.go
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for statistics data operations.
type Repository interface {
	IncrementVisits(ctx context.Context, listingID uuid.UUID, day time.Time) error
	IncrementContacts(ctx context.Context, listingID uuid.UUID, day time.Time) error
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	AgencyDaily(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]DailyActivity, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM statistics repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) IncrementVisits(ctx context.Context, listingID uuid.UUID, day time.Time) error {
	return r.increment(ctx, listingID, day, "visits", ListingStat{Visits: 1})
}

func (r *gormRepository) IncrementContacts(ctx context.Context, listingID uuid.UUID, day time.Time) error {
	return r.increment(ctx, listingID, day, "contacts", ListingStat{Contacts: 1})
}

// increment upserts the (listing, day) counter row, bumping the named column
// when the row already exists.
func (r *gormRepository) increment(ctx context.Context, listingID uuid.UUID, day time.Time, column string, row ListingStat) error {
	row.ListingID = listingID
	row.Date = truncateToDay(day)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "listing_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column+" + ?", 1),
		}),
	}).Create(&row).Error
}

func (r *gormRepository) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	var overview AdminOverview

	if err := r.db.WithContext(ctx).Table("users").Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("listings").Count(&overview.TotalListings).Error; err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Table("users").
		Select("account_type, COUNT(*) AS count").
		Group("account_type").
		Scan(&overview.UserDistribution).Error
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// AgencyDaily aggregates daily visits and contacts across all listings owned
// by the given user, from the since date onward. Day labels are formatted in
// Go rather than SQL so the query stays portable across dialects.
func (r *gormRepository) AgencyDaily(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]DailyActivity, error) {
	type dailyRow struct {
		Date     time.Time
		Visits   int64
		Contacts int64
	}

	var rows []dailyRow
	err := r.db.WithContext(ctx).
		Table("listing_stats AS s").
		Select("s.date AS date, SUM(s.visits) AS visits, SUM(s.contacts) AS contacts").
		Joins("JOIN listings l ON l.id = s.listing_id").
		Where("l.user_id = ? AND s.date >= ?", ownerID, truncateToDay(since)).
		Group("s.date").
		Order("s.date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]DailyActivity, len(rows))
	for i, row := range rows {
		out[i] = DailyActivity{
			Day:      row.Date.Format("02/01"),
			Visits:   row.Visits,
			Contacts: row.Contacts,
		}
	}
	return out, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
