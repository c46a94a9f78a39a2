package stats

import (
	"context"
	"testing"
	"time"

	"habitalink_backend/internal/listing"
	"habitalink_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory sqlite database")

	err = db.AutoMigrate(&user.User{}, &listing.Image{}, &listing.Listing{}, &ListingStat{})
	require.NoError(t, err, "Failed to migrate test schema")
	return db
}

func TestRepository_IncrementVisits_UpsertsSameDay(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	listingID := uuid.New()
	day := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	require.NoError(t, repo.IncrementVisits(ctx, listingID, day))
	require.NoError(t, repo.IncrementVisits(ctx, listingID, day))
	require.NoError(t, repo.IncrementContacts(ctx, listingID, day))

	var rows []ListingStat
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "Same listing and day must collapse into one row")
	assert.Equal(t, 2, rows[0].Visits)
	assert.Equal(t, 1, rows[0].Contacts)
}

func TestRepository_IncrementVisits_SeparateDays(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	listingID := uuid.New()
	require.NoError(t, repo.IncrementVisits(ctx, listingID, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.IncrementVisits(ctx, listingID, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)))

	var count int64
	require.NoError(t, db.Model(&ListingStat{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRepository_AgencyDaily_AggregatesOwnListingsOnly(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	mine := &listing.Listing{UserID: owner, Title: "Mine"}
	other := &listing.Listing{UserID: uuid.New(), Title: "Other"}
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(other).Error)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.IncrementVisits(ctx, mine.ID, day))
	require.NoError(t, repo.IncrementVisits(ctx, mine.ID, day))
	require.NoError(t, repo.IncrementContacts(ctx, mine.ID, day))
	require.NoError(t, repo.IncrementVisits(ctx, other.ID, day))

	daily, err := repo.AgencyDaily(ctx, owner, day.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "30/08", daily[0].Day)
	assert.Equal(t, int64(2), daily[0].Visits)
	assert.Equal(t, int64(1), daily[0].Contacts)
}

func TestRepository_AdminOverview(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	users := []user.User{
		{Email: "a@example.com", PasswordHash: "x", AccountType: user.AccountParticular, Role: "user"},
		{Email: "b@example.com", PasswordHash: "x", AccountType: user.AccountParticular, Role: "user"},
		{Email: "c@example.com", PasswordHash: "x", AccountType: user.AccountProfessional, Role: "user"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}
	require.NoError(t, db.Create(&listing.Listing{UserID: users[0].ID, Title: "Piso"}).Error)

	overview, err := repo.AdminOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.TotalUsers)
	assert.Equal(t, int64(1), overview.TotalListings)

	distribution := map[string]int64{}
	for _, d := range overview.UserDistribution {
		distribution[d.AccountType] = d.Count
	}
	assert.Equal(t, int64(2), distribution[user.AccountParticular])
	assert.Equal(t, int64(1), distribution[user.AccountProfessional])
}
