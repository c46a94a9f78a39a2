package listing

import (
	"context"
	"net/http"
	"testing"
	"time"

	"habitalink_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupListingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory sqlite database")

	err = db.AutoMigrate(&Image{}, &Listing{})
	require.NoError(t, err, "Failed to migrate test schema")
	return db
}

func newTestListing(userID uuid.UUID) *Listing {
	return &Listing{
		UserID:          userID,
		Title:           "Piso en Triana",
		Slug:            "piso-en-triana",
		Description:     "Luminoso, tercera planta.",
		Price:           250000,
		Area:            85,
		Bedrooms:        3,
		Bathrooms:       2,
		Category:        "venta",
		Location:        "Sevilla",
		Status:          StatusPending,
		Images:          []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		Characteristics: []string{"piscina", "jardin"},
	}
}

func TestRepository_CreateAndGetByID_RoundTrip(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))
	require.NotEqual(t, uuid.Nil, l.ID)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, got.Images)
	assert.Equal(t, []string{"piscina", "jardin"}, got.Characteristics)
	assert.Equal(t, "Piso en Triana", got.Title)
	assert.Equal(t, StatusPending, got.Status)
}

func TestRepository_Create_MirrorsPrimaryImage(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)

	require.NotNil(t, got.PrimaryImage)
	assert.Equal(t, "/uploads/a.jpg", got.PrimaryImage.URL)
	assert.Len(t, got.Images, 2)
}

func TestRepository_Create_WithoutImages(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	l.Images = nil
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)

	assert.Nil(t, got.PrimaryImageID)
	assert.Empty(t, got.Images)
}

func TestRepository_Update_PartialFieldsRetainOthers(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	price := "500"
	require.NoError(t, repo.Update(ctx, l.ID, UpdateInput{Price: &price}))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)

	assert.Equal(t, float64(500), got.Price)
	assert.Equal(t, "Piso en Triana", got.Title)
	assert.Equal(t, "Luminoso, tercera planta.", got.Description)
	assert.Equal(t, float64(85), got.Area)
}

func TestRepository_Update_BadNumberKeepsStoredValue(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	price := "not-a-number"
	require.NoError(t, repo.Update(ctx, l.ID, UpdateInput{Price: &price}))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(250000), got.Price, "Malformed price must fall back to the stored value, not zero")
}

func TestRepository_Update_NewImagesReplaceSequenceAndPrimary(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	require.NoError(t, repo.Update(ctx, l.ID, UpdateInput{
		Images: []string{"/uploads/new.jpg"},
	}))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/new.jpg"}, got.Images)
	require.NotNil(t, got.PrimaryImage)
	assert.Equal(t, "/uploads/new.jpg", got.PrimaryImage.URL)
}

func TestRepository_Update_NotFound(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)

	title := "whatever"
	err := repo.Update(context.Background(), uuid.New(), UpdateInput{Title: &title})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestRepository_Delete_NotFoundOnMissingRow(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestRepository_SetStatus(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	require.NoError(t, repo.SetStatus(ctx, l.ID, StatusActive))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)

	err = repo.SetStatus(ctx, uuid.New(), StatusActive)
	require.Error(t, err)
}

func TestRepository_GetAll_NewestFirst(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	older := newTestListing(uuid.New())
	older.Title = "Older"
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := newTestListing(uuid.New())
	newer.Title = "Newer"
	newer.CreatedAt = time.Now()
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Newer", all[0].Title)
	assert.Equal(t, "Older", all[1].Title)
}

func TestRepository_GetByUser_FiltersByOwner(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	mine := newTestListing(owner)
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, newTestListing(uuid.New())))

	got, err := repo.GetByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestRepository_Create_RollsBackImageOnListingFailure(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	first := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, first))

	var imagesBefore int64
	require.NoError(t, db.Model(&Image{}).Count(&imagesBefore).Error)

	// Reusing an existing primary key forces the listing insert to fail after
	// the image insert already succeeded inside the same transaction.
	dup := newTestListing(uuid.New())
	dup.ID = first.ID
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.Nil(t, dup.PrimaryImageID)

	var imagesAfter int64
	require.NoError(t, db.Model(&Image{}).Count(&imagesAfter).Error)
	assert.Equal(t, imagesBefore, imagesAfter, "Image row from the failed transaction must not survive")

	all, listErr := repo.GetAll(ctx)
	require.NoError(t, listErr)
	require.Len(t, all, 1)
}

func TestRepository_Read_LegacyEncodedColumns(t *testing.T) {
	db := setupListingTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	l := newTestListing(uuid.New())
	require.NoError(t, repo.Create(ctx, l))

	// Simulate a row written by an older backend revision: comma-separated
	// characteristics and a non-JSON images column.
	err := db.Model(&Listing{}).Where("id = ?", l.ID).Updates(map[string]interface{}{
		"characteristics": "piscina, jardin",
		"images":          "not json at all",
	}).Error
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"piscina", "jardin"}, got.Characteristics)
	// An undecodable images column falls back to the primary-image mirror.
	assert.Equal(t, []string{"/uploads/a.jpg"}, got.Images)
}
