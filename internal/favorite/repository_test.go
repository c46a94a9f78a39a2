package favorite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openFavoriteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory sqlite database")
	return db
}

func setupCanonicalSchema(t *testing.T) *gorm.DB {
	db := openFavoriteTestDB(t)
	require.NoError(t, db.AutoMigrate(&Favorite{}))
	return db
}

// setupLegacySchema creates a favorites table as an older deployment would
// have, with Spanish column names and no canonical columns at all.
func setupLegacySchema(t *testing.T) *gorm.DB {
	db := openFavoriteTestDB(t)
	err := db.Exec(`CREATE TABLE favorites (id_usuario TEXT, id_propiedad TEXT)`).Error
	require.NoError(t, err)
	return db
}

func TestFavorites_AddListRemove_CanonicalSchema(t *testing.T) {
	db := setupCanonicalSchema(t)
	repo := NewRepository(db, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New().String()
	listingID := uuid.New().String()

	require.NoError(t, repo.Add(ctx, userID, listingID))

	ids, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{listingID}, ids)

	removed, err := repo.Remove(ctx, userID, listingID)
	require.NoError(t, err)
	assert.True(t, removed)

	ids, err = repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavorites_AddIsIdempotent(t *testing.T) {
	db := setupCanonicalSchema(t)
	repo := NewRepository(db, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New().String()
	listingID := uuid.New().String()

	require.NoError(t, repo.Add(ctx, userID, listingID))
	require.NoError(t, repo.Add(ctx, userID, listingID))

	ids, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{listingID}, ids, "Adding an existing favorite must not duplicate it")
}

func TestFavorites_RemoveNonExistentReturnsFalse(t *testing.T) {
	db := setupCanonicalSchema(t)
	repo := NewRepository(db, zap.NewNop())

	removed, err := repo.Remove(context.Background(), uuid.New().String(), uuid.New().String())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavorites_ListEmptyForUnknownUser(t *testing.T) {
	db := setupCanonicalSchema(t)
	repo := NewRepository(db, zap.NewNop())

	ids, err := repo.ListForUser(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestFavorites_LegacyColumnNames(t *testing.T) {
	db := setupLegacySchema(t)
	repo := NewRepository(db, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New().String()
	listingID := uuid.New().String()

	// The canonical insert cannot succeed against this schema; the legacy
	// alias variant has to carry the operation.
	require.NoError(t, repo.Add(ctx, userID, listingID))

	ids, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{listingID}, ids)

	removed, err := repo.Remove(ctx, userID, listingID)
	require.NoError(t, err)
	assert.True(t, removed)
}

// setupTypoLegacySchema creates the favorites table shape with the misspelled
// user column that at least one deployment shipped with.
func setupTypoLegacySchema(t *testing.T) *gorm.DB {
	db := openFavoriteTestDB(t)
	err := db.Exec(`CREATE TABLE favorites (id_ususuario TEXT, id_inmueble TEXT)`).Error
	require.NoError(t, err)
	return db
}

func TestFavorites_TypoLegacyColumnNames(t *testing.T) {
	db := setupTypoLegacySchema(t)
	repo := NewRepository(db, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New().String()
	listingID := uuid.New().String()

	require.NoError(t, repo.Add(ctx, userID, listingID))

	ids, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{listingID}, ids)

	// Remove must reach the same column pair Add succeeded on.
	removed, err := repo.Remove(ctx, userID, listingID)
	require.NoError(t, err)
	assert.True(t, removed)

	ids, err = repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavorites_ExtractListingIDUnwrapsScanValues(t *testing.T) {
	userID := uuid.New().String()
	listingID := uuid.New()

	// Raw scans of columns with unrecognized declared types surface as
	// pointer-wrapped values rather than plain strings.
	var boxed interface{} = listingID.String()
	rowWithPointer := map[string]interface{}{
		"user_id":    &userID,
		"listing_id": &boxed,
	}
	assert.Equal(t, listingID.String(), extractListingID(rowWithPointer, userID))

	rowWithUUID := map[string]interface{}{
		"user_id":    userID,
		"listing_id": listingID,
	}
	assert.Equal(t, listingID.String(), extractListingID(rowWithUUID, userID))

	rowWithBytes := map[string]interface{}{
		"id_usuario":   []byte(userID),
		"id_propiedad": []byte(listingID.String()),
	}
	assert.Equal(t, listingID.String(), extractListingID(rowWithBytes, userID))

	var nilBoxed interface{}
	rowWithNil := map[string]interface{}{
		"listing_id": &nilBoxed,
	}
	assert.Equal(t, "", extractListingID(rowWithNil, userID))
}

func TestFavorites_UnknownShapeFallsBackToFirstStringColumn(t *testing.T) {
	db := openFavoriteTestDB(t)
	err := db.Exec(`CREATE TABLE favorites (usuario_id TEXT, bookmark_ref TEXT)`).Error
	require.NoError(t, err)

	repo := NewRepository(db, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New().String()
	listingID := uuid.New().String()
	require.NoError(t, db.Exec(
		`INSERT INTO favorites (usuario_id, bookmark_ref) VALUES (?, ?)`, userID, listingID).Error)

	// None of the known listing-id column names exist, so extraction falls
	// back to the first string value that is not the user id.
	ids, listErr := repo.ListForUser(ctx, userID)
	require.NoError(t, listErr)
	assert.Equal(t, []string{listingID}, ids)
}
