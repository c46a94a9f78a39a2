package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openProbeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory sqlite database")
	return db
}

func TestProbe_ResolveTable_PrefersEarlierCandidate(t *testing.T) {
	db := openProbeTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE listings (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE inmueble_anuncio (id TEXT PRIMARY KEY)`).Error)

	probe := NewProbe(db, zap.NewNop())
	table, ok := probe.ResolveTable([]string{"listings", "inmueble_anuncio"}, "id")
	require.True(t, ok)
	assert.Equal(t, "listings", table)
}

func TestProbe_ResolveTable_SkipsMissingTablesAndColumns(t *testing.T) {
	db := openProbeTestDB(t)
	// Exists but lacks the required column.
	require.NoError(t, db.Exec(`CREATE TABLE anuncio (title TEXT)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE inmueble_anuncio (id TEXT PRIMARY KEY)`).Error)

	probe := NewProbe(db, zap.NewNop())
	table, ok := probe.ResolveTable([]string{"listings", "anuncio", "inmueble_anuncio"}, "id")
	require.True(t, ok)
	assert.Equal(t, "inmueble_anuncio", table)
}

func TestProbe_ResolveTable_NoCandidateResolves(t *testing.T) {
	db := openProbeTestDB(t)

	probe := NewProbe(db, zap.NewNop())
	table, ok := probe.ResolveTable([]string{"listings", "inmueble_anuncio"}, "id")
	assert.False(t, ok)
	assert.Empty(t, table)
}

func TestProbe_EnsureColumn_AddsWhenMissing(t *testing.T) {
	db := openProbeTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE listings (id TEXT PRIMARY KEY)`).Error)

	probe := NewProbe(db, zap.NewNop())
	assert.True(t, probe.EnsureColumn("listings", "expires_at", "timestamp"))
	assert.True(t, db.Migrator().HasColumn("listings", "expires_at"))

	// Second call is a no-op on an already present column.
	assert.True(t, probe.EnsureColumn("listings", "expires_at", "timestamp"))
}

func TestProbe_EnsureColumn_FailureIsNonFatal(t *testing.T) {
	db := openProbeTestDB(t)

	probe := NewProbe(db, zap.NewNop())
	assert.False(t, probe.EnsureColumn("no_such_table", "expires_at", "timestamp"))
}
