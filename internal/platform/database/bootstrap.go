// File: internal/platform/database/bootstrap.go
package database

import (
	"errors"
	"strings"

	"habitalink_backend/internal/common"
	"habitalink_backend/internal/config"
	"habitalink_backend/internal/favorite"
	"habitalink_backend/internal/listing"
	"habitalink_backend/internal/stats"
	"habitalink_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// listingTableCandidates are the physical names the listings relation has
// shipped under, most specific first. Only the first entry is created by
// migrations; the rest are consulted as a compatibility shim for drifted
// deployments.
var listingTableCandidates = []string{"listings", "inmueble_anuncio", "anuncio", "inmueble"}

// Compat captures what the startup schema probe resolved. Features whose
// backing schema could not be found are reported unavailable rather than
// failing startup.
type Compat struct {
	ListingTable    string
	ExpiryAvailable bool
}

// Bootstrap migrates the canonical schema, runs the compatibility probe and
// seeds the admin account. Probe misses are logged and degrade features;
// only migration of the canonical tables is allowed to fail startup.
func Bootstrap(db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*Compat, error) {
	log := logger.Named("Bootstrap")

	if err := db.AutoMigrate(
		&user.User{},
		&listing.Image{},
		&listing.Listing{},
		&favorite.Favorite{},
		&stats.ListingStat{},
	); err != nil {
		return nil, err
	}

	probe := NewProbe(db, logger)
	compat := &Compat{}

	if table, ok := probe.ResolveTable(listingTableCandidates, "id"); ok {
		compat.ListingTable = table
		compat.ExpiryAvailable = probe.EnsureColumn(table, "expires_at", "timestamp")
	} else {
		log.Warn("Listing table not resolved; expiry handling disabled")
	}

	probe.EnsureColumn(user.User{}.TableName(), "last_login_at", "timestamp")

	if err := seedAdmin(db, cfg, log); err != nil {
		// Seeding is a convenience, not a startup requirement.
		log.Warn("Admin seeding failed", zap.Error(err))
	}

	return compat, nil
}

func seedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.SeedAdminPassword == "" {
		log.Info("SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail))

	var existing user.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Role != common.RoleAdmin {
			return db.Model(&existing).Update("role", common.RoleAdmin).Error
		}
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "HabitaLink",
		AccountType:  user.AccountProfessional,
		Role:         common.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Admin account seeded", zap.String("email", email))
	return nil
}
