// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"habitalink_backend/internal/admin"
	"habitalink_backend/internal/app"
	"habitalink_backend/internal/config"
	"habitalink_backend/internal/favorite"
	"habitalink_backend/internal/filestorage"
	"habitalink_backend/internal/jobs"
	"habitalink_backend/internal/listing"
	"habitalink_backend/internal/platform/database"
	"habitalink_backend/internal/platform/logger"
	"habitalink_backend/internal/stats"
	"habitalink_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		database.Bootstrap,
		provideCleanup,

		// User module
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Stats module (also feeds visit tracking into listings)
		stats.NewRepository,
		stats.NewService,
		wire.Bind(new(listing.VisitTracker), new(stats.Service)),
		stats.NewHandler,

		// Listing module
		filestorage.NewService,
		listing.NewGORMRepository,
		listing.NewService,
		listing.NewHandler,

		// Favorites
		favorite.NewRepository,
		favorite.NewService,
		favorite.NewHandler,

		// Admin panel
		admin.NewRepository,
		admin.NewService,
		admin.NewHandler,

		// Jobs
		jobs.NewListingExpiryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
