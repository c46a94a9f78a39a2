// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"habitalink_backend/internal/admin"
	"habitalink_backend/internal/common"
	"habitalink_backend/internal/config"
	"habitalink_backend/internal/favorite"
	"habitalink_backend/internal/jobs"
	"habitalink_backend/internal/listing"
	"habitalink_backend/internal/middleware"
	"habitalink_backend/internal/stats"
	"habitalink_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	userHandler     *user.Handler
	listingHandler  *listing.Handler
	favoriteHandler *favorite.Handler
	statsHandler    *stats.Handler
	adminHandler    *admin.Handler

	// Jobs
	listingExpiryJob *jobs.ListingExpiryJob

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	listingHandler *listing.Handler,
	favoriteHandler *favorite.Handler,
	statsHandler *stats.Handler,
	adminHandler *admin.Handler,
	listingExpiryJob *jobs.ListingExpiryJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = false
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(cfg, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "HabitaLink API is healthy!"})
	})

	// Uploaded listing images are served straight from disk.
	router.Static(cfg.UploadPublicPrefix, cfg.UploadStoragePath)

	v1 := router.Group("/api/v1")

	userHandler.RegisterRoutes(v1, authMW)
	listingHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	favoriteHandler.RegisterRoutes(v1, authMW)
	statsHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	adminHandler.RegisterRoutes(v1, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		userHandler:      userHandler,
		listingHandler:   listingHandler,
		favoriteHandler:  favoriteHandler,
		statsHandler:     statsHandler,
		adminHandler:     adminHandler,
		listingExpiryJob: listingExpiryJob,
		authMW:           authMW,
		adminRoleMW:      adminRoleMW,
	}, nil
}

func (s *Server) Start() error {
	if s.listingExpiryJob != nil {
		err := s.listingExpiryJob.SetupAndStart()
		if err != nil {
			s.logger.Error("Failed to setup and start listing expiry job", zap.Error(err))
		}
	} else {
		s.logger.Info("Listing expiry job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.listingExpiryJob != nil {
		s.listingExpiryJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
