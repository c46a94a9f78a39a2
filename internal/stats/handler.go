// File: internal/stats/handler.go
package stats

import (
	"habitalink_backend/internal/common"
	"habitalink_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds dependencies for statistics handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new statistics handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("StatsHandler")}
}

// RegisterRoutes sets up the routes for statistics operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	statsGroup := router.Group("/stats")
	{
		// Contact tracking is public: visitors are not logged in.
		statsGroup.POST("/contact/:listing_id", h.trackContact)

		statsGroup.GET("/agency/:user_id", authMW, h.agencyDaily)
		statsGroup.GET("/admin", authMW, adminRoleMW, h.adminOverview)
	}
}

func (h *Handler) trackContact(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listing_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	h.service.TrackContact(c.Request.Context(), listingID)
	common.RespondOK(c, "Contact recorded.", nil)
}

func (h *Handler) agencyDaily(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}
	// Owners see their own dashboard only; admins can inspect any.
	callerID := middleware.GetUserIDFromContext(c)
	if callerID != ownerID && c.GetString(middleware.UserRoleKey) != common.RoleAdmin {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You can only view your own statistics."))
		return
	}
	data, err := h.service.AgencyDaily(c.Request.Context(), ownerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", data)
}

func (h *Handler) adminOverview(c *gin.Context) {
	overview, err := h.service.AdminOverview(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", overview)
}
