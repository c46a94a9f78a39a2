// File: internal/favorite/handler.go
package favorite

import (
	"habitalink_backend/internal/common"
	"habitalink_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds dependencies for favorite handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new favorite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("FavoriteHandler")}
}

// RegisterRoutes sets up the routes for favorite operations. All routes
// require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	favGroup := router.Group("/favorites")
	favGroup.Use(authMW)
	{
		favGroup.GET("", h.list)
		favGroup.POST("", h.add)
		favGroup.DELETE("/:listing_id", h.remove)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	ids, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ids)
}

func (h *Handler) add(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A listing ID is required."))
		return
	}

	if err := h.service.Add(c.Request.Context(), userID, req.ListingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Favorite added.", nil)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	removed, err := h.service.Remove(c.Request.Context(), userID, c.Param("listing_id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if !removed {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("Favorite not found."))
		return
	}
	common.RespondOK(c, "Favorite removed.", nil)
}
