// File: internal/admin/handler.go
package admin

import (
	"errors"

	"habitalink_backend/internal/common"
	"habitalink_backend/internal/listing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds dependencies for admin-panel handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new admin handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("AdminHandler")}
}

// RegisterRoutes sets up the admin-panel routes. Every route requires an
// authenticated admin.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(authMW, adminRoleMW)
	{
		adminGroup.GET("/users", h.listUsers)
		adminGroup.DELETE("/users/:id", h.deleteUser)
		adminGroup.GET("/properties", h.listProperties)
		adminGroup.PUT("/properties/:id/status", h.updateStatus)
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", users)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User deleted.", nil)
}

func (h *Handler) listProperties(c *gin.Context) {
	rows, err := h.service.ListProperties(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", rows)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req listing.AdminUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}

	if err := h.service.UpdateListingStatus(c.Request.Context(), id, req.Status); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Status updated successfully.", nil)
}
