// File: internal/listing/handler.go
package listing

import (
	"errors"

	"habitalink_backend/internal/common"
	"habitalink_backend/internal/filestorage"
	"habitalink_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadBytes caps a multipart create/update request (8 images max client
// side, generous headroom here).
const maxUploadBytes = 50 << 20

// Handler holds dependencies for listing handlers.
type Handler struct {
	service Service
	files   *filestorage.Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, files *filestorage.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, files: files, logger: logger.Named("ListingHandler")}
}

// RegisterRoutes sets up the routes for listing operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("", h.getAll)
		listingGroup.GET("/:id", h.getByID)

		authed := listingGroup.Group("")
		authed.Use(authMW)
		{
			authed.GET("/user/:user_id", h.getByUser)
			authed.POST("", h.create)
			authed.PUT("/:id", h.update)
			authed.DELETE("/:id", h.delete)
		}

		admin := listingGroup.Group("")
		admin.Use(authMW, adminRoleMW)
		{
			admin.PUT("/:id/status", h.setStatus)
		}
	}
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request format or files too large: "+err.Error()))
		return
	}

	images, err := h.saveImages(c)
	if err != nil {
		h.logger.Warn("Create listing: image upload failed", zap.Error(err), zap.String("userID", userID.String()))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Could not store uploaded images: "+err.Error()))
		return
	}

	in := CreateInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		Price:           c.PostForm("price"),
		Area:            c.PostForm("area"),
		Bedrooms:        c.PostForm("bedrooms"),
		Bathrooms:       c.PostForm("bathrooms"),
		Category:        c.PostForm("category"),
		Location:        c.PostForm("location"),
		Latitude:        c.PostForm("latitude"),
		Longitude:       c.PostForm("longitude"),
		Characteristics: postFormPtr(c, "characteristics"),
		Images:          images,
	}

	l, err := h.service.Create(c.Request.Context(), userID, in)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully.", ToListingResponse(l))
}

func (h *Handler) getAll(c *gin.Context) {
	listings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToListingResponses(listings))
}

func (h *Handler) getByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}
	listings, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToListingResponses(listings))
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}
	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToListingResponse(l))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request format or files too large: "+err.Error()))
		return
	}

	images, err := h.saveImages(c)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Could not store uploaded images: "+err.Error()))
		return
	}

	in := UpdateInput{
		Title:       postFormPtr(c, "title"),
		Description: postFormPtr(c, "description"),
		Price:       nonEmptyFormPtr(c, "price"),
		Area:        nonEmptyFormPtr(c, "area"),
		Bedrooms:    nonEmptyFormPtr(c, "bedrooms"),
		Bathrooms:   nonEmptyFormPtr(c, "bathrooms"),
		Category:    postFormPtr(c, "category"),
		Location:    postFormPtr(c, "location"),
		Latitude:    nonEmptyFormPtr(c, "latitude"),
		Longitude:   nonEmptyFormPtr(c, "longitude"),
		Images:      images,
	}
	if raw := postFormPtr(c, "characteristics"); raw != nil {
		in.Characteristics = DecodeStringList(raw)
	}

	l, err := h.service.Update(c.Request.Context(), userID, h.isAdmin(c), id, in)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing updated successfully.", ToListingResponse(l))
}

func (h *Handler) setStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req AdminUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Status updated successfully.", nil)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, h.isAdmin(c), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

// saveImages stores every uploaded "images" file and returns public paths in
// upload order. No files is not an error.
func (h *Handler) saveImages(c *gin.Context) ([]string, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, nil
	}
	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		return nil, nil
	}
	return h.files.SaveAll(fileHeaders)
}

func (h *Handler) isAdmin(c *gin.Context) bool {
	return c.GetString(middleware.UserRoleKey) == common.RoleAdmin
}

// postFormPtr returns the form value, or nil when the field was not sent at
// all. The distinction drives partial updates.
func postFormPtr(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// nonEmptyFormPtr treats an empty string the same as an absent field, which
// matters for numeric fields where "" must not overwrite a stored value.
func nonEmptyFormPtr(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
