package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopora/backend/internal/application/catalog"
	promotionapp "github.com/shopora/backend/internal/application/promotion"
)

// BannerHandler handles public banner listing and admin banner management
type BannerHandler struct {
	BaseHandler
	bannerService *promotionapp.BannerService
	imageService  *catalogapp.ImageService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService *promotionapp.BannerService, imageService *catalogapp.ImageService) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		imageService:  imageService,
	}
}

// RegisterRoutes registers public banner routes on the API group
func (h *BannerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/banners", h.ListVisible)
}

// RegisterAdminRoutes registers admin banner routes on the admin group
func (h *BannerHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	banners := rg.Group("/banners")
	{
		banners.POST("", h.Create)
		banners.GET("", h.ListAll)
		banners.PUT("/:id", h.Update)
		banners.PUT("/:id/active", h.SetActive)
		banners.DELETE("/:id", h.Delete)
		banners.POST("/:id/images", h.PrepareImageUpload)
	}
}

// CreateBannerRequest is the request body for creating a banner
type CreateBannerRequest struct {
	Title     string     `json:"title" binding:"required,min=1,max=200"`
	Subtitle  string     `json:"subtitle" binding:"omitempty,max=500"`
	ImageURL  string     `json:"imageUrl" binding:"required,max=2000"`
	LinkURL   string     `json:"linkUrl" binding:"omitempty,max=2000"`
	Position  string     `json:"position" binding:"required,oneof=hero strip sidebar"`
	SortOrder int        `json:"sortOrder"`
	StartsAt  *time.Time `json:"startsAt"`
	EndsAt    *time.Time `json:"endsAt"`
}

// UpdateBannerRequest is the request body for updating a banner
type UpdateBannerRequest struct {
	Title     string     `json:"title" binding:"required,min=1,max=200"`
	Subtitle  string     `json:"subtitle" binding:"omitempty,max=500"`
	ImageURL  string     `json:"imageUrl" binding:"required,max=2000"`
	LinkURL   string     `json:"linkUrl" binding:"omitempty,max=2000"`
	Position  string     `json:"position" binding:"required,oneof=hero strip sidebar"`
	SortOrder int        `json:"sortOrder"`
	StartsAt  *time.Time `json:"startsAt"`
	EndsAt    *time.Time `json:"endsAt"`
}

// SetBannerActiveRequest is the request body for toggling a banner
type SetBannerActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// BannerResponse is the banner representation in API responses
type BannerResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	ImageURL  string     `json:"imageUrl"`
	LinkURL   string     `json:"linkUrl,omitempty"`
	Position  string     `json:"position"`
	SortOrder int        `json:"sortOrder"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toBannerResponse(b promotionapp.BannerResult) BannerResponse {
	return BannerResponse{
		ID:        b.ID.String(),
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  b.Position,
		SortOrder: b.SortOrder,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}

func toBannerResponses(banners []promotionapp.BannerResult) []BannerResponse {
	out := make([]BannerResponse, 0, len(banners))
	for _, b := range banners {
		out = append(out, toBannerResponse(b))
	}
	return out
}

// ListVisible godoc
// @Summary      List currently visible banners
// @Description  Returns active banners within their scheduling window,
// @Description  optionally filtered by position.
// @Tags         banners
// @Produce      json
// @Param        position query string false "Position filter" Enums(hero, strip, sidebar)
// @Success      200 {object} dto.Response{data=[]BannerResponse}
// @Router       /banners [get]
func (h *BannerHandler) ListVisible(c *gin.Context) {
	banners, err := h.bannerService.ListVisible(c.Request.Context(), c.Query("position"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBannerResponses(banners))
}

// Create godoc
// @Summary      Create a banner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBannerRequest true "Banner data"
// @Success      201 {object} dto.Response{data=BannerResponse}
// @Router       /admin/banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid banner data: "+err.Error())
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), promotionapp.CreateBannerInput{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		SortOrder: req.SortOrder,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBannerResponse(*banner))
}

// ListAll godoc
// @Summary      List all banners including inactive ones
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]BannerResponse}
// @Router       /admin/banners [get]
func (h *BannerHandler) ListAll(c *gin.Context) {
	page := 1
	pageSize := 20
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	banners, total, err := h.bannerService.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toBannerResponses(banners), total, page, pageSize)
}

// Update godoc
// @Summary      Update a banner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        request body UpdateBannerRequest true "Banner data"
// @Success      200 {object} dto.Response{data=BannerResponse}
// @Router       /admin/banners/{id} [put]
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	var req UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid banner data: "+err.Error())
		return
	}

	banner, err := h.bannerService.Update(c.Request.Context(), promotionapp.UpdateBannerInput{
		BannerID:  id,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		SortOrder: req.SortOrder,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBannerResponse(*banner))
}

// SetActive godoc
// @Summary      Activate or deactivate a banner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        request body SetBannerActiveRequest true "Active flag"
// @Success      200 {object} dto.Response{data=BannerResponse}
// @Router       /admin/banners/{id}/active [put]
func (h *BannerHandler) SetActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	var req SetBannerActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Active flag is required")
		return
	}

	banner, err := h.bannerService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBannerResponse(*banner))
}

// Delete godoc
// @Summary      Delete a banner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      204
// @Router       /admin/banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PrepareImageUpload godoc
// @Summary      Prepare a banner image upload
// @Description  Returns a presigned upload URL and the public URL the image
// @Description  will have once uploaded.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        request body PrepareImageUploadRequest true "File metadata"
// @Success      200 {object} dto.Response{data=ImageUploadResponse}
// @Router       /admin/banners/{id}/images [post]
func (h *BannerHandler) PrepareImageUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid banner ID")
		return
	}

	var req PrepareImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid upload request: "+err.Error())
		return
	}

	ticket, err := h.imageService.PrepareUpload(c.Request.Context(), "banners/"+id.String(), req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ImageUploadResponse{
		StorageKey: ticket.StorageKey,
		UploadURL:  ticket.UploadURL,
		PublicURL:  ticket.PublicURL,
		ExpiresAt:  ticket.ExpiresAt,
	})
}
