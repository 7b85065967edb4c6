package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	promotionapp "github.com/shopora/backend/internal/application/promotion"
	"github.com/shopora/backend/internal/interfaces/http/dto"
)

// CouponHandler handles admin coupon management
type CouponHandler struct {
	BaseHandler
	couponService *promotionapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *promotionapp.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// RegisterAdminRoutes registers admin coupon routes on the admin group
func (h *CouponHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.Create)
		coupons.GET("", h.List)
		coupons.GET("/:id", h.Get)
		coupons.PUT("/:id", h.Update)
		coupons.PUT("/:id/active", h.SetActive)
		coupons.DELETE("/:id", h.Delete)
	}
}

// CreateCouponRequest is the request body for creating a coupon
type CreateCouponRequest struct {
	Code          string    `json:"code" binding:"required,min=1,max=50"`
	Description   string    `json:"description" binding:"omitempty,max=500"`
	Type          string    `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value         string    `json:"value" binding:"required"`
	MaxDiscount   *string   `json:"maxDiscount" binding:"omitempty"`
	MinOrderValue *string   `json:"minOrderValue" binding:"omitempty"`
	StartsAt      time.Time `json:"startsAt" binding:"required"`
	ExpiresAt     time.Time `json:"expiresAt" binding:"required"`
	UsageLimit    int       `json:"usageLimit" binding:"min=0"`
}

// UpdateCouponRequest is the request body for updating a coupon
type UpdateCouponRequest struct {
	Description   string    `json:"description" binding:"omitempty,max=500"`
	Value         string    `json:"value" binding:"required"`
	MaxDiscount   *string   `json:"maxDiscount" binding:"omitempty"`
	MinOrderValue *string   `json:"minOrderValue" binding:"omitempty"`
	StartsAt      time.Time `json:"startsAt" binding:"required"`
	ExpiresAt     time.Time `json:"expiresAt" binding:"required"`
	UsageLimit    int       `json:"usageLimit" binding:"min=0"`
}

// SetCouponActiveRequest is the request body for toggling a coupon
type SetCouponActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CouponResponse is the coupon representation in API responses
type CouponResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Value         string    `json:"value"`
	MaxDiscount   *string   `json:"maxDiscount,omitempty"`
	MinOrderValue string    `json:"minOrderValue"`
	StartsAt      time.Time `json:"startsAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	UsageLimit    int       `json:"usageLimit"`
	UsedCount     int       `json:"usedCount"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toCouponResponse(c promotionapp.CouponResult) CouponResponse {
	return CouponResponse{
		ID:            c.ID.String(),
		Code:          c.Code,
		Description:   c.Description,
		Type:          c.Type,
		Value:         c.Value.String(),
		MaxDiscount:   decimalPtrToString(c.MaxDiscount),
		MinOrderValue: c.MinOrderValue.String(),
		StartsAt:      c.StartsAt,
		ExpiresAt:     c.ExpiresAt,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

func toCouponResponses(coupons []promotionapp.CouponResult) []CouponResponse {
	out := make([]CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, toCouponResponse(c))
	}
	return out
}

// Create godoc
// @Summary      Create a coupon
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCouponRequest true "Coupon data"
// @Success      201 {object} dto.Response{data=CouponResponse}
// @Failure      409 {object} dto.Response
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid coupon data: "+err.Error())
		return
	}

	value, err := parseDecimal(req.Value)
	if err != nil {
		h.BadRequest(c, "Invalid coupon value")
		return
	}
	maxDiscount, err := parseDecimalPtr(req.MaxDiscount)
	if err != nil {
		h.BadRequest(c, "Invalid max discount")
		return
	}
	minOrderValue, err := parseDecimalPtr(req.MinOrderValue)
	if err != nil {
		h.BadRequest(c, "Invalid min order value")
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), promotionapp.CreateCouponInput{
		Code:          req.Code,
		Description:   req.Description,
		Type:          req.Type,
		Value:         value,
		MaxDiscount:   maxDiscount,
		MinOrderValue: minOrderValue,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCouponResponse(*coupon))
}

// List godoc
// @Summary      List coupons
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search keyword"
// @Param        active query bool false "Active filter"
// @Success      200 {object} dto.Response{data=[]CouponResponse}
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	input := promotionapp.ListCouponsInput{
		Keyword:  listReq.Search,
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.BadRequest(c, "Invalid active filter")
			return
		}
		input.IsActive = &active
	}

	result, err := h.couponService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toCouponResponses(result.Coupons), result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get a coupon by ID
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Success      200 {object} dto.Response{data=CouponResponse}
// @Router       /admin/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCouponResponse(*coupon))
}

// Update godoc
// @Summary      Update a coupon
// @Description  The coupon code and discount type are immutable after creation.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Param        request body UpdateCouponRequest true "Coupon data"
// @Success      200 {object} dto.Response{data=CouponResponse}
// @Router       /admin/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid coupon data: "+err.Error())
		return
	}

	value, err := parseDecimal(req.Value)
	if err != nil {
		h.BadRequest(c, "Invalid coupon value")
		return
	}
	maxDiscount, err := parseDecimalPtr(req.MaxDiscount)
	if err != nil {
		h.BadRequest(c, "Invalid max discount")
		return
	}
	minOrderValue, err := parseDecimalPtr(req.MinOrderValue)
	if err != nil {
		h.BadRequest(c, "Invalid min order value")
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), promotionapp.UpdateCouponInput{
		CouponID:      id,
		Description:   req.Description,
		Value:         value,
		MaxDiscount:   maxDiscount,
		MinOrderValue: minOrderValue,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCouponResponse(*coupon))
}

// SetActive godoc
// @Summary      Activate or deactivate a coupon
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Param        request body SetCouponActiveRequest true "Active flag"
// @Success      200 {object} dto.Response{data=CouponResponse}
// @Router       /admin/coupons/{id}/active [put]
func (h *CouponHandler) SetActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req SetCouponActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Active flag is required")
		return
	}

	coupon, err := h.couponService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCouponResponse(*coupon))
}

// Delete godoc
// @Summary      Delete a coupon
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Success      204
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
