package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	shoppingapp "github.com/shopora/backend/internal/application/shopping"
)

// ComparisonHandler handles the authenticated user's comparison list
type ComparisonHandler struct {
	BaseHandler
	comparisonService *shoppingapp.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler
func NewComparisonHandler(comparisonService *shoppingapp.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

// RegisterRoutes registers comparison routes on the API group
func (h *ComparisonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comparison := rg.Group("/comparison")
	{
		comparison.GET("", h.Get)
		comparison.POST("", h.AddProduct)
		comparison.DELETE("", h.Clear)
		comparison.DELETE("/:productId", h.RemoveProduct)
	}
}

// ComparisonResponse is the comparison list representation in API responses
type ComparisonResponse struct {
	ID        string                   `json:"id"`
	Products  []ProductSummaryResponse `json:"products"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func toComparisonResponse(r *shoppingapp.ComparisonResult) ComparisonResponse {
	return ComparisonResponse{
		ID:        r.ID.String(),
		Products:  toProductSummaryResponses(r.Products),
		UpdatedAt: r.UpdatedAt,
	}
}

// Get godoc
// @Summary      Get the comparison list
// @Tags         comparison
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=ComparisonResponse}
// @Router       /comparison [get]
func (h *ComparisonHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	comparison, err := h.comparisonService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toComparisonResponse(comparison))
}

// AddProduct godoc
// @Summary      Add a product to the comparison list
// @Description  The list holds at most four products.
// @Tags         comparison
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddListProductRequest true "Product to add"
// @Success      200 {object} dto.Response{data=ComparisonResponse}
// @Failure      422 {object} dto.Response
// @Router       /comparison [post]
func (h *ComparisonHandler) AddProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := bindListProductID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	comparison, err := h.comparisonService.AddProduct(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toComparisonResponse(comparison))
}

// RemoveProduct godoc
// @Summary      Remove a product from the comparison list
// @Tags         comparison
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.Response{data=ComparisonResponse}
// @Router       /comparison/{productId} [delete]
func (h *ComparisonHandler) RemoveProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	comparison, err := h.comparisonService.RemoveProduct(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toComparisonResponse(comparison))
}

// Clear godoc
// @Summary      Remove every product from the comparison list
// @Tags         comparison
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /comparison [delete]
func (h *ComparisonHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.comparisonService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
