package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shoppingapp "github.com/shopora/backend/internal/application/shopping"
)

// WishlistHandler handles the authenticated user's wishlist
type WishlistHandler struct {
	BaseHandler
	wishlistService *shoppingapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *shoppingapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// RegisterRoutes registers wishlist routes on the API group
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", h.Get)
		wishlist.POST("", h.AddProduct)
		wishlist.DELETE("", h.Clear)
		wishlist.DELETE("/:productId", h.RemoveProduct)
	}
}

// AddListProductRequest is the request body for adding a product to a
// wishlist or comparison list
type AddListProductRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
}

func bindListProductID(c *gin.Context) (uuid.UUID, bool) {
	var req AddListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ProductSummaryResponse is the condensed product view on wishlists and
// comparison lists
type ProductSummaryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Brand          string `json:"brand,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	OriginalPrice  string `json:"originalPrice"`
	EffectivePrice string `json:"effectivePrice"`
	Status         string `json:"status"`
	InStock        bool   `json:"inStock"`
}

// WishlistResponse is the wishlist representation in API responses
type WishlistResponse struct {
	ID        string                   `json:"id"`
	Products  []ProductSummaryResponse `json:"products"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func toProductSummaryResponses(products []shoppingapp.ProductSummary) []ProductSummaryResponse {
	out := make([]ProductSummaryResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSummaryResponse{
			ID:             p.ID.String(),
			Name:           p.Name,
			Slug:           p.Slug,
			Brand:          p.Brand,
			ImageURL:       p.ImageURL,
			OriginalPrice:  p.OriginalPrice.String(),
			EffectivePrice: p.EffectivePrice.String(),
			Status:         p.Status,
			InStock:        p.InStock,
		})
	}
	return out
}

func toWishlistResponse(w *shoppingapp.WishlistResult) WishlistResponse {
	return WishlistResponse{
		ID:        w.ID.String(),
		Products:  toProductSummaryResponses(w.Products),
		UpdatedAt: w.UpdatedAt,
	}
}

// Get godoc
// @Summary      Get the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=WishlistResponse}
// @Router       /wishlist [get]
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	wishlist, err := h.wishlistService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toWishlistResponse(wishlist))
}

// AddProduct godoc
// @Summary      Add a product to the wishlist
// @Description  Adding a product already on the list is a no-op.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddListProductRequest true "Product to add"
// @Success      200 {object} dto.Response{data=WishlistResponse}
// @Router       /wishlist [post]
func (h *WishlistHandler) AddProduct(c *gin.Context) {
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

	wishlist, err := h.wishlistService.AddProduct(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toWishlistResponse(wishlist))
}

// RemoveProduct godoc
// @Summary      Remove a product from the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.Response{data=WishlistResponse}
// @Router       /wishlist/{productId} [delete]
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
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

	wishlist, err := h.wishlistService.RemoveProduct(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toWishlistResponse(wishlist))
}

// Clear godoc
// @Summary      Remove every product from the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /wishlist [delete]
func (h *WishlistHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.wishlistService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
