package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/shopora/backend/internal/application/cart"
)

// CartHandler handles the authenticated user's shopping cart
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes on the API group
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("", h.AddItem)
		cart.DELETE("", h.Clear)
		cart.PUT("/items/:itemId", h.UpdateItem)
		cart.DELETE("/items/:itemId", h.RemoveItem)
		cart.PUT("/items/:itemId/details", h.UpdateItemDetails)
		cart.PUT("/settings", h.UpdateSettings)
		cart.POST("/coupon", h.ApplyCoupon)
		cart.DELETE("/coupon", h.RemoveCoupon)
	}
}

// Get godoc
// @Summary      Get the current cart with derived totals
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// AddItem godoc
// @Summary      Add a product variant to the cart
// @Description  Reserves stock for the requested quantity. Adding a variant
// @Description  already in the cart increases the existing line's quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddCartItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      422 {object} dto.Response
// @Router       /cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid item data: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), cartapp.AddItemInput{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// Clear godoc
// @Summary      Remove every item from the cart
// @Description  Releases the stock held by all cart lines.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// UpdateItem godoc
// @Summary      Change a cart line's quantity
// @Description  The stock reservation is adjusted by the quantity delta.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Cart item ID"
// @Param        request body UpdateCartItemRequest true "New quantity"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      422 {object} dto.Response
// @Router       /cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity: "+err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), cartapp.UpdateItemQuantityInput{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// RemoveItem godoc
// @Summary      Remove a line from the cart
// @Description  Releases the stock held by the removed line.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Cart item ID"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// UpdateItemDetails godoc
// @Summary      Set gift and customization options on a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Cart item ID"
// @Param        request body UpdateCartItemDetailsRequest true "Gift options"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart/items/{itemId}/details [put]
func (h *CartHandler) UpdateItemDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateCartItemDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid item details: "+err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemDetails(c.Request.Context(), cartapp.UpdateItemDetailsInput{
		UserID:        userID,
		ItemID:        itemID,
		IsGift:        req.IsGift,
		GiftMessage:   req.GiftMessage,
		Customization: req.Customization,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// UpdateSettings godoc
// @Summary      Set payment method, shipping method and notes on the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateCartSettingsRequest true "Cart settings"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart/settings [put]
func (h *CartHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateCartSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart settings: "+err.Error())
		return
	}

	cart, err := h.cartService.UpdateSettings(c.Request.Context(), cartapp.UpdateSettingsInput{
		UserID:         userID,
		PaymentMethod:  req.PaymentMethod,
		ShippingMethod: req.ShippingMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// ApplyCoupon godoc
// @Summary      Apply a coupon code to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ApplyCouponRequest true "Coupon code"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      422 {object} dto.Response
// @Router       /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Coupon code is required")
		return
	}

	cart, err := h.cartService.ApplyCoupon(c.Request.Context(), cartapp.ApplyCouponInput{
		UserID: userID,
		Code:   req.Code,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// RemoveCoupon godoc
// @Summary      Remove the applied coupon from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.RemoveCoupon(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}
