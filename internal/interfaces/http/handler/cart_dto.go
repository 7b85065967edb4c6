package handler

import (
	"time"

	cartapp "github.com/shopora/backend/internal/application/cart"
)

// AddCartItemRequest is the request body for adding a product variant to the cart
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	VariantID string `json:"variantId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateCartItemRequest is the request body for changing a line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateCartItemDetailsRequest is the request body for gift and customization options
type UpdateCartItemDetailsRequest struct {
	IsGift        bool   `json:"isGift"`
	GiftMessage   string `json:"giftMessage" binding:"omitempty,max=500"`
	Customization string `json:"customization" binding:"omitempty,max=500"`
}

// UpdateCartSettingsRequest is the request body for cart-level settings
type UpdateCartSettingsRequest struct {
	PaymentMethod  string `json:"paymentMethod" binding:"omitempty,max=50"`
	ShippingMethod string `json:"shippingMethod" binding:"omitempty,max=50"`
	Notes          string `json:"notes" binding:"omitempty,max=1000"`
}

// ApplyCouponRequest is the request body for applying a coupon code
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50"`
}

// CartItemResponse is the cart line representation in API responses
type CartItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId"`
	ProductName   string `json:"productName"`
	ProductSlug   string `json:"productSlug"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Color         string `json:"color,omitempty"`
	Size          string `json:"size,omitempty"`
	Quantity      int    `json:"quantity"`
	OriginalPrice string `json:"originalPrice"`
	SalePrice     string `json:"salePrice"`
	Price         string `json:"price"`
	TotalPrice    string `json:"totalPrice"`
	IsGift        bool   `json:"isGift"`
	GiftMessage   string `json:"giftMessage,omitempty"`
	Customization string `json:"customization,omitempty"`
}

// CartResponse is the cart representation in API responses
type CartResponse struct {
	ID             string             `json:"id"`
	Status         string             `json:"status"`
	Items          []CartItemResponse `json:"items"`
	Subtotal       string             `json:"subtotal"`
	TaxAmount      string             `json:"taxAmount"`
	ShippingAmount string             `json:"shippingAmount"`
	DiscountAmount string             `json:"discountAmount"`
	Total          string             `json:"total"`
	TotalItems     int                `json:"totalItems"`
	CouponCode     string             `json:"couponCode,omitempty"`
	PaymentMethod  string             `json:"paymentMethod,omitempty"`
	ShippingMethod string             `json:"shippingMethod,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	Currency       string             `json:"currency"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func toCartResponse(c *cartapp.CartResult) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			VariantID:     item.VariantID.String(),
			ProductName:   item.ProductName,
			ProductSlug:   item.ProductSlug,
			ImageURL:      item.ImageURL,
			Color:         item.Color,
			Size:          item.Size,
			Quantity:      item.Quantity,
			OriginalPrice: item.OriginalPrice.String(),
			SalePrice:     item.SalePrice.String(),
			Price:         item.Price.String(),
			TotalPrice:    item.TotalPrice.String(),
			IsGift:        item.IsGift,
			GiftMessage:   item.GiftMessage,
			Customization: item.Customization,
		})
	}
	return CartResponse{
		ID:             c.ID.String(),
		Status:         c.Status,
		Items:          items,
		Subtotal:       c.Subtotal.String(),
		TaxAmount:      c.TaxAmount.String(),
		ShippingAmount: c.ShippingAmount.String(),
		DiscountAmount: c.DiscountAmount.String(),
		Total:          c.Total.String(),
		TotalItems:     c.TotalItems,
		CouponCode:     c.CouponCode,
		PaymentMethod:  c.PaymentMethod,
		ShippingMethod: c.ShippingMethod,
		Notes:          c.Notes,
		Currency:       c.Currency,
		UpdatedAt:      c.UpdatedAt,
	}
}
