package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/cart"
)

// AddItemInput contains the input for adding a product variant to the cart
type AddItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// UpdateItemQuantityInput contains the input for changing a line's quantity
type UpdateItemQuantityInput struct {
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Quantity int
}

// UpdateItemDetailsInput contains the input for gift and customization options
type UpdateItemDetailsInput struct {
	UserID        uuid.UUID
	ItemID        uuid.UUID
	IsGift        bool
	GiftMessage   string
	Customization string
}

// UpdateSettingsInput contains the input for cart-level settings
type UpdateSettingsInput struct {
	UserID         uuid.UUID
	PaymentMethod  string
	ShippingMethod string
	Notes          string
}

// ApplyCouponInput contains the input for applying a coupon code
type ApplyCouponInput struct {
	UserID uuid.UUID
	Code   string
}

// CartItemResult is the cart line representation returned to callers
type CartItemResult struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	VariantID     uuid.UUID
	ProductName   string
	ProductSlug   string
	ImageURL      string
	Color         string
	Size          string
	Quantity      int
	OriginalPrice decimal.Decimal
	SalePrice     decimal.Decimal
	Price         decimal.Decimal
	TotalPrice    decimal.Decimal
	IsGift        bool
	GiftMessage   string
	Customization string
}

// CartResult is the cart representation returned to callers
type CartResult struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Status         string
	Items          []CartItemResult
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	TotalItems     int
	CouponCode     string
	PaymentMethod  string
	ShippingMethod string
	Notes          string
	Currency       string
	UpdatedAt      time.Time
}

func toCartResult(c *cart.Cart) *CartResult {
	items := make([]CartItemResult, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		items = append(items, CartItemResult{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			ProductName:   item.ProductName,
			ProductSlug:   item.ProductSlug,
			ImageURL:      item.ImageURL,
			Color:         item.Color,
			Size:          item.Size,
			Quantity:      item.Quantity,
			OriginalPrice: item.OriginalPrice,
			SalePrice:     item.SalePrice,
			Price:         item.Price,
			TotalPrice:    item.TotalPrice,
			IsGift:        item.IsGift,
			GiftMessage:   item.GiftMessage,
			Customization: item.Customization,
		})
	}
	return &CartResult{
		ID:             c.ID,
		UserID:         c.UserID,
		Status:         string(c.Status),
		Items:          items,
		Subtotal:       c.Subtotal,
		TaxAmount:      c.TaxAmount,
		ShippingAmount: c.ShippingAmount,
		DiscountAmount: c.DiscountAmount,
		Total:          c.Total,
		TotalItems:     c.TotalItems,
		CouponCode:     c.CouponCode,
		PaymentMethod:  c.PaymentMethod,
		ShippingMethod: c.ShippingMethod,
		Notes:          c.Notes,
		Currency:       c.Currency,
		UpdatedAt:      c.UpdatedAt,
	}
}
