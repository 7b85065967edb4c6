package cart

import (
	"github.com/google/uuid"
	"github.com/shopora/backend/internal/domain/shared"
)

// Aggregate type constant for Cart
const AggregateTypeCart = "Cart"

// Cart domain event types
const (
	EventTypeCartCreated       = "CartCreated"
	EventTypeCartItemAdded     = "CartItemAdded"
	EventTypeCartCouponApplied = "CartCouponApplied"
	EventTypeCartConverted     = "CartConverted"
)

// CartCreatedEvent is published when an active cart is created for a user
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewCartCreatedEvent creates a new CartCreatedEvent
func NewCartCreatedEvent(c *Cart) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCreated, AggregateTypeCart, c.ID),
		UserID:          c.UserID,
	}
}

// CartItemAddedEvent is published when a new line is added to a cart
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// NewCartItemAddedEvent creates a new CartItemAddedEvent
func NewCartItemAddedEvent(c *Cart, item *CartItem) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, c.ID),
		ProductID:       item.ProductID,
		VariantID:       item.VariantID,
		Quantity:        item.Quantity,
	}
}

// CartCouponAppliedEvent is published when a coupon is applied to a cart
type CartCouponAppliedEvent struct {
	shared.BaseDomainEvent
	CouponCode string `json:"coupon_code"`
	Discount   string `json:"discount"`
}

// NewCartCouponAppliedEvent creates a new CartCouponAppliedEvent
func NewCartCouponAppliedEvent(c *Cart) *CartCouponAppliedEvent {
	return &CartCouponAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCouponApplied, AggregateTypeCart, c.ID),
		CouponCode:      c.CouponCode,
		Discount:        c.DiscountAmount.String(),
	}
}

// CartConvertedEvent is published when a cart is checked out into an order
type CartConvertedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Total  string    `json:"total"`
}

// NewCartConvertedEvent creates a new CartConvertedEvent
func NewCartConvertedEvent(c *Cart) *CartConvertedEvent {
	return &CartConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartConverted, AggregateTypeCart, c.ID),
		UserID:          c.UserID,
		Total:           c.Total.String(),
	}
}
