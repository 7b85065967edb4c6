package promotion

import (
	"github.com/shopora/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCoupon = "Coupon"
	AggregateTypeBanner = "Banner"
)

// Promotion domain event types
const (
	EventTypeCouponCreated  = "CouponCreated"
	EventTypeCouponRedeemed = "CouponRedeemed"
)

// CouponCreatedEvent is published when a coupon is created
type CouponCreatedEvent struct {
	shared.BaseDomainEvent
	Code string       `json:"code"`
	Type DiscountType `json:"type"`
}

// NewCouponCreatedEvent creates a new CouponCreatedEvent
func NewCouponCreatedEvent(c *Coupon) *CouponCreatedEvent {
	return &CouponCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponCreated, AggregateTypeCoupon, c.ID),
		Code:            c.Code,
		Type:            c.Type,
	}
}

// CouponRedeemedEvent is published when a coupon is redeemed at checkout
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	Code      string `json:"code"`
	UsedCount int    `json:"used_count"`
}

// NewCouponRedeemedEvent creates a new CouponRedeemedEvent
func NewCouponRedeemedEvent(c *Coupon) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponRedeemed, AggregateTypeCoupon, c.ID),
		Code:            c.Code,
		UsedCount:       c.UsedCount,
	}
}
