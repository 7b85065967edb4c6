package promotion

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/shared"
)

// DiscountType defines how a coupon's value is interpreted
type DiscountType string

const (
	// DiscountTypePercentage takes value percent off the subtotal, capped by MaxDiscount
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	// DiscountTypeFixed takes a fixed amount off, never more than the subtotal
	DiscountTypeFixed DiscountType = "FIXED"
)

// Coupon is an aggregate root representing a discount code
type Coupon struct {
	shared.BaseAggregateRoot
	Code          string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description   string           `gorm:"type:text"`
	Type          DiscountType     `gorm:"type:varchar(20);not null"`
	Value         decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	MaxDiscount   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	MinOrderValue decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	StartsAt      time.Time        `gorm:"not null"`
	ExpiresAt     time.Time        `gorm:"not null;index"`
	UsageLimit    int              `gorm:"not null;default:0"` // 0 means unlimited
	UsedCount     int              `gorm:"not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon. The code is stored uppercased.
func NewCoupon(code string, discountType DiscountType, value decimal.Decimal, startsAt, expiresAt time.Time) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCouponCode(code); err != nil {
		return nil, err
	}
	if err := validateDiscountValue(discountType, value); err != nil {
		return nil, err
	}
	if !expiresAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_COUPON_WINDOW", "expiry must be after start")
	}

	c := &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Type:              discountType,
		Value:             value,
		MinOrderValue:     decimal.Zero,
		StartsAt:          startsAt,
		ExpiresAt:         expiresAt,
		IsActive:          true,
	}
	c.AddDomainEvent(NewCouponCreatedEvent(c))
	return c, nil
}

// Update modifies the coupon's descriptive and discount fields
func (c *Coupon) Update(description string, discountType DiscountType, value decimal.Decimal, startsAt, expiresAt time.Time) error {
	if err := validateDiscountValue(discountType, value); err != nil {
		return err
	}
	if !expiresAt.After(startsAt) {
		return shared.NewDomainError("INVALID_COUPON_WINDOW", "expiry must be after start")
	}
	c.Description = description
	c.Type = discountType
	c.Value = value
	c.StartsAt = startsAt
	c.ExpiresAt = expiresAt
	c.UpdatedAt = time.Now()
	c.Version++
	return nil
}

// SetMaxDiscount caps the discount a percentage coupon can grant
func (c *Coupon) SetMaxDiscount(max decimal.Decimal) error {
	if max.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_MAX_DISCOUNT", "max discount must be positive")
	}
	c.MaxDiscount = &max
	c.UpdatedAt = time.Now()
	return nil
}

// SetMinOrderValue sets the minimum subtotal required to use the coupon
func (c *Coupon) SetMinOrderValue(min decimal.Decimal) error {
	if min.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_ORDER", "minimum order value cannot be negative")
	}
	c.MinOrderValue = min
	c.UpdatedAt = time.Now()
	return nil
}

// SetUsageLimit sets how many times the coupon may be redeemed in total.
// Zero means unlimited.
func (c *Coupon) SetUsageLimit(limit int) error {
	if limit < 0 {
		return shared.NewDomainError("INVALID_USAGE_LIMIT", "usage limit cannot be negative")
	}
	c.UsageLimit = limit
	c.UpdatedAt = time.Now()
	return nil
}

// Activate enables the coupon
func (c *Coupon) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// Deactivate disables the coupon without deleting it
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// IsExhausted reports whether the usage limit has been reached
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// IsWithinWindow reports whether the coupon is valid at the given time
func (c *Coupon) IsWithinWindow(at time.Time) bool {
	return !at.Before(c.StartsAt) && at.Before(c.ExpiresAt)
}

// ValidateFor checks whether the coupon can be applied to a cart with
// the given subtotal at the given time
func (c *Coupon) ValidateFor(subtotal decimal.Decimal, at time.Time) error {
	if !c.IsActive {
		return shared.NewDomainError("COUPON_INACTIVE", "coupon is not active")
	}
	if at.Before(c.StartsAt) {
		return shared.NewDomainError("COUPON_NOT_STARTED", "coupon is not yet valid")
	}
	if !at.Before(c.ExpiresAt) {
		return shared.NewDomainError("COUPON_EXPIRED", "coupon has expired")
	}
	if c.IsExhausted() {
		return shared.NewDomainError("COUPON_EXHAUSTED", "coupon usage limit reached")
	}
	if subtotal.LessThan(c.MinOrderValue) {
		return shared.NewDomainError("COUPON_MIN_ORDER", "cart subtotal is below the coupon minimum")
	}
	return nil
}

// DiscountFor computes the discount amount this coupon grants for the
// given subtotal. Percentage discounts are capped by MaxDiscount when
// set; fixed discounts never exceed the subtotal.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.Type {
	case DiscountTypePercentage:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
		if c.MaxDiscount != nil && discount.GreaterThan(*c.MaxDiscount) {
			discount = *c.MaxDiscount
		}
	case DiscountTypeFixed:
		discount = c.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount
}

// IncrementUsage records one redemption of the coupon
func (c *Coupon) IncrementUsage() error {
	if c.IsExhausted() {
		return shared.NewDomainError("COUPON_EXHAUSTED", "coupon usage limit reached")
	}
	c.UsedCount++
	c.UpdatedAt = time.Now()
	c.Version++
	c.AddDomainEvent(NewCouponRedeemedEvent(c))
	return nil
}

func validateCouponCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_COUPON_CODE", "coupon code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_COUPON_CODE", "coupon code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_COUPON_CODE", "coupon code may only contain letters, digits, hyphens and underscores")
		}
	}
	return nil
}

func validateDiscountValue(discountType DiscountType, value decimal.Decimal) error {
	switch discountType {
	case DiscountTypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_DISCOUNT_VALUE", "percentage must be between 0 and 100")
		}
	case DiscountTypeFixed:
		if value.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_DISCOUNT_VALUE", "fixed discount must be positive")
		}
	default:
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "discount type must be PERCENTAGE or FIXED")
	}
	return nil
}
