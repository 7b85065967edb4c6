package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/promotion"
)

// CreateCouponInput contains the input for creating a coupon
type CreateCouponInput struct {
	Code          string
	Description   string
	Type          string
	Value         decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinOrderValue *decimal.Decimal
	StartsAt      time.Time
	ExpiresAt     time.Time
	UsageLimit    int
}

// UpdateCouponInput contains the input for updating a coupon
type UpdateCouponInput struct {
	CouponID      uuid.UUID
	Description   string
	Value         decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinOrderValue *decimal.Decimal
	StartsAt      time.Time
	ExpiresAt     time.Time
	UsageLimit    int
}

// ListCouponsInput contains filter options for coupon listing
type ListCouponsInput struct {
	Keyword  string
	IsActive *bool
	Page     int
	PageSize int
}

// CouponResult is the coupon representation returned to callers
type CouponResult struct {
	ID            uuid.UUID
	Code          string
	Description   string
	Type          string
	Value         decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinOrderValue decimal.Decimal
	StartsAt      time.Time
	ExpiresAt     time.Time
	UsageLimit    int
	UsedCount     int
	IsActive      bool
	CreatedAt     time.Time
}

// CouponListResult is a page of coupons with the total count
type CouponListResult struct {
	Coupons  []CouponResult
	Total    int64
	Page     int
	PageSize int
}

// CreateBannerInput contains the input for creating a banner
type CreateBannerInput struct {
	Title    string
	Subtitle string
	ImageURL string
	LinkURL  string
	Position string
	SortOrder int
	StartsAt *time.Time
	EndsAt   *time.Time
}

// UpdateBannerInput contains the input for updating a banner
type UpdateBannerInput struct {
	BannerID  uuid.UUID
	Title     string
	Subtitle  string
	ImageURL  string
	LinkURL   string
	Position  string
	SortOrder int
	StartsAt  *time.Time
	EndsAt    *time.Time
}

// BannerResult is the banner representation returned to callers
type BannerResult struct {
	ID        uuid.UUID
	Title     string
	Subtitle  string
	ImageURL  string
	LinkURL   string
	Position  string
	SortOrder int
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool
	CreatedAt time.Time
}

func toCouponResult(c *promotion.Coupon) CouponResult {
	return CouponResult{
		ID:            c.ID,
		Code:          c.Code,
		Description:   c.Description,
		Type:          string(c.Type),
		Value:         c.Value,
		MaxDiscount:   c.MaxDiscount,
		MinOrderValue: c.MinOrderValue,
		StartsAt:      c.StartsAt,
		ExpiresAt:     c.ExpiresAt,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

func toBannerResult(b *promotion.Banner) BannerResult {
	return BannerResult{
		ID:        b.ID,
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  string(b.Position),
		SortOrder: b.SortOrder,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
