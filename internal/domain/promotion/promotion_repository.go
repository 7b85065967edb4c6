package promotion

import (
	"context"

	"github.com/google/uuid"
)

// CouponFilter defines query options for listing coupons
type CouponFilter struct {
	Keyword  string
	IsActive *bool
	Page     int
	PageSize int
}

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)

	// FindByCode looks up a coupon by its uppercased code.
	// Returns shared.ErrNotFound when no coupon matches.
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	FindAll(ctx context.Context, filter CouponFilter) ([]*Coupon, int64, error)
	Save(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// BannerRepository defines the interface for banner persistence
type BannerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)

	// FindVisible returns active banners whose display window covers now,
	// ordered by sort order. Position is optional; empty means all.
	FindVisible(ctx context.Context, position BannerPosition) ([]*Banner, error)

	FindAll(ctx context.Context, page, pageSize int) ([]*Banner, int64, error)
	Save(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}
