package promotion

import (
	"strings"
	"time"

	"github.com/shopora/backend/internal/domain/shared"
)

// BannerPosition identifies where a banner is rendered on the storefront
type BannerPosition string

const (
	BannerPositionHero    BannerPosition = "hero"
	BannerPositionStrip   BannerPosition = "strip"
	BannerPositionSidebar BannerPosition = "sidebar"
)

// Banner is an aggregate root for a promotional banner
type Banner struct {
	shared.BaseAggregateRoot
	Title     string         `gorm:"type:varchar(200);not null"`
	Subtitle  string         `gorm:"type:varchar(300)"`
	ImageURL  string         `gorm:"type:varchar(500);not null"`
	LinkURL   string         `gorm:"type:varchar(500)"`
	Position  BannerPosition `gorm:"type:varchar(20);not null;index"`
	SortOrder int            `gorm:"not null;default:0"`
	StartsAt  *time.Time     `gorm:""`
	EndsAt    *time.Time     `gorm:""`
	IsActive  bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Banner) TableName() string {
	return "banners"
}

// NewBanner creates a new banner
func NewBanner(title, imageURL string, position BannerPosition) (*Banner, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_BANNER_TITLE", "banner title is required")
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, shared.NewDomainError("INVALID_BANNER_IMAGE", "banner image is required")
	}
	if !position.IsValid() {
		return nil, shared.NewDomainError("INVALID_BANNER_POSITION", "position must be hero, strip or sidebar")
	}

	return &Banner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		ImageURL:          imageURL,
		Position:          position,
		IsActive:          true,
	}, nil
}

// IsValid reports whether the position is one of the known placements
func (p BannerPosition) IsValid() bool {
	switch p {
	case BannerPositionHero, BannerPositionStrip, BannerPositionSidebar:
		return true
	}
	return false
}

// Update modifies the banner content
func (b *Banner) Update(title, subtitle, imageURL, linkURL string, position BannerPosition) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_BANNER_TITLE", "banner title is required")
	}
	if strings.TrimSpace(imageURL) == "" {
		return shared.NewDomainError("INVALID_BANNER_IMAGE", "banner image is required")
	}
	if !position.IsValid() {
		return shared.NewDomainError("INVALID_BANNER_POSITION", "position must be hero, strip or sidebar")
	}
	b.Title = title
	b.Subtitle = subtitle
	b.ImageURL = imageURL
	b.LinkURL = linkURL
	b.Position = position
	b.UpdatedAt = time.Now()
	b.Version++
	return nil
}

// Schedule sets an optional display window
func (b *Banner) Schedule(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return shared.NewDomainError("INVALID_BANNER_WINDOW", "end must be after start")
	}
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	b.UpdatedAt = time.Now()
	return nil
}

// SetSortOrder sets the ordering within a position
func (b *Banner) SetSortOrder(order int) {
	b.SortOrder = order
	b.UpdatedAt = time.Now()
}

// Activate enables the banner
func (b *Banner) Activate() {
	b.IsActive = true
	b.UpdatedAt = time.Now()
}

// Deactivate disables the banner
func (b *Banner) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
}

// IsVisible reports whether the banner should be shown at the given time
func (b *Banner) IsVisible(at time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && at.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && !at.Before(*b.EndsAt) {
		return false
	}
	return true
}
