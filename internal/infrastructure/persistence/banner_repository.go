package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/domain/promotion"
	"github.com/shopora/backend/internal/domain/shared"
)

// GormBannerRepository implements promotion.BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// FindByID finds a banner by its ID
func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Banner, error) {
	var banner promotion.Banner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find banner: %w", err)
	}
	return &banner, nil
}

// FindVisible returns active banners whose display window covers now,
// ordered by sort order
func (r *GormBannerRepository) FindVisible(ctx context.Context, position promotion.BannerPosition) ([]*promotion.Banner, error) {
	now := time.Now()
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)
	if position != "" {
		query = query.Where("position = ?", position)
	}

	var banners []*promotion.Banner
	if err := query.Order("sort_order ASC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to find visible banners: %w", err)
	}
	return banners, nil
}

// FindAll returns banners with pagination
func (r *GormBannerRepository) FindAll(ctx context.Context, page, pageSize int) ([]*promotion.Banner, int64, error) {
	query := r.db.WithContext(ctx).Model(&promotion.Banner{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count banners: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var banners []*promotion.Banner
	err := query.
		Order("sort_order ASC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&banners).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find banners: %w", err)
	}
	return banners, total, nil
}

// Save creates or updates a banner
func (r *GormBannerRepository) Save(ctx context.Context, b *promotion.Banner) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("failed to save banner: %w", err)
	}
	return nil
}

// Delete deletes a banner
func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&promotion.Banner{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBannerRepository implements promotion.BannerRepository
var _ promotion.BannerRepository = (*GormBannerRepository)(nil)
