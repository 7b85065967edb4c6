package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shopping"
)

// GormComparisonRepository implements shopping.ComparisonRepository using GORM
type GormComparisonRepository struct {
	db *gorm.DB
}

// NewGormComparisonRepository creates a new GormComparisonRepository
func NewGormComparisonRepository(db *gorm.DB) *GormComparisonRepository {
	return &GormComparisonRepository{db: db}
}

// FindByUser returns the user's comparison list, including items
func (r *GormComparisonRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*shopping.Comparison, error) {
	var c shopping.Comparison
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("comparison_items.created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comparison: %w", err)
	}
	return &c, nil
}

// Save creates or updates a comparison and synchronizes its items
func (r *GormComparisonRepository) Save(ctx context.Context, c *shopping.Comparison) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return fmt.Errorf("failed to save comparison: %w", err)
		}

		keep := make([]uuid.UUID, 0, len(c.Items))
		for i := range c.Items {
			if err := tx.Save(&c.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save comparison item: %w", err)
			}
			keep = append(keep, c.Items[i].ID)
		}

		query := tx.Where("comparison_id = ?", c.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&shopping.ComparisonItem{}).Error; err != nil {
			return fmt.Errorf("failed to prune comparison items: %w", err)
		}
		return nil
	})
}

// Delete deletes a comparison and its items
func (r *GormComparisonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comparison_id = ?", id).Delete(&shopping.ComparisonItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete comparison items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&shopping.Comparison{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete comparison: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormComparisonRepository implements shopping.ComparisonRepository
var _ shopping.ComparisonRepository = (*GormComparisonRepository)(nil)
