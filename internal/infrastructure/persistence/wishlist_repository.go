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

// GormWishlistRepository implements shopping.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByUser returns the user's wishlist, including items
func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*shopping.Wishlist, error) {
	var w shopping.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("wishlist_items.created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wishlist: %w", err)
	}
	return &w, nil
}

// Save creates or updates a wishlist and synchronizes its items
func (r *GormWishlistRepository) Save(ctx context.Context, w *shopping.Wishlist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(w).Error; err != nil {
			return fmt.Errorf("failed to save wishlist: %w", err)
		}

		keep := make([]uuid.UUID, 0, len(w.Items))
		for i := range w.Items {
			if err := tx.Save(&w.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save wishlist item: %w", err)
			}
			keep = append(keep, w.Items[i].ID)
		}

		query := tx.Where("wishlist_id = ?", w.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&shopping.WishlistItem{}).Error; err != nil {
			return fmt.Errorf("failed to prune wishlist items: %w", err)
		}
		return nil
	})
}

// Delete deletes a wishlist and its items
func (r *GormWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&shopping.WishlistItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&shopping.Wishlist{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete wishlist: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormWishlistRepository implements shopping.WishlistRepository
var _ shopping.WishlistRepository = (*GormWishlistRepository)(nil)
