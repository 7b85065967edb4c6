package shopping

import (
	"context"

	"github.com/google/uuid"
)

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByUser returns the user's wishlist, including items.
	// Returns shared.ErrNotFound when the user has no wishlist yet.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Wishlist, error)

	// Save creates or updates a wishlist and synchronizes its items
	Save(ctx context.Context, w *Wishlist) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// ComparisonRepository defines the interface for comparison persistence
type ComparisonRepository interface {
	// FindByUser returns the user's comparison list, including items.
	// Returns shared.ErrNotFound when the user has no comparison yet.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Comparison, error)

	// Save creates or updates a comparison and synchronizes its items
	Save(ctx context.Context, c *Comparison) error

	Delete(ctx context.Context, id uuid.UUID) error
}
