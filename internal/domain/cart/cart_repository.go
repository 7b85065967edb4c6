package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindActiveByUser finds the user's single active cart, including items.
	// Returns shared.ErrNotFound when the user has no active cart.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and synchronizes its items
	// (removed lines are deleted)
	Save(ctx context.Context, c *Cart) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
