package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderFilter defines query options for listing orders
type OrderFilter struct {
	UserID   *uuid.UUID
	Status   *OrderStatus
	Page     int
	PageSize int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber looks up an order by its order number.
	// Returns shared.ErrNotFound when no order matches.
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)

	FindAll(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)
	Save(ctx context.Context, o *Order) error
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
}
