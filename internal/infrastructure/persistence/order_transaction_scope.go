package persistence

import (
	"context"

	"gorm.io/gorm"

	apporder "github.com/shopora/backend/internal/application/order"
	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/order"
	"github.com/shopora/backend/internal/domain/promotion"
)

// GormOrderTransactionScope implements the order TransactionScope using GORM
// transactions. Checkout writes the order, closes the cart and records
// coupon usage in one transaction; cancellation returns variant stock.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOrderTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormOrderTransactionalRepositories provides repositories bound to one transaction
type gormOrderTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// CartRepo returns the cart repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) CartRepo() cart.CartRepository {
	return NewGormCartRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CouponRepo returns the coupon repository scoped to the current transaction
func (r *gormOrderTransactionalRepositories) CouponRepo() promotion.CouponRepository {
	return NewGormCouponRepository(r.tx)
}

var (
	_ apporder.TransactionScope          = (*GormOrderTransactionScope)(nil)
	_ apporder.TransactionalRepositories = (*gormOrderTransactionalRepositories)(nil)
)
