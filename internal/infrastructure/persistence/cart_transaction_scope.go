package persistence

import (
	"context"

	"gorm.io/gorm"

	appcart "github.com/shopora/backend/internal/application/cart"
	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/promotion"
)

// GormCartTransactionScope implements the cart TransactionScope using GORM
// transactions. Cart mutations touch the cart and product aggregates (and
// the coupon table on discount refresh), which must commit together.
type GormCartTransactionScope struct {
	db *gorm.DB
}

// NewGormCartTransactionScope creates a new GormCartTransactionScope
func NewGormCartTransactionScope(db *gorm.DB) *GormCartTransactionScope {
	return &GormCartTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCartTransactionScope) Execute(ctx context.Context, fn func(repos appcart.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCartTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormCartTransactionalRepositories provides repositories bound to one transaction
type gormCartTransactionalRepositories struct {
	tx *gorm.DB
}

// CartRepo returns the cart repository scoped to the current transaction
func (r *gormCartTransactionalRepositories) CartRepo() cart.CartRepository {
	return NewGormCartRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCartTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CouponRepo returns the coupon repository scoped to the current transaction
func (r *gormCartTransactionalRepositories) CouponRepo() promotion.CouponRepository {
	return NewGormCouponRepository(r.tx)
}

var (
	_ appcart.TransactionScope          = (*GormCartTransactionScope)(nil)
	_ appcart.TransactionalRepositories = (*gormCartTransactionalRepositories)(nil)
)
