package cart

import (
	"context"

	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/promotion"
)

// TransactionScope provides transactional access to the repositories a cart
// mutation touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// Cart mutations cross two aggregates: the cart itself and the product whose
// variant stock is reserved or released. Both must be saved in the same
// transaction, otherwise a failed cart save would leak reserved stock.
type TransactionalRepositories interface {
	// CartRepo returns the cart repository scoped to the current transaction
	CartRepo() cart.CartRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// CouponRepo returns the coupon repository scoped to the current transaction
	CouponRepo() promotion.CouponRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	couponRepo  promotion.CouponRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo promotion.CouponRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
	}
}

// Execute runs the function with the wrapped repositories, without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CartRepo returns the cart repository
func (s *NoOpTransactionScope) CartRepo() cart.CartRepository {
	return s.cartRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// CouponRepo returns the coupon repository
func (s *NoOpTransactionScope) CouponRepo() promotion.CouponRepository {
	return s.couponRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
