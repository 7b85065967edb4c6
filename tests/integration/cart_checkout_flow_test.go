package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/shopora/backend/internal/application/cart"
	orderapp "github.com/shopora/backend/internal/application/order"
	domaincart "github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/infrastructure/persistence"
)

type cartFlowFixture struct {
	productRepo *persistence.GormProductRepository
	cartRepo    *persistence.GormCartRepository
	cartService *cartapp.CartService
	orderSvc    *orderapp.OrderService
}

func newCartFlowFixture(t *testing.T, tdb *TestDB) *cartFlowFixture {
	t.Helper()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	cartRepo := persistence.NewGormCartRepository(tdb.DB)
	couponRepo := persistence.NewGormCouponRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)

	cartService := cartapp.NewCartService(
		cartRepo, productRepo, couponRepo,
		persistence.NewGormCartTransactionScope(tdb.DB),
		domaincart.DefaultPricingPolicy(),
		zap.NewNop(),
	)
	orderSvc := orderapp.NewOrderService(
		orderRepo,
		persistence.NewGormOrderTransactionScope(tdb.DB),
		zap.NewNop(),
	)

	return &cartFlowFixture{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		cartService: cartService,
		orderSvc:    orderSvc,
	}
}

func seedProduct(t *testing.T, repo *persistence.GormProductRepository, name string, price string, stock int) (*catalog.Product, *catalog.Variant) {
	t.Helper()

	product, err := catalog.NewProduct(name, "Integration test product", "Acme", decimal.RequireFromString(price))
	require.NoError(t, err)
	variant, err := product.AddVariant("SKU-"+uuid.NewString()[:8], "black", "M", stock, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product, variant
}

func variantStock(t *testing.T, repo *persistence.GormProductRepository, variantID uuid.UUID) int {
	t.Helper()

	_, variant, err := repo.FindVariantByID(context.Background(), variantID)
	require.NoError(t, err)
	return variant.Stock
}

func TestCartCheckoutFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	fx := newCartFlowFixture(t, tdb)
	ctx := context.Background()

	t.Run("adding to cart reserves stock", func(t *testing.T) {
		product, variant := seedProduct(t, fx.productRepo, "Wool Sweater", "49.99", 10)
		userID := uuid.New()

		result, err := fx.cartService.AddItem(ctx, cartapp.AddItemInput{
			UserID:    userID,
			ProductID: product.ID,
			VariantID: variant.ID,
			Quantity:  3,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalItems)
		assert.Equal(t, "149.97", result.Subtotal.String())
		assert.Equal(t, 7, variantStock(t, fx.productRepo, variant.ID))
	})

	t.Run("insufficient stock rolls everything back", func(t *testing.T) {
		product, variant := seedProduct(t, fx.productRepo, "Leather Belt", "19.99", 2)
		userID := uuid.New()

		_, err := fx.cartService.AddItem(ctx, cartapp.AddItemInput{
			UserID:    userID,
			ProductID: product.ID,
			VariantID: variant.ID,
			Quantity:  5,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		// Stock untouched and no cart line was committed
		assert.Equal(t, 2, variantStock(t, fx.productRepo, variant.ID))
		cart, err := fx.cartService.GetCart(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("checkout converts the cart into a pending order", func(t *testing.T) {
		product, variant := seedProduct(t, fx.productRepo, "Canvas Tote", "25.00", 8)
		userID := uuid.New()

		_, err := fx.cartService.AddItem(ctx, cartapp.AddItemInput{
			UserID:    userID,
			ProductID: product.ID,
			VariantID: variant.ID,
			Quantity:  2,
		})
		require.NoError(t, err)

		order, err := fx.orderSvc.Checkout(ctx, orderapp.CheckoutInput{
			UserID:     userID,
			FullName:   "Jamie Doe",
			Line1:      "1 Main St",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62704",
			Country:    "US",
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", order.Status)
		assert.NotEmpty(t, order.OrderNumber)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)
		// subtotal 50.00, tax 5.00, shipping 10.00
		assert.Equal(t, "65", order.Total.String())

		// A fresh empty cart replaces the converted one
		cart, err := fx.cartService.GetCart(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("cancelling a pending order restores stock", func(t *testing.T) {
		product, variant := seedProduct(t, fx.productRepo, "Denim Jacket", "80.00", 5)
		userID := uuid.New()

		_, err := fx.cartService.AddItem(ctx, cartapp.AddItemInput{
			UserID:    userID,
			ProductID: product.ID,
			VariantID: variant.ID,
			Quantity:  4,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, variantStock(t, fx.productRepo, variant.ID))

		order, err := fx.orderSvc.Checkout(ctx, orderapp.CheckoutInput{
			UserID:     userID,
			FullName:   "Jamie Doe",
			Line1:      "1 Main St",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62704",
			Country:    "US",
		})
		require.NoError(t, err)

		cancelled, err := fx.orderSvc.Cancel(ctx, userID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", cancelled.Status)
		assert.Equal(t, 5, variantStock(t, fx.productRepo, variant.ID))
	})
}
