package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shopping"
)

// fakeWishlistRepository is an in-memory wishlist store
type fakeWishlistRepository struct {
	byUser map[uuid.UUID]*shopping.Wishlist
}

func newFakeWishlistRepository() *fakeWishlistRepository {
	return &fakeWishlistRepository{byUser: make(map[uuid.UUID]*shopping.Wishlist)}
}

func (r *fakeWishlistRepository) FindByUser(_ context.Context, userID uuid.UUID) (*shopping.Wishlist, error) {
	if w, ok := r.byUser[userID]; ok {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeWishlistRepository) Save(_ context.Context, w *shopping.Wishlist) error {
	r.byUser[w.UserID] = w
	return nil
}

func (r *fakeWishlistRepository) Delete(_ context.Context, id uuid.UUID) error {
	for userID, w := range r.byUser {
		if w.ID == id {
			delete(r.byUser, userID)
		}
	}
	return nil
}

// fakeComparisonRepository is an in-memory comparison store
type fakeComparisonRepository struct {
	byUser map[uuid.UUID]*shopping.Comparison
}

func newFakeComparisonRepository() *fakeComparisonRepository {
	return &fakeComparisonRepository{byUser: make(map[uuid.UUID]*shopping.Comparison)}
}

func (r *fakeComparisonRepository) FindByUser(_ context.Context, userID uuid.UUID) (*shopping.Comparison, error) {
	if c, ok := r.byUser[userID]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeComparisonRepository) Save(_ context.Context, c *shopping.Comparison) error {
	r.byUser[c.UserID] = c
	return nil
}

func (r *fakeComparisonRepository) Delete(_ context.Context, id uuid.UUID) error {
	for userID, c := range r.byUser {
		if c.ID == id {
			delete(r.byUser, userID)
		}
	}
	return nil
}

// fakeProductRepository covers the lookups the shopping services perform
type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepository) FindBySlug(_ context.Context, _ string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepository) FindVariantByID(_ context.Context, _ uuid.UUID) (*catalog.Product, *catalog.Variant, error) {
	return nil, nil, shared.ErrNotFound
}

func (r *fakeProductRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) FindByCategory(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) FindFeatured(_ context.Context, _ int) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepository) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepository) ExistsBySlug(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func seedProduct(t *testing.T, repo *fakeProductRepository, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", "Shopora", decimal.NewFromInt(25))
	require.NoError(t, err)
	_, err = p.AddVariant("SKU-"+uuid.NewString()[:8], "Black", "M", 5, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestWishlistService(t *testing.T) {
	ctx := context.Background()

	newService := func() (*WishlistService, *fakeProductRepository) {
		productRepo := newFakeProductRepository()
		return NewWishlistService(newFakeWishlistRepository(), productRepo, zap.NewNop()), productRepo
	}

	t.Run("empty wishlist on first access", func(t *testing.T) {
		svc, _ := newService()
		result, err := svc.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, result.Products)
	})

	t.Run("add and remove products", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()
		p1 := seedProduct(t, productRepo, "Tee One")
		p2 := seedProduct(t, productRepo, "Tee Two")

		_, err := svc.AddProduct(ctx, userID, p1.ID)
		require.NoError(t, err)
		result, err := svc.AddProduct(ctx, userID, p2.ID)
		require.NoError(t, err)
		require.Len(t, result.Products, 2)
		assert.Equal(t, "Tee One", result.Products[0].Name)
		assert.True(t, result.Products[0].InStock)

		result, err = svc.RemoveProduct(ctx, userID, p1.ID)
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, p2.ID, result.Products[0].ID)
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()
		p := seedProduct(t, productRepo, "Tee One")

		_, err := svc.AddProduct(ctx, userID, p.ID)
		require.NoError(t, err)
		result, err := svc.AddProduct(ctx, userID, p.ID)
		require.NoError(t, err)
		assert.Len(t, result.Products, 1)
	})

	t.Run("unknown product cannot be added", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.AddProduct(ctx, uuid.New(), uuid.New())
		require.Error(t, err)
	})

	t.Run("removing a product that is not listed fails", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()
		p := seedProduct(t, productRepo, "Tee One")
		_, err := svc.AddProduct(ctx, userID, p.ID)
		require.NoError(t, err)

		_, err = svc.RemoveProduct(ctx, userID, uuid.New())
		require.Error(t, err)
	})
}

func TestComparisonService(t *testing.T) {
	ctx := context.Background()

	newService := func() (*ComparisonService, *fakeProductRepository) {
		productRepo := newFakeProductRepository()
		return NewComparisonService(newFakeComparisonRepository(), productRepo, zap.NewNop()), productRepo
	}

	t.Run("holds at most four products", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()

		for i := 0; i < 4; i++ {
			p := seedProduct(t, productRepo, "Product "+uuid.NewString()[:8])
			_, err := svc.AddProduct(ctx, userID, p.ID)
			require.NoError(t, err)
		}

		fifth := seedProduct(t, productRepo, "One Too Many")
		_, err := svc.AddProduct(ctx, userID, fifth.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "COMPARISON_FULL", domainErr.Code)
	})

	t.Run("duplicate product is rejected", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()
		p := seedProduct(t, productRepo, "Tee One")

		_, err := svc.AddProduct(ctx, userID, p.ID)
		require.NoError(t, err)
		_, err = svc.AddProduct(ctx, userID, p.ID)
		require.Error(t, err)
	})

	t.Run("remove and clear", func(t *testing.T) {
		svc, productRepo := newService()
		userID := uuid.New()
		p1 := seedProduct(t, productRepo, "Tee One")
		p2 := seedProduct(t, productRepo, "Tee Two")

		_, err := svc.AddProduct(ctx, userID, p1.ID)
		require.NoError(t, err)
		_, err = svc.AddProduct(ctx, userID, p2.ID)
		require.NoError(t, err)

		result, err := svc.RemoveProduct(ctx, userID, p1.ID)
		require.NoError(t, err)
		assert.Len(t, result.Products, 1)

		require.NoError(t, svc.Clear(ctx, userID))
		result, err = svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, result.Products)
	})
}
