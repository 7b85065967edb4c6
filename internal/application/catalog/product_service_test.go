package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, variantID uuid.UUID) (*catalog.Product, *catalog.Variant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*catalog.Product), args.Get(1).(*catalog.Variant), args.Error(2)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestProductService(productRepo *MockProductRepository, categoryRepo *MockCategoryRepository) *ProductService {
	return NewProductService(productRepo, categoryRepo, zap.NewNop())
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with variants", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySlug", ctx, "classic-tee").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := svc.Create(ctx, CreateProductInput{
			Name:          "Classic Tee",
			Description:   "A plain cotton tee",
			Brand:         "Shopora",
			OriginalPrice: decimal.NewFromFloat(29.99),
			Variants: []CreateVariantInput{
				{SKU: "TEE-BLK-M", Color: "Black", Size: "M", Stock: 10},
				{SKU: "TEE-BLK-L", Color: "Black", Size: "L", Stock: 5},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "classic-tee", result.Slug)
		assert.Equal(t, 15, result.TotalStock)
		require.Len(t, result.Variants, 2)
		assert.True(t, result.EffectivePrice.Equal(decimal.NewFromFloat(29.99)))
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySlug", ctx, "classic-tee").Return(true, nil)

		_, err := svc.Create(ctx, CreateProductInput{
			Name:          "Classic Tee",
			OriginalPrice: decimal.NewFromFloat(29.99),
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
		productRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)
		categoryID := uuid.New()

		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateProductInput{
			Name:          "Classic Tee",
			OriginalPrice: decimal.NewFromFloat(29.99),
			CategoryID:    &categoryID,
		})

		assertDomainErrorCode(t, err, "INVALID_CATEGORY")
	})

	t.Run("sale price affects effective price", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySlug", ctx, mock.Anything).Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		sale := decimal.NewFromFloat(19.99)
		result, err := svc.Create(ctx, CreateProductInput{
			Name:          "Discounted Tee",
			OriginalPrice: decimal.NewFromFloat(29.99),
			SalePrice:     &sale,
		})

		require.NoError(t, err)
		assert.True(t, result.EffectivePrice.Equal(sale))
	})
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		product, err := catalog.NewProduct("Classic Tee", "", "Shopora", decimal.NewFromFloat(29.99))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		result, err := svc.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, result.ID)
	})

	t.Run("missing product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)
		id := uuid.New()

		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Get(ctx, id)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := newTestProductService(productRepo, categoryRepo)

	p1, err := catalog.NewProduct("Tee One", "", "Shopora", decimal.NewFromFloat(10))
	require.NoError(t, err)
	p2, err := catalog.NewProduct("Tee Two", "", "Shopora", decimal.NewFromFloat(20))
	require.NoError(t, err)

	productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*p1, *p2}, nil)
	productRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	result, err := svc.List(ctx, ListProductsInput{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, result.Products, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}

func TestProductService_Variants(t *testing.T) {
	ctx := context.Background()

	t.Run("add variant", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		product, err := catalog.NewProduct("Classic Tee", "", "Shopora", decimal.NewFromFloat(29.99))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		result, err := svc.AddVariant(ctx, product.ID, CreateVariantInput{
			SKU: "TEE-RED-S", Color: "Red", Size: "S", Stock: 3,
		})
		require.NoError(t, err)
		require.Len(t, result.Variants, 1)
		assert.Equal(t, "TEE-RED-S", result.Variants[0].SKU)
	})

	t.Run("duplicate SKU rejected by aggregate", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestProductService(productRepo, categoryRepo)

		product, err := catalog.NewProduct("Classic Tee", "", "Shopora", decimal.NewFromFloat(29.99))
		require.NoError(t, err)
		_, err = product.AddVariant("TEE-RED-S", "Red", "S", 3, nil)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = svc.AddVariant(ctx, product.ID, CreateVariantInput{
			SKU: "TEE-RED-S", Color: "Red", Size: "S", Stock: 1,
		})
		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_SetStatus(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := newTestProductService(productRepo, categoryRepo)

	product, err := catalog.NewProduct("Classic Tee", "", "Shopora", decimal.NewFromFloat(29.99))
	require.NoError(t, err)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	result, err := svc.SetStatus(ctx, product.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)

	_, err = svc.SetStatus(ctx, product.ID, "bogus")
	assertDomainErrorCode(t, err, "INVALID_STATUS")
}
