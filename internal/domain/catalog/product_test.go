package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopora/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Trail Runner Pro", "Lightweight trail shoe", "Northpeak", decimal.NewFromInt(120))
	require.NoError(t, err)
	return product
}

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Trail Runner Pro", "trail-runner-pro"},
		{"Café Crème 250g", "cafe-creme-250g"},
		{"  spaced   out  ", "spaced-out"},
		{"UPPER_case--mix", "upper-case-mix"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "slug for %q", tc.in)
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with slug", func(t *testing.T) {
		product := newTestProduct(t)
		assert.Equal(t, "trail-runner-pro", product.Slug)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.IsActive())
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "", "", decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Thing", "", "", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProductSetPrices(t *testing.T) {
	product := newTestProduct(t)

	t.Run("sets sale price below original", func(t *testing.T) {
		sale := decimal.NewFromInt(90)
		require.NoError(t, product.SetPrices(decimal.NewFromInt(120), &sale))
		assert.True(t, product.EffectiveSalePrice().Equal(sale))
	})

	t.Run("rejects sale price above original", func(t *testing.T) {
		sale := decimal.NewFromInt(130)
		assert.Error(t, product.SetPrices(decimal.NewFromInt(120), &sale))
	})

	t.Run("falls back to original without sale price", func(t *testing.T) {
		require.NoError(t, product.SetPrices(decimal.NewFromInt(120), nil))
		assert.True(t, product.EffectiveSalePrice().Equal(decimal.NewFromInt(120)))
	})
}

func TestProductVariants(t *testing.T) {
	product := newTestProduct(t)

	t.Run("adds variant", func(t *testing.T) {
		variant, err := product.AddVariant("trp-red-42", "Red", "42", 10, nil)
		require.NoError(t, err)
		assert.Equal(t, "TRP-RED-42", variant.SKU)
		assert.Equal(t, 10, variant.Stock)
		assert.Equal(t, "Red / 42", variant.DisplayName())
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		_, err := product.AddVariant("TRP-RED-42", "Red", "42", 5, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := product.AddVariant("TRP-BLUE-42", "Blue", "42", -1, nil)
		assert.Error(t, err)
	})

	t.Run("finds and removes variants", func(t *testing.T) {
		variant, err := product.AddVariant("TRP-BLUE-43", "Blue", "43", 4, nil)
		require.NoError(t, err)

		found, err := product.GetVariant(variant.ID)
		require.NoError(t, err)
		assert.Equal(t, variant.SKU, found.SKU)

		require.NoError(t, product.RemoveVariant(variant.ID))
		_, err = product.GetVariant(variant.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("total stock sums variants", func(t *testing.T) {
		assert.Equal(t, 10, product.TotalStock())
	})
}

func TestVariantStock(t *testing.T) {
	product := newTestProduct(t)
	variant, err := product.AddVariant("TRP-GRN-41", "Green", "41", 5, nil)
	require.NoError(t, err)

	t.Run("reserve decrements stock", func(t *testing.T) {
		require.NoError(t, variant.Reserve(3))
		assert.Equal(t, 2, variant.Stock)
	})

	t.Run("reserve beyond stock fails and leaves stock unchanged", func(t *testing.T) {
		err := variant.Reserve(3)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.Equal(t, 2, variant.Stock)
	})

	t.Run("release returns stock", func(t *testing.T) {
		require.NoError(t, variant.Release(3))
		assert.Equal(t, 5, variant.Stock)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		assert.Error(t, variant.Reserve(0))
		assert.Error(t, variant.Release(-1))
	})
}

func TestUnitPriceFor(t *testing.T) {
	product := newTestProduct(t)
	sale := decimal.NewFromInt(90)
	require.NoError(t, product.SetPrices(decimal.NewFromInt(120), &sale))

	override := decimal.NewFromInt(95)
	withOverride, err := product.AddVariant("TRP-XL", "", "XL", 3, &override)
	require.NoError(t, err)
	plain, err := product.AddVariant("TRP-M", "", "M", 3, nil)
	require.NoError(t, err)

	assert.True(t, product.UnitPriceFor(withOverride).Equal(override))
	assert.True(t, product.UnitPriceFor(plain).Equal(sale))
	assert.True(t, product.UnitPriceFor(nil).Equal(sale))
}

func TestProductLifecycle(t *testing.T) {
	product := newTestProduct(t)

	require.NoError(t, product.Deactivate())
	assert.False(t, product.IsActive())

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive())

	product.SetFeatured(true)
	product.Archive()
	assert.Equal(t, ProductStatusArchived, product.Status)
	assert.False(t, product.Featured)
	assert.Error(t, product.Activate())
	assert.Error(t, product.Deactivate())
}

func TestCategory(t *testing.T) {
	t.Run("creates category with slug", func(t *testing.T) {
		category, err := NewCategory("Running Shoes", "All running shoes")
		require.NoError(t, err)
		assert.Equal(t, "running-shoes", category.Slug)
		assert.True(t, category.IsActive)
		assert.True(t, category.IsRoot())
	})

	t.Run("creates child category", func(t *testing.T) {
		parent, err := NewCategory("Shoes", "")
		require.NoError(t, err)
		child, err := NewChildCategory("Trail", "", parent)
		require.NoError(t, err)
		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
		assert.False(t, child.IsRoot())
	})

	t.Run("rejects missing parent", func(t *testing.T) {
		_, err := NewChildCategory("Trail", "", nil)
		assert.Error(t, err)
	})

	t.Run("update regenerates slug", func(t *testing.T) {
		category, err := NewCategory("Old Name", "")
		require.NoError(t, err)
		require.NoError(t, category.Update("New Name", "desc"))
		assert.Equal(t, "new-name", category.Slug)
	})
}
