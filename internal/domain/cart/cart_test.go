package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopora/backend/internal/domain/shared"
)

var testPolicy = DefaultPricingPolicy()

func testSnapshot(price string) ItemSnapshot {
	p := decimal.RequireFromString(price)
	return ItemSnapshot{
		ProductID:     uuid.New(),
		VariantID:     uuid.New(),
		ProductName:   "Trail Runner Pro",
		ProductSlug:   "trail-runner-pro",
		ImageURL:      "https://cdn.example.com/trp.jpg",
		Color:         "Red",
		Size:          "42",
		OriginalPrice: p,
		SalePrice:     p,
		Price:         p,
	}
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart(uuid.New(), testPolicy)
	require.NoError(t, err)
	return c
}

func mustAddItem(t *testing.T, c *Cart, snapshot ItemSnapshot, quantity int) *CartItem {
	t.Helper()
	item, err := NewCartItem(snapshot, quantity)
	require.NoError(t, err)
	require.NoError(t, c.UpsertItem(item, testPolicy))
	added := c.GetItemByVariant(snapshot.ProductID, snapshot.VariantID)
	require.NotNil(t, added)
	return added
}

func assertInvariant(t *testing.T, c *Cart) {
	t.Helper()
	expected := c.Subtotal.Add(c.TaxAmount).Add(c.ShippingAmount).Sub(c.DiscountAmount)
	if expected.IsNegative() {
		expected = decimal.Zero
	}
	assert.True(t, c.Total.Equal(expected),
		"total %s != subtotal %s + tax %s + shipping %s - discount %s",
		c.Total, c.Subtotal, c.TaxAmount, c.ShippingAmount, c.DiscountAmount)
	for _, item := range c.Items {
		assert.True(t, item.TotalPrice.Equal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			"item total %s != price %s x quantity %d", item.TotalPrice, item.Price, item.Quantity)
	}
}

func TestNewCart(t *testing.T) {
	t.Run("creates empty active cart", func(t *testing.T) {
		c := newTestCart(t)
		assert.Equal(t, CartStatusActive, c.Status)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.Total.IsZero())
		assert.Equal(t, "USD", c.Currency)
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewCart(uuid.Nil, testPolicy)
		assert.Error(t, err)
	})
}

func TestNewCartItem(t *testing.T) {
	t.Run("computes line total", func(t *testing.T) {
		item, err := NewCartItem(testSnapshot("19.99"), 3)
		require.NoError(t, err)
		assert.Equal(t, "59.97", item.TotalPrice.String())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewCartItem(testSnapshot("19.99"), 0)
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		snapshot := testSnapshot("19.99")
		snapshot.ProductID = uuid.Nil
		_, err := NewCartItem(snapshot, 1)
		assert.Error(t, err)
	})
}

func TestCartUpsertItem(t *testing.T) {
	t.Run("adds new line and recomputes totals", func(t *testing.T) {
		c := newTestCart(t)
		mustAddItem(t, c, testSnapshot("25"), 2)

		assert.Equal(t, "50", c.Subtotal.String())
		assert.Equal(t, "5", c.TaxAmount.String())
		assert.Equal(t, "10", c.ShippingAmount.String())
		assert.Equal(t, "65", c.Total.String())
		assert.Equal(t, 2, c.TotalItems)
		assertInvariant(t, c)
	})

	t.Run("merges same product/variant and refreshes price", func(t *testing.T) {
		c := newTestCart(t)
		snapshot := testSnapshot("25")
		mustAddItem(t, c, snapshot, 2)

		// Same pair again at a new current price
		snapshot.Price = decimal.RequireFromString("20")
		snapshot.SalePrice = snapshot.Price
		again, err := NewCartItem(snapshot, 1)
		require.NoError(t, err)
		require.NoError(t, c.UpsertItem(again, testPolicy))

		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
		assert.Equal(t, "20", c.Items[0].Price.String())
		assert.Equal(t, "60", c.Items[0].TotalPrice.String())
		assertInvariant(t, c)
	})

	t.Run("different variants get separate lines", func(t *testing.T) {
		c := newTestCart(t)
		mustAddItem(t, c, testSnapshot("25"), 1)
		mustAddItem(t, c, testSnapshot("30"), 1)
		assert.Len(t, c.Items, 2)
		assert.Equal(t, "55", c.Subtotal.String())
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	c := newTestCart(t)
	item := mustAddItem(t, c, testSnapshot("40"), 1)

	t.Run("updates quantity and totals", func(t *testing.T) {
		require.NoError(t, c.UpdateItemQuantity(item.ID, 3, testPolicy))
		assert.Equal(t, "120", c.Subtotal.String())
		// Free shipping kicks in above the threshold
		assert.True(t, c.ShippingAmount.IsZero())
		assertInvariant(t, c)
	})

	t.Run("unknown item yields not found", func(t *testing.T) {
		err := c.UpdateItemQuantity(uuid.New(), 2, testPolicy)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		assert.Error(t, c.UpdateItemQuantity(item.ID, 0, testPolicy))
	})
}

func TestCartUpdateItemDetails(t *testing.T) {
	c := newTestCart(t)
	item := mustAddItem(t, c, testSnapshot("40"), 1)

	require.NoError(t, c.UpdateItemDetails(item.ID, true, "Happy birthday!", "engrave: JD"))
	assert.True(t, c.Items[0].IsGift)
	assert.Equal(t, "Happy birthday!", c.Items[0].GiftMessage)

	// Turning the gift flag off clears the message
	require.NoError(t, c.UpdateItemDetails(item.ID, false, "ignored", ""))
	assert.Empty(t, c.Items[0].GiftMessage)
}

func TestCartRemoveItem(t *testing.T) {
	c := newTestCart(t)
	first := mustAddItem(t, c, testSnapshot("25"), 2)
	mustAddItem(t, c, testSnapshot("30"), 1)

	require.NoError(t, c.RemoveItem(first.ID, testPolicy))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "30", c.Subtotal.String())
	assertInvariant(t, c)

	assert.ErrorIs(t, c.RemoveItem(first.ID, testPolicy), shared.ErrNotFound)
}

func TestCartClear(t *testing.T) {
	c := newTestCart(t)
	mustAddItem(t, c, testSnapshot("60"), 2)
	require.NoError(t, c.ApplyDiscount(uuid.New(), "SAVE10", decimal.NewFromInt(10), testPolicy))

	require.NoError(t, c.Clear(testPolicy))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.TaxAmount.IsZero())
	assert.True(t, c.ShippingAmount.IsZero())
	assert.True(t, c.DiscountAmount.IsZero())
	assert.True(t, c.Total.IsZero())
	assert.False(t, c.HasCoupon())
	assert.Empty(t, c.CouponCode)
}

func TestCartDiscount(t *testing.T) {
	c := newTestCart(t)
	mustAddItem(t, c, testSnapshot("120"), 1)

	t.Run("apply records coupon and lowers total", func(t *testing.T) {
		couponID := uuid.New()
		require.NoError(t, c.ApplyDiscount(couponID, "save20", decimal.NewFromInt(20), testPolicy))
		assert.True(t, c.HasCoupon())
		assert.Equal(t, "SAVE20", c.CouponCode)
		assert.Equal(t, "112", c.Total.String()) // 120 + 12 tax + 0 shipping - 20
		assertInvariant(t, c)
	})

	t.Run("oversized discount clamps total at zero", func(t *testing.T) {
		require.NoError(t, c.ApplyDiscount(uuid.New(), "BIG", decimal.NewFromInt(500), testPolicy))
		assert.True(t, c.Total.IsZero())
		assertInvariant(t, c)
	})

	t.Run("remove restores undiscounted total", func(t *testing.T) {
		require.NoError(t, c.RemoveDiscount(testPolicy))
		assert.False(t, c.HasCoupon())
		assert.True(t, c.DiscountAmount.IsZero())
		assert.Equal(t, "132", c.Total.String())
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		assert.Error(t, c.ApplyDiscount(uuid.New(), "NEG", decimal.NewFromInt(-1), testPolicy))
	})
}

func TestCartSettings(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.UpdateSettings("card", "express", "leave at the door"))
	assert.Equal(t, "card", c.PaymentMethod)
	assert.Equal(t, "express", c.ShippingMethod)
	assert.Equal(t, "leave at the door", c.Notes)
}

func TestCartMarkConverted(t *testing.T) {
	t.Run("rejects empty cart", func(t *testing.T) {
		c := newTestCart(t)
		assert.Error(t, c.MarkConverted())
	})

	t.Run("converted cart refuses further mutation", func(t *testing.T) {
		c := newTestCart(t)
		item := mustAddItem(t, c, testSnapshot("25"), 1)
		require.NoError(t, c.MarkConverted())
		assert.Equal(t, CartStatusConverted, c.Status)

		other, err := NewCartItem(testSnapshot("10"), 1)
		require.NoError(t, err)
		assert.Error(t, c.UpsertItem(other, testPolicy))
		assert.Error(t, c.UpdateItemQuantity(item.ID, 2, testPolicy))
		assert.Error(t, c.RemoveItem(item.ID, testPolicy))
		assert.Error(t, c.Clear(testPolicy))
		assert.Error(t, c.MarkConverted())
	})
}
