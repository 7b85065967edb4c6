package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder("ASC"))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("name", ProductSortFields, "created_at"))
		assert.Equal(t, "original_price", ValidateSortField("Original_Price", ProductSortFields, "created_at"))
	})

	t.Run("accepts common fields for any entity", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("created_at", CouponSortFields, "code"))
		assert.Equal(t, "updated_at", ValidateSortField("updated_at", OrderSortFields, "created_at"))
	})

	t.Run("falls back to default on unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("password_hash", ProductSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("1; DROP TABLE products", ProductSortFields, "created_at"))
		assert.Equal(t, "sort_order", ValidateSortField("", CategorySortFields, "sort_order"))
	})
}
