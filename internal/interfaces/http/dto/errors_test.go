package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeCouponInvalid, http.StatusUnprocessableEntity},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, GetHTTPStatus(tc.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
	assert.Equal(t, ErrCodeCouponInvalid, NormalizeErrorCode("COUPON_EXPIRED"))
	assert.Equal(t, ErrCodeCartNotActive, NormalizeErrorCode("CART_NOT_ACTIVE"))
	// Already normalized or unknown codes pass through
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestResponseEnvelope(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := NewSuccessResponse(map[string]string{"k": "v"})
		assert.True(t, r.Success)
		assert.Nil(t, r.Errors)
	})

	t.Run("success with message", func(t *testing.T) {
		r := NewSuccessMessageResponse("Item added to cart", nil)
		assert.True(t, r.Success)
		assert.Equal(t, "Item added to cart", r.Message)
	})

	t.Run("error", func(t *testing.T) {
		r := NewErrorResponse(ErrCodeNotFound, "cart not found")
		assert.False(t, r.Success)
		assert.Equal(t, ErrCodeNotFound, r.Errors.Code)
		assert.Equal(t, "cart not found", r.Message)
	})

	t.Run("validation error carries fields", func(t *testing.T) {
		r := NewValidationErrorResponse("invalid input", map[string]string{"quantity": "must be at least 1"})
		assert.False(t, r.Success)
		assert.Equal(t, ErrCodeValidation, r.Errors.Code)
		assert.Equal(t, "must be at least 1", r.Errors.Fields["quantity"])
	})

	t.Run("meta pagination", func(t *testing.T) {
		r := NewSuccessResponseWithMeta([]int{1, 2}, 45, 2, 20)
		assert.Equal(t, int64(45), r.Meta.Total)
		assert.Equal(t, 3, r.Meta.TotalPages)
	})
}

func TestListRequestNormalize(t *testing.T) {
	var r ListRequest
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)
}
