package persistence

import "strings"

// Whitelists of sortable columns per entity. Anything not listed falls back
// to the default sort column to keep user input out of ORDER BY clauses.
var (
	// CommonSortFields are valid for every entity
	CommonSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
	}

	// ProductSortFields are valid sort fields for products
	ProductSortFields = map[string]bool{
		"name":           true,
		"slug":           true,
		"brand":          true,
		"original_price": true,
		"status":         true,
	}

	// CategorySortFields are valid sort fields for categories
	CategorySortFields = map[string]bool{
		"name":       true,
		"slug":       true,
		"sort_order": true,
	}

	// UserSortFields are valid sort fields for users
	UserSortFields = map[string]bool{
		"email":         true,
		"last_name":     true,
		"last_login_at": true,
	}

	// OrderSortFields are valid sort fields for orders
	OrderSortFields = map[string]bool{
		"order_number": true,
		"status":       true,
		"total":        true,
	}

	// CouponSortFields are valid sort fields for coupons
	CouponSortFields = map[string]bool{
		"code":       true,
		"expires_at": true,
		"used_count": true,
	}
)

// ValidateSortOrder normalizes a sort direction, defaulting to DESC
func ValidateSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks a sort field against the entity whitelist plus the
// common fields, returning the default field when it is not allowed
func ValidateSortField(field string, allowed map[string]bool, defaultField string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	if allowed[field] || CommonSortFields[field] {
		return field
	}
	return defaultField
}
