package cart

import (
	"github.com/shopspring/decimal"
)

// PricingPolicy carries the storewide rates used when deriving cart totals.
// Values come from configuration, not from code.
type PricingPolicy struct {
	// TaxRate is the fraction of the subtotal charged as tax (0.10 = 10%)
	TaxRate decimal.Decimal
	// FreeShippingThreshold is the subtotal above which shipping is free
	FreeShippingThreshold decimal.Decimal
	// ShippingFee is the flat fee charged below the threshold
	ShippingFee decimal.Decimal
	// Currency is the ISO 4217 code carried on new carts
	Currency string
}

// DefaultPricingPolicy returns the standard storefront rates:
// 10% tax, $10 flat shipping, free shipping above $100
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.NewFromFloat(0.10),
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.NewFromInt(10),
		Currency:              "USD",
	}
}

// Totals is the derived monetary state of a cart
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	TotalItems     int
}

// CalculateTotals recomputes the derived totals from the current item set.
// Pure function: subtotal is the sum of item totals, tax is a fraction of the
// subtotal, shipping is waived above the free-shipping threshold, and the
// grand total is clamped at zero after subtracting the discount.
// An empty cart yields all-zero totals regardless of discount.
func CalculateTotals(items []CartItem, discount decimal.Decimal, policy PricingPolicy) Totals {
	if len(items) == 0 {
		return Totals{
			Subtotal:       decimal.Zero,
			TaxAmount:      decimal.Zero,
			ShippingAmount: decimal.Zero,
			DiscountAmount: decimal.Zero,
			Total:          decimal.Zero,
		}
	}

	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
		totalItems += item.Quantity
	}

	tax := subtotal.Mul(policy.TaxRate).Round(2)

	shipping := policy.ShippingFee
	if subtotal.GreaterThan(policy.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		ShippingAmount: shipping,
		DiscountAmount: discount,
		Total:          total,
		TotalItems:     totalItems,
	}
}
