package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/order"
	"github.com/shopora/backend/internal/domain/shared/valueobject"
)

// CheckoutInput contains the input for converting a cart into an order
type CheckoutInput struct {
	UserID     uuid.UUID
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// ListOrdersInput contains filter options for order listing
type ListOrdersInput struct {
	UserID   *uuid.UUID
	Status   string
	Page     int
	PageSize int
}

// OrderItemResult is the order line representation returned to callers
type OrderItemResult struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	VariantID     uuid.UUID
	ProductName   string
	ProductSlug   string
	ImageURL      string
	Color         string
	Size          string
	Quantity      int
	Price         decimal.Decimal
	TotalPrice    decimal.Decimal
	IsGift        bool
	GiftMessage   string
	Customization string
}

// OrderResult is the order representation returned to callers
type OrderResult struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	Status          string
	Items           []OrderItemResult
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	Currency        string
	CouponCode      string
	PaymentMethod   string
	ShippingMethod  string
	ShippingAddress valueobject.Address
	Notes           string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CreatedAt       time.Time
}

// OrderListResult is a page of orders with the total count
type OrderListResult struct {
	Orders   []OrderResult
	Total    int64
	Page     int
	PageSize int
}

func toOrderResult(o *order.Order) *OrderResult {
	items := make([]OrderItemResult, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResult{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			ProductName:   item.ProductName,
			ProductSlug:   item.ProductSlug,
			ImageURL:      item.ImageURL,
			Color:         item.Color,
			Size:          item.Size,
			Quantity:      item.Quantity,
			Price:         item.Price,
			TotalPrice:    item.TotalPrice,
			IsGift:        item.IsGift,
			GiftMessage:   item.GiftMessage,
			Customization: item.Customization,
		})
	}
	return &OrderResult{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Items:           items,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		ShippingAmount:  o.ShippingAmount,
		DiscountAmount:  o.DiscountAmount,
		Total:           o.Total,
		Currency:        o.Currency,
		CouponCode:      o.CouponCode,
		PaymentMethod:   o.PaymentMethod,
		ShippingMethod:  o.ShippingMethod,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
	}
}
