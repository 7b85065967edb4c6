package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an aggregate root for a placed order. Items and amounts are
// snapshots taken from the cart at checkout and never change afterwards.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string              `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status          OrderStatus         `gorm:"type:varchar(20);not null;index"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Total           decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Currency        string              `gorm:"type:varchar(3);not null;default:'USD'"`
	CouponID        *uuid.UUID          `gorm:"type:uuid"`
	CouponCode      string              `gorm:"type:varchar(50)"`
	PaymentMethod   string              `gorm:"type:varchar(50)"`
	ShippingMethod  string              `gorm:"type:varchar(50)"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	Notes           string              `gorm:"type:text"`
	PaidAt          *time.Time          `gorm:""`
	ShippedAt       *time.Time          `gorm:""`
	DeliveredAt     *time.Time          `gorm:""`
	CancelledAt     *time.Time          `gorm:""`
}

// OrderItem is a snapshot of a cart line at checkout
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	ProductSlug   string          `gorm:"type:varchar(220)"`
	ImageURL      string          `gorm:"type:varchar(500)"`
	Color         string          `gorm:"type:varchar(50)"`
	Size          string          `gorm:"type:varchar(50)"`
	Quantity      int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsGift        bool            `gorm:"not null;default:false"`
	GiftMessage   string          `gorm:"type:varchar(500)"`
	Customization string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// GenerateOrderNumber produces an order number of the form ORD-YYYYMMDD-XXXX
// where XXXX is a random four digit suffix. Uniqueness is enforced by the
// database index; callers retry on conflict.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", at.Format("20060102"), rand.Intn(10000))
}

// NewOrderFromCart snapshots an active cart into a pending order.
// The cart must not be empty.
func NewOrderFromCart(c *cart.Cart, orderNumber string, shippingAddress valueobject.Address) (*Order, error) {
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "cannot place an order from an empty cart")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "order number is required")
	}
	if shippingAddress.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "shipping address is required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            c.UserID,
		Status:            OrderStatusPending,
		Subtotal:          c.Subtotal,
		TaxAmount:         c.TaxAmount,
		ShippingAmount:    c.ShippingAmount,
		DiscountAmount:    c.DiscountAmount,
		Total:             c.Total,
		Currency:          c.Currency,
		CouponID:          c.CouponID,
		CouponCode:        c.CouponCode,
		PaymentMethod:     c.PaymentMethod,
		ShippingMethod:    c.ShippingMethod,
		ShippingAddress:   shippingAddress,
		Notes:             c.Notes,
		Items:             make([]OrderItem, 0, len(c.Items)),
	}

	for _, line := range c.Items {
		o.Items = append(o.Items, OrderItem{
			BaseEntity:    shared.NewBaseEntity(),
			OrderID:       o.ID,
			ProductID:     line.ProductID,
			VariantID:     line.VariantID,
			ProductName:   line.ProductName,
			ProductSlug:   line.ProductSlug,
			ImageURL:      line.ImageURL,
			Color:         line.Color,
			Size:          line.Size,
			Quantity:      line.Quantity,
			Price:         line.Price,
			TotalPrice:    line.TotalPrice,
			IsGift:        line.IsGift,
			GiftMessage:   line.GiftMessage,
			Customization: line.Customization,
		})
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// MarkPaid transitions a pending order to paid
func (o *Order) MarkPaid() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_ORDER_STATE", "only pending orders can be paid")
	}
	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.touch()
	o.AddDomainEvent(NewOrderPaidEvent(o))
	return nil
}

// MarkShipped transitions a paid order to shipped
func (o *Order) MarkShipped() error {
	if o.Status != OrderStatusPaid {
		return shared.NewDomainError("INVALID_ORDER_STATE", "only paid orders can be shipped")
	}
	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.touch()
	return nil
}

// MarkDelivered transitions a shipped order to delivered
func (o *Order) MarkDelivered() error {
	if o.Status != OrderStatusShipped {
		return shared.NewDomainError("INVALID_ORDER_STATE", "only shipped orders can be delivered")
	}
	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.touch()
	return nil
}

// Cancel cancels an order that has not yet shipped. Reserved stock is
// returned by the caller inside the same transaction.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusPaid {
		return shared.NewDomainError("INVALID_ORDER_STATE", "only pending or paid orders can be cancelled")
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.touch()
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// CanCancel reports whether the order is still cancellable
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
}

// TotalItems returns the summed quantity across all lines
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.Version++
}
