package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopora/backend/internal/domain/shared"
)

// CartStatus represents the lifecycle status of a cart
type CartStatus string

const (
	// CartStatusActive is the single open cart a user shops with
	CartStatusActive CartStatus = "active"
	// CartStatusConverted marks a cart that has been checked out into an order
	CartStatusConverted CartStatus = "converted"
)

// CartItem is a line in a cart: a product/variant pair with a price snapshot
// taken at add-time and denormalized display fields
type CartItem struct {
	shared.BaseEntity
	CartID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_item_product_variant,priority:1"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product_variant,priority:2"`
	VariantID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product_variant,priority:3"`
	Quantity      int             `gorm:"not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	ProductSlug   string          `gorm:"type:varchar(220)"`
	ImageURL      string          `gorm:"type:varchar(500)"`
	Color         string          `gorm:"type:varchar(50)"`
	Size          string          `gorm:"type:varchar(50)"`
	IsGift        bool            `gorm:"not null;default:false"`
	GiftMessage   string          `gorm:"type:varchar(500)"`
	Customization string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// ItemSnapshot captures the product/variant state copied onto a cart item
// when it is added
type ItemSnapshot struct {
	ProductID     uuid.UUID
	VariantID     uuid.UUID
	ProductName   string
	ProductSlug   string
	ImageURL      string
	Color         string
	Size          string
	OriginalPrice decimal.Decimal
	SalePrice     decimal.Decimal
	Price         decimal.Decimal
}

// NewCartItem creates a cart item from a product snapshot
func NewCartItem(snapshot ItemSnapshot, quantity int) (*CartItem, error) {
	if snapshot.ProductID == uuid.Nil || snapshot.VariantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product and variant are required")
	}
	if snapshot.ProductName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product name is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if snapshot.Price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &CartItem{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     snapshot.ProductID,
		VariantID:     snapshot.VariantID,
		Quantity:      quantity,
		OriginalPrice: snapshot.OriginalPrice,
		SalePrice:     snapshot.SalePrice,
		Price:         snapshot.Price,
		TotalPrice:    snapshot.Price.Mul(decimal.NewFromInt(int64(quantity))),
		ProductName:   snapshot.ProductName,
		ProductSlug:   snapshot.ProductSlug,
		ImageURL:      snapshot.ImageURL,
		Color:         snapshot.Color,
		Size:          snapshot.Size,
	}, nil
}

// UpdateQuantity changes the quantity and recomputes the line total
// from the item's snapshot price
func (i *CartItem) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	i.Quantity = quantity
	i.TotalPrice = i.Price.Mul(decimal.NewFromInt(int64(quantity)))
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateDetails sets gift and customization options on the item
func (i *CartItem) UpdateDetails(isGift bool, giftMessage, customization string) error {
	if len(giftMessage) > 500 {
		return shared.NewDomainError("INVALID_DETAILS", "Gift message cannot exceed 500 characters")
	}
	if len(customization) > 500 {
		return shared.NewDomainError("INVALID_DETAILS", "Customization cannot exceed 500 characters")
	}
	if !isGift {
		giftMessage = ""
	}

	i.IsGift = isGift
	i.GiftMessage = giftMessage
	i.Customization = customization
	i.UpdatedAt = time.Now()

	return nil
}

// Cart is the aggregate root for a user's shopping cart.
// It owns its items and the derived totals; every mutation recomputes the
// totals so the invariant total = subtotal + tax + shipping - discount
// (clamped at zero) holds at all times.
type Cart struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_user_status"`
	Status         CartStatus      `gorm:"type:varchar(20);not null;default:'active';index:idx_cart_user_status"`
	Items          []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalItems     int             `gorm:"not null;default:0"`
	CouponID       *uuid.UUID      `gorm:"type:uuid"`
	CouponCode     string          `gorm:"type:varchar(50)"`
	PaymentMethod  string          `gorm:"type:varchar(50)"`
	ShippingMethod string          `gorm:"type:varchar(50)"`
	Notes          string          `gorm:"type:varchar(1000)"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty active cart for a user
func NewCart(userID uuid.UUID, policy PricingPolicy) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}

	cart := &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            CartStatusActive,
		Items:             make([]CartItem, 0),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		ShippingAmount:    decimal.Zero,
		DiscountAmount:    decimal.Zero,
		Total:             decimal.Zero,
		Currency:          policy.Currency,
	}

	cart.AddDomainEvent(NewCartCreatedEvent(cart))

	return cart, nil
}

// UpsertItem adds an item to the cart, or merges it into the existing line
// for the same product/variant pair: the quantity is incremented and the
// snapshot prices refreshed to the current unit price. Totals are recomputed.
func (c *Cart) UpsertItem(item *CartItem, policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	if item == nil {
		return shared.NewDomainError("INVALID_ITEM", "Item is required")
	}

	for i := range c.Items {
		existing := &c.Items[i]
		if existing.ProductID == item.ProductID && existing.VariantID == item.VariantID {
			existing.Quantity += item.Quantity
			existing.OriginalPrice = item.OriginalPrice
			existing.SalePrice = item.SalePrice
			existing.Price = item.Price
			existing.TotalPrice = existing.Price.Mul(decimal.NewFromInt(int64(existing.Quantity)))
			existing.UpdatedAt = time.Now()
			c.recalculateTotals(policy)
			return nil
		}
	}

	item.CartID = c.ID
	c.Items = append(c.Items, *item)
	c.recalculateTotals(policy)

	c.AddDomainEvent(NewCartItemAddedEvent(c, item))

	return nil
}

// UpdateItemQuantity changes the quantity of an existing line and recomputes
// totals. Returns ErrNotFound when the item is not in this cart.
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int, policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	item := c.GetItem(itemID)
	if item == nil {
		return shared.ErrNotFound
	}
	if err := item.UpdateQuantity(quantity); err != nil {
		return err
	}

	c.recalculateTotals(policy)
	return nil
}

// UpdateItemDetails updates the gift/customization options of a line
func (c *Cart) UpdateItemDetails(itemID uuid.UUID, isGift bool, giftMessage, customization string) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	item := c.GetItem(itemID)
	if item == nil {
		return shared.ErrNotFound
	}
	if err := item.UpdateDetails(isGift, giftMessage, customization); err != nil {
		return err
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RemoveItem deletes a line from the cart and recomputes totals
func (c *Cart) RemoveItem(itemID uuid.UUID, policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recalculateTotals(policy)
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes every item, zeroes the totals and discount, and unsets
// the coupon. The cart row itself survives.
func (c *Cart) Clear(policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	c.Items = make([]CartItem, 0)
	c.CouponID = nil
	c.CouponCode = ""
	c.DiscountAmount = decimal.Zero
	c.recalculateTotals(policy)

	return nil
}

// ApplyDiscount records an applied coupon and its computed discount,
// then recomputes the total
func (c *Cart) ApplyDiscount(couponID uuid.UUID, code string, discount decimal.Decimal, policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	c.CouponID = &couponID
	c.CouponCode = strings.ToUpper(code)
	c.DiscountAmount = discount
	c.recalculateTotals(policy)

	c.AddDomainEvent(NewCartCouponAppliedEvent(c))

	return nil
}

// RemoveDiscount clears the coupon and discount and recomputes the total
func (c *Cart) RemoveDiscount(policy PricingPolicy) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	c.CouponID = nil
	c.CouponCode = ""
	c.DiscountAmount = decimal.Zero
	c.recalculateTotals(policy)

	return nil
}

// UpdateSettings sets the payment method, shipping method, and notes
func (c *Cart) UpdateSettings(paymentMethod, shippingMethod, notes string) error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	if len(paymentMethod) > 50 || len(shippingMethod) > 50 {
		return shared.NewDomainError("INVALID_SETTINGS", "Method cannot exceed 50 characters")
	}
	if len(notes) > 1000 {
		return shared.NewDomainError("INVALID_SETTINGS", "Notes cannot exceed 1000 characters")
	}

	c.PaymentMethod = paymentMethod
	c.ShippingMethod = shippingMethod
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkConverted marks the cart as checked out into an order
func (c *Cart) MarkConverted() error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	c.Status = CartStatusConverted
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartConvertedEvent(c))

	return nil
}

// GetItem returns the line with the given ID, or nil
func (c *Cart) GetItem(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// GetItemByVariant returns the line for a product/variant pair, or nil
func (c *Cart) GetItemByVariant(productID, variantID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty returns true when the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// HasCoupon returns true when a coupon is applied
func (c *Cart) HasCoupon() bool {
	return c.CouponID != nil
}

func (c *Cart) ensureActive() error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("CART_NOT_ACTIVE", "Cart is no longer active")
	}
	return nil
}

// recalculateTotals recomputes the derived totals from the current item set
// and bumps the aggregate version
func (c *Cart) recalculateTotals(policy PricingPolicy) {
	totals := CalculateTotals(c.Items, c.DiscountAmount, policy)
	c.Subtotal = totals.Subtotal
	c.TaxAmount = totals.TaxAmount
	c.ShippingAmount = totals.ShippingAmount
	c.DiscountAmount = totals.DiscountAmount
	c.Total = totals.Total
	c.TotalItems = totals.TotalItems
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
