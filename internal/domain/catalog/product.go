package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopora/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusArchived ProductStatus = "archived"
)

// StringList is a JSON-encoded list of strings stored in a single column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Product represents a sellable product in the storefront catalog
// It is the aggregate root owning its variants, which carry the stock counts
type Product struct {
	shared.BaseAggregateRoot
	Name          string           `gorm:"type:varchar(200);not null"`
	Slug          string           `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description   string           `gorm:"type:text"`
	Brand         string           `gorm:"type:varchar(100)"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid;index"`
	OriginalPrice decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice     *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Images        StringList       `gorm:"type:jsonb"`
	Tags          StringList       `gorm:"type:jsonb"`
	Status        ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Featured      bool             `gorm:"not null;default:false"`
	Variants      []Variant        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// Variant is a purchasable SKU-level option of a product (color/size)
// carrying its own stock count
type Variant struct {
	shared.BaseEntity
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	SKU           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Color         string           `gorm:"type:varchar(50)"`
	Size          string           `gorm:"type:varchar(50)"`
	Stock         int              `gorm:"not null;default:0"`
	PriceOverride *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewProduct creates a new product; the slug is derived from the name
func NewProduct(name, description, brand string, originalPrice decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if originalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              GenerateSlug(name),
		Description:       description,
		Brand:             strings.TrimSpace(brand),
		OriginalPrice:     originalPrice,
		Images:            StringList{},
		Tags:              StringList{},
		Status:            ProductStatusActive,
		Variants:          make([]Variant, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields; the slug follows the name
func (p *Product) Update(name, description, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Slug = GenerateSlug(name)
	p.Description = description
	p.Brand = strings.TrimSpace(brand)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the list price and optional sale price
// A sale price must not exceed the original price
func (p *Product) SetPrices(originalPrice decimal.Decimal, salePrice *decimal.Decimal) error {
	if originalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if salePrice != nil {
		if salePrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
		}
		if salePrice.GreaterThan(originalPrice) {
			return shared.NewDomainError("INVALID_PRICE", "Sale price cannot exceed the original price")
		}
	}

	p.OriginalPrice = originalPrice
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImages replaces the product image URLs
func (p *Product) SetImages(images []string) error {
	for _, img := range images {
		if len(img) > 500 {
			return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot exceed 500 characters")
		}
	}

	p.Images = images
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddImage appends an image URL
func (p *Product) AddImage(imageURL string) error {
	if imageURL == "" || len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL must be between 1 and 500 characters")
	}

	p.Images = append(p.Images, imageURL)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetTags replaces the product tags
func (p *Product) SetTags(tags []string) {
	p.Tags = tags
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AddVariant adds a new variant to the product
func (p *Product) AddVariant(sku, color, size string, stock int, priceOverride *decimal.Decimal) (*Variant, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if priceOverride != nil && priceOverride.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	sku = strings.ToUpper(strings.TrimSpace(sku))
	for _, v := range p.Variants {
		if v.SKU == sku {
			return nil, shared.NewDomainError("DUPLICATE_SKU", "Variant with this SKU already exists")
		}
	}

	variant := Variant{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     p.ID,
		SKU:           sku,
		Color:         strings.TrimSpace(color),
		Size:          strings.TrimSpace(size),
		Stock:         stock,
		PriceOverride: priceOverride,
	}
	p.Variants = append(p.Variants, variant)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return &p.Variants[len(p.Variants)-1], nil
}

// RemoveVariant removes a variant by ID
func (p *Product) RemoveVariant(variantID uuid.UUID) error {
	for i, v := range p.Variants {
		if v.ID == variantID {
			p.Variants = append(p.Variants[:i], p.Variants[i+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// GetVariant returns the variant with the given ID
func (p *Product) GetVariant(variantID uuid.UUID) (*Variant, error) {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// Activate makes the product purchasable
func (p *Product) Activate() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("PRODUCT_ARCHIVED", "Cannot activate an archived product")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("PRODUCT_ARCHIVED", "Cannot deactivate an archived product")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Archive permanently retires the product
func (p *Product) Archive() {
	p.Status = ProductStatusArchived
	p.Featured = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is purchasable
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// EffectiveSalePrice returns the sale price, falling back to the original price
func (p *Product) EffectiveSalePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.OriginalPrice
}

// UnitPriceFor returns the effective unit price for a variant:
// the variant's price override when set, otherwise the product's sale price,
// otherwise the original price
func (p *Product) UnitPriceFor(variant *Variant) decimal.Decimal {
	if variant != nil && variant.PriceOverride != nil {
		return *variant.PriceOverride
	}
	return p.EffectiveSalePrice()
}

// TotalStock returns the stock summed over all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Reserve decrements the variant's stock by quantity
// Fails without mutating when quantity exceeds the available stock
func (v *Variant) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > v.Stock {
		return shared.ErrInsufficientStock
	}

	v.Stock -= quantity
	v.UpdatedAt = time.Now()

	return nil
}

// Release returns quantity to the variant's stock
func (v *Variant) Release(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	v.Stock += quantity
	v.UpdatedAt = time.Now()

	return nil
}

// DisplayName returns a human-readable variant description (color/size)
func (v *Variant) DisplayName() string {
	parts := make([]string, 0, 2)
	if v.Color != "" {
		parts = append(parts, v.Color)
	}
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	return strings.Join(parts, " / ")
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if GenerateSlug(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name must contain letters or digits")
	}
	return nil
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
