package shopping

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/backend/internal/domain/shared"
)

// MaxComparisonProducts is the most products a comparison can hold
const MaxComparisonProducts = 4

// Comparison is an aggregate root for side-by-side product comparison.
// Each user has at most one comparison list.
type Comparison struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []ComparisonItem `gorm:"foreignKey:ComparisonID;constraint:OnDelete:CASCADE"`
}

// ComparisonItem is a single product under comparison
type ComparisonItem struct {
	shared.BaseEntity
	ComparisonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comparison_product,priority:1"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comparison_product,priority:2"`
}

// TableName returns the table name for GORM
func (Comparison) TableName() string {
	return "comparisons"
}

// TableName returns the table name for GORM
func (ComparisonItem) TableName() string {
	return "comparison_items"
}

// NewComparison creates an empty comparison list for a user
func NewComparison(userID uuid.UUID) (*Comparison, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "user is required")
	}
	return &Comparison{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]ComparisonItem, 0),
	}, nil
}

// AddProduct adds a product to the comparison. Duplicates and lists at
// capacity are rejected.
func (c *Comparison) AddProduct(productID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "product is required")
	}
	if c.Contains(productID) {
		return shared.ErrAlreadyExists
	}
	if len(c.Items) >= MaxComparisonProducts {
		return shared.NewDomainError("COMPARISON_FULL", "comparison can hold at most 4 products")
	}
	item := ComparisonItem{
		BaseEntity:   shared.NewBaseEntity(),
		ComparisonID: c.ID,
		ProductID:    productID,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	c.Version++
	return nil
}

// RemoveProduct removes a product from the comparison
func (c *Comparison) RemoveProduct(productID uuid.UUID) error {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			c.Version++
			return nil
		}
	}
	return shared.ErrNotFound
}

// Contains reports whether the product is being compared
func (c *Comparison) Contains(productID uuid.UUID) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the compared product IDs in insertion order
func (c *Comparison) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Clear removes every compared product
func (c *Comparison) Clear() {
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
	c.Version++
}
