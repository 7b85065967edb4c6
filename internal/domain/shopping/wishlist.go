package shopping

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/backend/internal/domain/shared"
)

// Wishlist is an aggregate root holding the products a user saved for later.
// Each user has at most one wishlist.
type Wishlist struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

// WishlistItem is a single saved product
type WishlistItem struct {
	shared.BaseEntity
	WishlistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product,priority:2"`
}

// TableName returns the table name for GORM
func (Wishlist) TableName() string {
	return "wishlists"
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlist creates an empty wishlist for a user
func NewWishlist(userID uuid.UUID) (*Wishlist, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "user is required")
	}
	return &Wishlist{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]WishlistItem, 0),
	}, nil
}

// AddProduct adds a product to the wishlist. Adding a product that is
// already present is a no-op.
func (w *Wishlist) AddProduct(productID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "product is required")
	}
	if w.Contains(productID) {
		return nil
	}
	item := WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		WishlistID: w.ID,
		ProductID:  productID,
	}
	w.Items = append(w.Items, item)
	w.UpdatedAt = time.Now()
	w.Version++
	return nil
}

// RemoveProduct removes a product from the wishlist
func (w *Wishlist) RemoveProduct(productID uuid.UUID) error {
	for i, item := range w.Items {
		if item.ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = time.Now()
			w.Version++
			return nil
		}
	}
	return shared.ErrNotFound
}

// Contains reports whether the product is on the wishlist
func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the saved product IDs in insertion order
func (w *Wishlist) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Clear removes every saved product
func (w *Wishlist) Clear() {
	w.Items = w.Items[:0]
	w.UpdatedAt = time.Now()
	w.Version++
}
