package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/catalog"
)

// ProductSummary is the condensed product view shown on wishlists and
// comparison lists
type ProductSummary struct {
	ID             uuid.UUID
	Name           string
	Slug           string
	Brand          string
	ImageURL       string
	OriginalPrice  decimal.Decimal
	EffectivePrice decimal.Decimal
	Status         string
	InStock        bool
}

// WishlistResult is the wishlist representation returned to callers
type WishlistResult struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Products  []ProductSummary
	UpdatedAt time.Time
}

// ComparisonResult is the comparison representation returned to callers
type ComparisonResult struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Products  []ProductSummary
	UpdatedAt time.Time
}

func toProductSummary(p *catalog.Product) ProductSummary {
	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0]
	}
	return ProductSummary{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Brand:          p.Brand,
		ImageURL:       imageURL,
		OriginalPrice:  p.OriginalPrice,
		EffectivePrice: p.EffectiveSalePrice(),
		Status:         string(p.Status),
		InStock:        p.TotalStock() > 0,
	}
}

func summarize(products []catalog.Product, ids []uuid.UUID) []ProductSummary {
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Preserve the order products were added in
	summaries := make([]ProductSummary, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			summaries = append(summaries, toProductSummary(p))
		}
	}
	return summaries
}
