package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/backend/internal/domain/catalog"
)

// CreateProductInput contains the input for creating a product
type CreateProductInput struct {
	Name          string
	Description   string
	Brand         string
	OriginalPrice decimal.Decimal
	SalePrice     *decimal.Decimal
	CategoryID    *uuid.UUID
	Images        []string
	Tags          []string
	Featured      bool
	Variants      []CreateVariantInput
}

// CreateVariantInput describes one variant of a new product
type CreateVariantInput struct {
	SKU           string
	Color         string
	Size          string
	Stock         int
	PriceOverride *decimal.Decimal
}

// UpdateProductInput contains the input for updating a product
type UpdateProductInput struct {
	ProductID     uuid.UUID
	Name          string
	Description   string
	Brand         string
	OriginalPrice decimal.Decimal
	SalePrice     *decimal.Decimal
	CategoryID    *uuid.UUID
	Images        []string
	Tags          []string
	Featured      bool
}

// ListProductsInput contains filter options for product listing
type ListProductsInput struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID *uuid.UUID
	Featured   *bool
	Status     string
	OrderBy    string
	OrderDir   string
}

// ProductResult is the product representation returned to callers
type ProductResult struct {
	ID            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Brand         string
	CategoryID    *uuid.UUID
	OriginalPrice decimal.Decimal
	SalePrice     *decimal.Decimal
	EffectivePrice decimal.Decimal
	Images        []string
	Tags          []string
	Status        string
	Featured      bool
	TotalStock    int
	Variants      []VariantResult
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VariantResult is the variant representation returned to callers
type VariantResult struct {
	ID            uuid.UUID
	SKU           string
	Color         string
	Size          string
	Stock         int
	PriceOverride *decimal.Decimal
	UnitPrice     decimal.Decimal
}

// ProductListResult is a page of products with the total count
type ProductListResult struct {
	Products   []ProductResult
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// CreateCategoryInput contains the input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
	ImageURL    string
	SortOrder   int
}

// UpdateCategoryInput contains the input for updating a category
type UpdateCategoryInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
}

// CategoryResult is the category representation returned to callers
type CategoryResult struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	ParentID    *uuid.UUID
	ImageURL    string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
}

func toProductResult(p *catalog.Product) ProductResult {
	variants := make([]VariantResult, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		variants = append(variants, VariantResult{
			ID:            v.ID,
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PriceOverride: v.PriceOverride,
			UnitPrice:     p.UnitPriceFor(v),
		})
	}
	return ProductResult{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Brand:          p.Brand,
		CategoryID:     p.CategoryID,
		OriginalPrice:  p.OriginalPrice,
		SalePrice:      p.SalePrice,
		EffectivePrice: p.EffectiveSalePrice(),
		Images:         p.Images,
		Tags:           p.Tags,
		Status:         string(p.Status),
		Featured:       p.Featured,
		TotalStock:     p.TotalStock(),
		Variants:       variants,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toCategoryResult(c *catalog.Category) CategoryResult {
	return CategoryResult{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		ImageURL:    c.ImageURL,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
