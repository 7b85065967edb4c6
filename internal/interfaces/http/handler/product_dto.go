package handler

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/shopora/backend/internal/application/catalog"
)

// CreateVariantRequest describes one variant in product create/update requests
type CreateVariantRequest struct {
	SKU           string  `json:"sku" binding:"required,min=1,max=50"`
	Color         string  `json:"color" binding:"omitempty,max=50"`
	Size          string  `json:"size" binding:"omitempty,max=50"`
	Stock         int     `json:"stock" binding:"min=0"`
	PriceOverride *string `json:"priceOverride" binding:"omitempty"`
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name          string                 `json:"name" binding:"required,min=1,max=200"`
	Description   string                 `json:"description" binding:"omitempty,max=5000"`
	Brand         string                 `json:"brand" binding:"omitempty,max=100"`
	OriginalPrice string                 `json:"originalPrice" binding:"required"`
	SalePrice     *string                `json:"salePrice" binding:"omitempty"`
	CategoryID    *string                `json:"categoryId" binding:"omitempty,uuid"`
	Images        []string               `json:"images"`
	Tags          []string               `json:"tags"`
	Featured      bool                   `json:"featured"`
	Variants      []CreateVariantRequest `json:"variants" binding:"omitempty,dive"`
}

// UpdateProductRequest is the request body for updating a product
type UpdateProductRequest struct {
	Name          string   `json:"name" binding:"required,min=1,max=200"`
	Description   string   `json:"description" binding:"omitempty,max=5000"`
	Brand         string   `json:"brand" binding:"omitempty,max=100"`
	OriginalPrice string   `json:"originalPrice" binding:"required"`
	SalePrice     *string  `json:"salePrice" binding:"omitempty"`
	CategoryID    *string  `json:"categoryId" binding:"omitempty,uuid"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`
}

// SetProductStatusRequest is the request body for changing product status
type SetProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive archived"`
}

// PrepareImageUploadRequest is the request body for image upload preparation
type PrepareImageUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=200"`
	ContentType string `json:"contentType" binding:"required,max=100"`
}

// ImageUploadResponse describes a prepared image upload
type ImageUploadResponse struct {
	StorageKey string    `json:"storageKey"`
	UploadURL  string    `json:"uploadUrl"`
	PublicURL  string    `json:"publicUrl"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// VariantResponse is the variant representation in API responses
type VariantResponse struct {
	ID            string  `json:"id"`
	SKU           string  `json:"sku"`
	Color         string  `json:"color,omitempty"`
	Size          string  `json:"size,omitempty"`
	Stock         int     `json:"stock"`
	PriceOverride *string `json:"priceOverride,omitempty"`
	UnitPrice     string  `json:"unitPrice"`
}

// ProductResponse is the product representation in API responses
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	CategoryID     *string           `json:"categoryId,omitempty"`
	OriginalPrice  string            `json:"originalPrice"`
	SalePrice      *string           `json:"salePrice,omitempty"`
	EffectivePrice string            `json:"effectivePrice"`
	Images         []string          `json:"images"`
	Tags           []string          `json:"tags"`
	Status         string            `json:"status"`
	Featured       bool              `json:"featured"`
	TotalStock     int               `json:"totalStock"`
	InStock        bool              `json:"inStock"`
	Variants       []VariantResponse `json:"variants"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// createInput converts a create request into the application input,
// parsing the decimal and UUID fields
func (h *ProductHandler) createInput(req CreateProductRequest) (catalogapp.CreateProductInput, error) {
	originalPrice, err := parseDecimal(req.OriginalPrice)
	if err != nil {
		return catalogapp.CreateProductInput{}, errInvalidPrice
	}
	salePrice, err := parseDecimalPtr(req.SalePrice)
	if err != nil {
		return catalogapp.CreateProductInput{}, errInvalidPrice
	}
	categoryID, err := parseUUIDPtr(req.CategoryID)
	if err != nil {
		return catalogapp.CreateProductInput{}, errInvalidCategoryID
	}

	variants := make([]catalogapp.CreateVariantInput, 0, len(req.Variants))
	for _, v := range req.Variants {
		priceOverride, err := parseDecimalPtr(v.PriceOverride)
		if err != nil {
			return catalogapp.CreateProductInput{}, errInvalidPrice
		}
		variants = append(variants, catalogapp.CreateVariantInput{
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PriceOverride: priceOverride,
		})
	}

	return catalogapp.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		OriginalPrice: originalPrice,
		SalePrice:     salePrice,
		CategoryID:    categoryID,
		Images:        req.Images,
		Tags:          req.Tags,
		Featured:      req.Featured,
		Variants:      variants,
	}, nil
}

var (
	errInvalidPrice      = errors.New("invalid price value")
	errInvalidCategoryID = errors.New("invalid category ID")
)

func toProductResponse(p catalogapp.ProductResult) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantResponse{
			ID:            v.ID.String(),
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PriceOverride: decimalPtrToString(v.PriceOverride),
			UnitPrice:     v.UnitPrice.String(),
		})
	}
	return ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Brand:          p.Brand,
		CategoryID:     uuidPtrToString(p.CategoryID),
		OriginalPrice:  p.OriginalPrice.String(),
		SalePrice:      decimalPtrToString(p.SalePrice),
		EffectivePrice: p.EffectivePrice.String(),
		Images:         p.Images,
		Tags:           p.Tags,
		Status:         p.Status,
		Featured:       p.Featured,
		TotalStock:     p.TotalStock,
		InStock:        p.TotalStock > 0,
		Variants:       variants,
		CreatedAt:      p.CreatedAt,
	}
}

func toProductResponses(products []catalogapp.ProductResult) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
