package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product with its variants
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductResult, error) {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(input.Name, input.Description, input.Brand, input.OriginalPrice)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}

	if input.SalePrice != nil {
		if err := product.SetPrices(input.OriginalPrice, input.SalePrice); err != nil {
			return nil, err
		}
	}
	product.SetCategory(input.CategoryID)
	if len(input.Images) > 0 {
		if err := product.SetImages(input.Images); err != nil {
			return nil, err
		}
	}
	product.SetTags(input.Tags)
	product.SetFeatured(input.Featured)

	for _, v := range input.Variants {
		if _, err := product.AddVariant(v.SKU, v.Color, v.Size, v.Stock, v.PriceOverride); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	publishEvents(s.logger, product)
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))

	result := toProductResult(product)
	return &result, nil
}

// Update updates a product's details
func (s *ProductService) Update(ctx context.Context, input UpdateProductInput) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	if err := product.Update(input.Name, input.Description, input.Brand); err != nil {
		return nil, err
	}
	if err := product.SetPrices(input.OriginalPrice, input.SalePrice); err != nil {
		return nil, err
	}
	product.SetCategory(input.CategoryID)
	if err := product.SetImages(input.Images); err != nil {
		return nil, err
	}
	product.SetTags(input.Tags)
	product.SetFeatured(input.Featured)

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product",
			zap.String("product_id", input.ProductID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}
	publishEvents(s.logger, product)

	result := toProductResult(product)
	return &result, nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	result := toProductResult(product)
	return &result, nil
}

// GetBySlug returns a single product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResult, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	result := toProductResult(product)
	return &result, nil
}

// List returns a filtered, paginated page of products
func (s *ProductService) List(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.OrderBy != "" {
		filter.OrderBy = input.OrderBy
	}
	if input.OrderDir != "" {
		filter.OrderDir = input.OrderDir
	}
	filter.Search = input.Search
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}
	if input.Featured != nil {
		filter.Filters["featured"] = *input.Featured
	}

	var (
		products []catalog.Product
		err      error
	)
	if input.CategoryID != nil {
		products, err = s.productRepo.FindByCategory(ctx, *input.CategoryID, filter)
		filter.Filters["category_id"] = *input.CategoryID
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	results := make([]ProductResult, 0, len(products))
	for i := range products {
		results = append(results, toProductResult(&products[i]))
	}

	page := shared.NewPaginated(results, total, filter.Page, filter.PageSize)
	return &ProductListResult{
		Products:   page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// ListFeatured returns active featured products for the storefront
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]ProductResult, error) {
	if limit <= 0 {
		limit = 10
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list featured products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list featured products")
	}

	results := make([]ProductResult, 0, len(products))
	for i := range products {
		results = append(results, toProductResult(&products[i]))
	}
	return results, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// AddVariant adds a new variant to an existing product
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if _, err := product.AddVariant(input.SKU, input.Color, input.Size, input.Stock, input.PriceOverride); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to add variant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add variant")
	}

	result := toProductResult(product)
	return &result, nil
}

// RemoveVariant removes a variant from a product
func (s *ProductService) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if err := product.RemoveVariant(variantID); err != nil {
		return err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to remove variant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove variant")
	}
	return nil
}

// SetStatus activates, deactivates or archives a product
func (s *ProductService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	switch catalog.ProductStatus(status) {
	case catalog.ProductStatusActive:
		err = product.Activate()
	case catalog.ProductStatusInactive:
		err = product.Deactivate()
	case catalog.ProductStatusArchived:
		product.Archive()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product status")
	}

	result := toProductResult(product)
	return &result, nil
}
