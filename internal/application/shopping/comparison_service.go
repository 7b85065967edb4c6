package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shopping"
)

// ComparisonService handles product comparison lists
type ComparisonService struct {
	comparisonRepo shopping.ComparisonRepository
	productRepo    catalog.ProductRepository
	logger         *zap.Logger
}

// NewComparisonService creates a new comparison service
func NewComparisonService(
	comparisonRepo shopping.ComparisonRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ComparisonService {
	return &ComparisonService{
		comparisonRepo: comparisonRepo,
		productRepo:    productRepo,
		logger:         logger,
	}
}

// Get returns the user's comparison list with product summaries, creating an
// empty one if none exists
func (s *ComparisonService) Get(ctx context.Context, userID uuid.UUID) (*ComparisonResult, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResult(ctx, c)
}

// AddProduct adds a product to the comparison list. The list holds at most
// four products; adding a product already on the list fails.
func (s *ComparisonService) AddProduct(ctx context.Context, userID, productID uuid.UUID) (*ComparisonResult, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.AddProduct(productID); err != nil {
		return nil, err
	}
	if err := s.comparisonRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save comparison", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update comparison")
	}

	return s.toResult(ctx, c)
}

// RemoveProduct removes a product from the comparison list
func (s *ComparisonService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) (*ComparisonResult, error) {
	c, err := s.comparisonRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not in comparison")
	}

	if err := c.RemoveProduct(productID); err != nil {
		return nil, err
	}
	if err := s.comparisonRepo.Save(ctx, c); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update comparison")
	}

	return s.toResult(ctx, c)
}

// Clear removes all products from the comparison list
func (s *ComparisonService) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.comparisonRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load comparison")
	}

	c.Clear()
	if err := s.comparisonRepo.Save(ctx, c); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update comparison")
	}
	return nil
}

func (s *ComparisonService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*shopping.Comparison, error) {
	c, err := s.comparisonRepo.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load comparison", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load comparison")
	}
	return shopping.NewComparison(userID)
}

func (s *ComparisonService) toResult(ctx context.Context, c *shopping.Comparison) (*ComparisonResult, error) {
	ids := c.ProductIDs()
	var products []catalog.Product
	if len(ids) > 0 {
		var err error
		products, err = s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			s.logger.Error("Failed to load comparison products", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load comparison")
		}
	}
	return &ComparisonResult{
		ID:        c.ID,
		UserID:    c.UserID,
		Products:  summarize(products, ids),
		UpdatedAt: c.UpdatedAt,
	}, nil
}
