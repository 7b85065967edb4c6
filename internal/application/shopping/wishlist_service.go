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

// WishlistService handles wishlist operations
type WishlistService struct {
	wishlistRepo shopping.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(
	wishlistRepo shopping.WishlistRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Get returns the user's wishlist with product summaries, creating an empty
// one if none exists
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*WishlistResult, error) {
	w, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResult(ctx, w)
}

// AddProduct adds a product to the wishlist. Adding a product that is
// already listed is a no-op.
func (s *WishlistService) AddProduct(ctx context.Context, userID, productID uuid.UUID) (*WishlistResult, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	w, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := w.AddProduct(productID); err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, w); err != nil {
		s.logger.Error("Failed to save wishlist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}

	s.logger.Info("Product added to wishlist",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))

	return s.toResult(ctx, w)
}

// RemoveProduct removes a product from the wishlist
func (s *WishlistService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) (*WishlistResult, error) {
	w, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not in wishlist")
	}

	if err := w.RemoveProduct(productID); err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, w); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}

	return s.toResult(ctx, w)
}

// Clear removes all products from the wishlist
func (s *WishlistService) Clear(ctx context.Context, userID uuid.UUID) error {
	w, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load wishlist")
	}

	w.Clear()
	if err := s.wishlistRepo.Save(ctx, w); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}
	return nil
}

func (s *WishlistService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*shopping.Wishlist, error) {
	w, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load wishlist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load wishlist")
	}
	return shopping.NewWishlist(userID)
}

func (s *WishlistService) toResult(ctx context.Context, w *shopping.Wishlist) (*WishlistResult, error) {
	ids := w.ProductIDs()
	var products []catalog.Product
	if len(ids) > 0 {
		var err error
		products, err = s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			s.logger.Error("Failed to load wishlist products", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load wishlist")
		}
	}
	return &WishlistResult{
		ID:        w.ID,
		UserID:    w.UserID,
		Products:  summarize(products, ids),
		UpdatedAt: w.UpdatedAt,
	}, nil
}
