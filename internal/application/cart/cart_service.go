package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/promotion"
	"github.com/shopora/backend/internal/domain/shared"
)

// CartService handles shopping cart operations. Mutations that touch variant
// stock run inside a transaction scope so the cart and the product aggregate
// are saved atomically.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	couponRepo  promotion.CouponRepository
	txScope     TransactionScope
	policy      cart.PricingPolicy
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo promotion.CouponRepository,
	txScope TransactionScope,
	policy cart.PricingPolicy,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		txScope:     txScope,
		policy:      policy,
		logger:      logger,
	}
}

// GetCart returns the user's active cart, creating an empty one if none exists
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	c, err := s.cartRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load cart", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
		}
		c, err = cart.NewCart(userID, s.policy)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, c); err != nil {
			s.logger.Error("Failed to create cart", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create cart")
		}
		publishEvents(s.logger, c)
		s.logger.Info("Cart created",
			zap.String("cart_id", c.ID.String()),
			zap.String("user_id", userID.String()))
	}
	return toCartResult(c), nil
}

// AddItem adds a product variant to the user's cart, reserving stock.
// Adding a variant already in the cart merges the quantities into the
// existing line.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*CartResult, error) {
	if input.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	var result *CartResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.loadOrCreateCart(ctx, repos, input.UserID)
		if err != nil {
			return err
		}

		product, variant, err := repos.ProductRepo().FindVariantByID(ctx, input.VariantID)
		if err != nil {
			return shared.NewDomainError("NOT_FOUND", "Product variant not found")
		}
		if product.ID != input.ProductID {
			return shared.NewDomainError("NOT_FOUND", "Product variant not found")
		}
		if !product.IsActive() {
			return shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
		}

		if err := variant.Reserve(input.Quantity); err != nil {
			return err
		}

		item, err := cart.NewCartItem(snapshotFor(product, variant), input.Quantity)
		if err != nil {
			return err
		}
		if err := c.UpsertItem(item, s.policy); err != nil {
			return err
		}

		if err := s.refreshDiscount(ctx, repos, c); err != nil {
			return err
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to update stock")
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
		}

		publishEvents(s.logger, product, c)
		s.logger.Info("Item added to cart",
			zap.String("cart_id", c.ID.String()),
			zap.String("variant_id", variant.ID.String()),
			zap.Int("quantity", input.Quantity))

		result = toCartResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItemQuantity changes a line's quantity, adjusting variant stock by
// the delta
func (s *CartService) UpdateItemQuantity(ctx context.Context, input UpdateItemQuantityInput) (*CartResult, error) {
	if input.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	var result *CartResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.loadCart(ctx, repos, input.UserID)
		if err != nil {
			return err
		}

		item := c.GetItem(input.ItemID)
		if item == nil {
			return shared.NewDomainError("NOT_FOUND", "Cart item not found")
		}

		delta := input.Quantity - item.Quantity
		if delta != 0 {
			product, variant, err := repos.ProductRepo().FindVariantByID(ctx, item.VariantID)
			if err != nil {
				return shared.NewDomainError("NOT_FOUND", "Product variant not found")
			}
			if delta > 0 {
				if err := variant.Reserve(delta); err != nil {
					return err
				}
			} else {
				if err := variant.Release(-delta); err != nil {
					return err
				}
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to update stock")
			}
		}

		if err := c.UpdateItemQuantity(input.ItemID, input.Quantity, s.policy); err != nil {
			return err
		}
		if err := s.refreshDiscount(ctx, repos, c); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
		}
		publishEvents(s.logger, c)

		result = toCartResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItemDetails sets gift and customization options on a line
func (s *CartService) UpdateItemDetails(ctx context.Context, input UpdateItemDetailsInput) (*CartResult, error) {
	c, err := s.findActiveCart(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateItemDetails(input.ItemID, input.IsGift, input.GiftMessage, input.Customization); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
	}
	publishEvents(s.logger, c)
	return toCartResult(c), nil
}

// RemoveItem deletes a line from the cart and returns its stock
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResult, error) {
	var result *CartResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.loadCart(ctx, repos, userID)
		if err != nil {
			return err
		}

		item := c.GetItem(itemID)
		if item == nil {
			return shared.NewDomainError("NOT_FOUND", "Cart item not found")
		}

		if err := s.releaseStock(ctx, repos, item.VariantID, item.Quantity); err != nil {
			return err
		}

		if err := c.RemoveItem(itemID, s.policy); err != nil {
			return err
		}
		if err := s.refreshDiscount(ctx, repos, c); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
		}

		publishEvents(s.logger, c)
		s.logger.Info("Item removed from cart",
			zap.String("cart_id", c.ID.String()),
			zap.String("item_id", itemID.String()))

		result = toCartResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Clear empties the cart, returning all reserved stock
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	var result *CartResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.loadCart(ctx, repos, userID)
		if err != nil {
			return err
		}

		for i := range c.Items {
			item := &c.Items[i]
			if err := s.releaseStock(ctx, repos, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		if err := c.Clear(s.policy); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
		}

		publishEvents(s.logger, c)
		s.logger.Info("Cart cleared", zap.String("cart_id", c.ID.String()))

		result = toCartResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateSettings sets payment method, shipping method and notes on the cart
func (s *CartService) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*CartResult, error) {
	c, err := s.findActiveCart(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateSettings(input.PaymentMethod, input.ShippingMethod, input.Notes); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
	}
	publishEvents(s.logger, c)
	return toCartResult(c), nil
}

// ApplyCoupon validates a coupon code against the cart and applies its discount
func (s *CartService) ApplyCoupon(ctx context.Context, input ApplyCouponInput) (*CartResult, error) {
	var result *CartResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := s.loadCart(ctx, repos, input.UserID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return shared.NewDomainError("CART_EMPTY", "Cannot apply a coupon to an empty cart")
		}

		coupon, err := repos.CouponRepo().FindByCode(ctx, input.Code)
		if err != nil {
			return shared.NewDomainError("COUPON_NOT_FOUND", "Coupon code not found")
		}

		if err := coupon.ValidateFor(c.Subtotal, time.Now()); err != nil {
			return err
		}

		discount := coupon.DiscountFor(c.Subtotal)
		if err := c.ApplyDiscount(coupon.ID, coupon.Code, discount, s.policy); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
		}

		publishEvents(s.logger, c)
		s.logger.Info("Coupon applied",
			zap.String("cart_id", c.ID.String()),
			zap.String("coupon_code", coupon.Code))

		result = toCartResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveCoupon removes the applied coupon and restores the undiscounted total
func (s *CartService) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	c, err := s.findActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !c.HasCoupon() {
		return nil, shared.NewDomainError("NOT_FOUND", "No coupon applied to this cart")
	}

	if err := c.RemoveDiscount(s.policy); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
	}

	publishEvents(s.logger, c)
	s.logger.Info("Coupon removed", zap.String("cart_id", c.ID.String()))
	return toCartResult(c), nil
}

func (s *CartService) findActiveCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Cart not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	return c, nil
}

func (s *CartService) loadCart(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID) (*cart.Cart, error) {
	c, err := repos.CartRepo().FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Cart not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	return c, nil
}

func (s *CartService) loadOrCreateCart(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID) (*cart.Cart, error) {
	c, err := repos.CartRepo().FindActiveByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	return cart.NewCart(userID, s.policy)
}

func (s *CartService) releaseStock(ctx context.Context, repos TransactionalRepositories, variantID uuid.UUID, quantity int) error {
	product, variant, err := repos.ProductRepo().FindVariantByID(ctx, variantID)
	if err != nil {
		// The variant may have been deleted after it was added to the cart;
		// there is no stock to return in that case.
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load product")
	}
	if err := variant.Release(quantity); err != nil {
		return err
	}
	if err := repos.ProductRepo().Save(ctx, product); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update stock")
	}
	return nil
}

// refreshDiscount recomputes the applied coupon's discount after the subtotal
// changed. A coupon the cart no longer qualifies for is silently dropped.
func (s *CartService) refreshDiscount(ctx context.Context, repos TransactionalRepositories, c *cart.Cart) error {
	if !c.HasCoupon() {
		return nil
	}

	coupon, err := repos.CouponRepo().FindByCode(ctx, c.CouponCode)
	if err != nil {
		return c.RemoveDiscount(s.policy)
	}
	if err := coupon.ValidateFor(c.Subtotal, time.Now()); err != nil {
		return c.RemoveDiscount(s.policy)
	}
	return c.ApplyDiscount(coupon.ID, coupon.Code, coupon.DiscountFor(c.Subtotal), s.policy)
}

func snapshotFor(product *catalog.Product, variant *catalog.Variant) cart.ItemSnapshot {
	imageURL := ""
	if len(product.Images) > 0 {
		imageURL = product.Images[0]
	}
	return cart.ItemSnapshot{
		ProductID:     product.ID,
		VariantID:     variant.ID,
		ProductName:   product.Name,
		ProductSlug:   product.Slug,
		ImageURL:      imageURL,
		Color:         variant.Color,
		Size:          variant.Size,
		OriginalPrice: product.OriginalPrice,
		SalePrice:     product.EffectiveSalePrice(),
		Price:         product.UnitPriceFor(variant),
	}
}
