package promotion

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/promotion"
	"github.com/shopora/backend/internal/domain/shared"
)

// CouponService handles coupon administration
type CouponService struct {
	couponRepo promotion.CouponRepository
	logger     *zap.Logger
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo promotion.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// Create creates a new coupon
func (s *CouponService) Create(ctx context.Context, input CreateCouponInput) (*CouponResult, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	exists, err := s.couponRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create coupon")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A coupon with this code already exists")
	}

	coupon, err := promotion.NewCoupon(code, promotion.DiscountType(input.Type), input.Value, input.StartsAt, input.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		if err := coupon.Update(input.Description, coupon.Type, input.Value, input.StartsAt, input.ExpiresAt); err != nil {
			return nil, err
		}
	}
	if err := s.applyOptions(coupon, input.MaxDiscount, input.MinOrderValue, input.UsageLimit); err != nil {
		return nil, err
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		s.logger.Error("Failed to save coupon", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create coupon")
	}

	publishEvents(s.logger, coupon)
	s.logger.Info("Coupon created",
		zap.String("coupon_id", coupon.ID.String()),
		zap.String("code", coupon.Code))

	result := toCouponResult(coupon)
	return &result, nil
}

// Update updates an existing coupon. The code is immutable.
func (s *CouponService) Update(ctx context.Context, input UpdateCouponInput) (*CouponResult, error) {
	coupon, err := s.couponRepo.FindByID(ctx, input.CouponID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Coupon not found")
	}

	if err := coupon.Update(input.Description, coupon.Type, input.Value, input.StartsAt, input.ExpiresAt); err != nil {
		return nil, err
	}
	if err := s.applyOptions(coupon, input.MaxDiscount, input.MinOrderValue, input.UsageLimit); err != nil {
		return nil, err
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		s.logger.Error("Failed to update coupon",
			zap.String("coupon_id", input.CouponID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update coupon")
	}

	result := toCouponResult(coupon)
	return &result, nil
}

// Get returns a single coupon by ID
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*CouponResult, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Coupon not found")
	}
	result := toCouponResult(coupon)
	return &result, nil
}

// List returns a filtered, paginated page of coupons
func (s *CouponService) List(ctx context.Context, input ListCouponsInput) (*CouponListResult, error) {
	filter := promotion.CouponFilter{
		Keyword:  input.Keyword,
		IsActive: input.IsActive,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	coupons, total, err := s.couponRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list coupons")
	}

	results := make([]CouponResult, 0, len(coupons))
	for _, c := range coupons {
		results = append(results, toCouponResult(c))
	}
	return &CouponListResult{
		Coupons:  results,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// SetActive activates or deactivates a coupon
func (s *CouponService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*CouponResult, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Coupon not found")
	}

	if active {
		coupon.Activate()
	} else {
		coupon.Deactivate()
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update coupon")
	}

	result := toCouponResult(coupon)
	return &result, nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.couponRepo.FindByID(ctx, id); err != nil {
		return shared.NewDomainError("NOT_FOUND", "Coupon not found")
	}
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete coupon",
			zap.String("coupon_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete coupon")
	}
	s.logger.Info("Coupon deleted", zap.String("coupon_id", id.String()))
	return nil
}

func (s *CouponService) applyOptions(coupon *promotion.Coupon, maxDiscount, minOrderValue *decimal.Decimal, usageLimit int) error {
	if maxDiscount != nil {
		if err := coupon.SetMaxDiscount(*maxDiscount); err != nil {
			return err
		}
	}
	if minOrderValue != nil {
		if err := coupon.SetMinOrderValue(*minOrderValue); err != nil {
			return err
		}
	}
	if usageLimit > 0 {
		if err := coupon.SetUsageLimit(usageLimit); err != nil {
			return err
		}
	}
	return nil
}
