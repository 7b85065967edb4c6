package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/promotion"
	"github.com/shopora/backend/internal/domain/shared"
)

// BannerService handles marketing banner management
type BannerService struct {
	bannerRepo promotion.BannerRepository
	logger     *zap.Logger
}

// NewBannerService creates a new banner service
func NewBannerService(bannerRepo promotion.BannerRepository, logger *zap.Logger) *BannerService {
	return &BannerService{
		bannerRepo: bannerRepo,
		logger:     logger,
	}
}

// Create creates a new banner
func (s *BannerService) Create(ctx context.Context, input CreateBannerInput) (*BannerResult, error) {
	banner, err := promotion.NewBanner(input.Title, input.ImageURL, promotion.BannerPosition(input.Position))
	if err != nil {
		return nil, err
	}
	if input.Subtitle != "" || input.LinkURL != "" {
		if err := banner.Update(input.Title, input.Subtitle, input.ImageURL, input.LinkURL, banner.Position); err != nil {
			return nil, err
		}
	}
	if input.StartsAt != nil || input.EndsAt != nil {
		if err := banner.Schedule(input.StartsAt, input.EndsAt); err != nil {
			return nil, err
		}
	}
	banner.SetSortOrder(input.SortOrder)

	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		s.logger.Error("Failed to save banner", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create banner")
	}

	s.logger.Info("Banner created", zap.String("banner_id", banner.ID.String()))
	result := toBannerResult(banner)
	return &result, nil
}

// Update updates a banner
func (s *BannerService) Update(ctx context.Context, input UpdateBannerInput) (*BannerResult, error) {
	banner, err := s.bannerRepo.FindByID(ctx, input.BannerID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Banner not found")
	}

	if err := banner.Update(input.Title, input.Subtitle, input.ImageURL, input.LinkURL, promotion.BannerPosition(input.Position)); err != nil {
		return nil, err
	}
	if err := banner.Schedule(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}
	banner.SetSortOrder(input.SortOrder)

	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		s.logger.Error("Failed to update banner",
			zap.String("banner_id", input.BannerID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update banner")
	}

	result := toBannerResult(banner)
	return &result, nil
}

// ListVisible returns the banners currently visible to shoppers,
// optionally filtered by position
func (s *BannerService) ListVisible(ctx context.Context, position string) ([]BannerResult, error) {
	banners, err := s.bannerRepo.FindVisible(ctx, promotion.BannerPosition(position))
	if err != nil {
		s.logger.Error("Failed to list visible banners", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list banners")
	}

	now := time.Now()
	results := make([]BannerResult, 0, len(banners))
	for _, b := range banners {
		if b.IsVisible(now) {
			results = append(results, toBannerResult(b))
		}
	}
	return results, nil
}

// ListAll returns every banner for administration
func (s *BannerService) ListAll(ctx context.Context, page, pageSize int) ([]BannerResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	banners, total, err := s.bannerRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list banners")
	}

	results := make([]BannerResult, 0, len(banners))
	for _, b := range banners {
		results = append(results, toBannerResult(b))
	}
	return results, total, nil
}

// SetActive activates or deactivates a banner
func (s *BannerService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*BannerResult, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Banner not found")
	}

	if active {
		banner.Activate()
	} else {
		banner.Deactivate()
	}

	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update banner")
	}

	result := toBannerResult(banner)
	return &result, nil
}

// Delete removes a banner
func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bannerRepo.FindByID(ctx, id); err != nil {
		return shared.NewDomainError("NOT_FOUND", "Banner not found")
	}
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete banner",
			zap.String("banner_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete banner")
	}
	return nil
}
