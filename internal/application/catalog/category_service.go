package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/catalog"
	"github.com/shopora/backend/internal/domain/shared"
)

// CategoryService handles category management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*CategoryResult, error) {
	var category *catalog.Category
	var err error

	if input.ParentID != nil {
		parent, findErr := s.categoryRepo.FindByID(ctx, *input.ParentID)
		if findErr != nil {
			if errors.Is(findErr, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Parent category not found")
			}
			return nil, findErr
		}
		category, err = catalog.NewChildCategory(input.Name, input.Description, parent)
	} else {
		category, err = catalog.NewCategory(input.Name, input.Description)
	}
	if err != nil {
		return nil, err
	}

	if input.ImageURL != "" {
		if err := category.SetImage(input.ImageURL); err != nil {
			return nil, err
		}
	}
	category.SetSortOrder(input.SortOrder)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	publishEvents(s.logger, category)
	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))

	result := toCategoryResult(category)
	return &result, nil
}

// Update updates a category's details
func (s *CategoryService) Update(ctx context.Context, input UpdateCategoryInput) (*CategoryResult, error) {
	category, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}

	if err := category.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.ImageURL != "" {
		if err := category.SetImage(input.ImageURL); err != nil {
			return nil, err
		}
	}
	category.SetSortOrder(input.SortOrder)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to update category",
			zap.String("category_id", input.CategoryID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	result := toCategoryResult(category)
	return &result, nil
}

// Get returns a single category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResult, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	result := toCategoryResult(category)
	return &result, nil
}

// GetBySlug returns a single category by its URL slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResult, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	result := toCategoryResult(category)
	return &result, nil
}

// List returns all categories ordered by sort order
func (s *CategoryService) List(ctx context.Context) ([]CategoryResult, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 200
	filter.OrderBy = "sort_order"
	filter.OrderDir = "asc"

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	results := make([]CategoryResult, 0, len(categories))
	for i := range categories {
		results = append(results, toCategoryResult(&categories[i]))
	}
	return results, nil
}

// ListChildren returns the direct children of a category
func (s *CategoryService) ListChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResult, error) {
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	results := make([]CategoryResult, 0, len(children))
	for i := range children {
		results = append(results, toCategoryResult(&children[i]))
	}
	return results, nil
}

// Delete removes a category. Categories that still have products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return shared.NewDomainError("NOT_FOUND", "Category not found")
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, id)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}
	if hasProducts {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still contains products")
	}

	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}
	if len(children) > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has subcategories")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category",
			zap.String("category_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
