package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

// CategoryService provides read access to book categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categories: categories,
		logger:     logger.With("component", "category_service"),
	}
}

// ListCategories implements CategoryService.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory implements CategoryService.
func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: category id must be positive", domain.ErrInvalidID)
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domain.NewCategoryNotFoundError(id)
		}
		s.logger.ErrorContext(ctx, "failed to get category", "error", err, "category_id", id)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}
