package store

import (
	"context"

	"github.com/phrazzld/book-api/internal/domain"
)

// CategoryStore defines the interface for category lookups.
type CategoryStore interface {
	// List returns all categories ordered by id.
	List(ctx context.Context) ([]domain.Category, error)

	// GetByID returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int) (*domain.Category, error)
}
