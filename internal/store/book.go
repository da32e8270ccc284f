package store

import (
	"context"

	"github.com/phrazzld/book-api/internal/domain"
)

// BookStore defines the interface for book persistence. Every returned book
// has its Category populated.
type BookStore interface {
	// Count returns the number of stored books.
	Count(ctx context.Context) (int, error)

	// List returns one page of books ordered by id, and the total count.
	// The request must already be normalized.
	List(ctx context.Context, page domain.PageRequest) ([]domain.Book, int, error)

	// GetByID returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int) (*domain.Book, error)

	// Search returns books whose title contains title, ignoring case.
	// An empty title matches every book.
	Search(ctx context.Context, title string) ([]domain.Book, error)

	// Create assigns the book an id and timestamps.
	// Returns ErrInvalidEntity if the category does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// Update replaces the writable fields of an existing book.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int) error
}
