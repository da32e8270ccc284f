package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

// BookService provides catalogue operations on books.
type BookService interface {
	// Count returns the number of books.
	Count(ctx context.Context) (int, error)

	// ListBooks returns one page of books. The request is normalized first.
	ListBooks(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Book], error)

	// GetBook returns a book with its category.
	GetBook(ctx context.Context, id int) (*domain.Book, error)

	// SearchBooks returns books whose title contains title, ignoring case.
	SearchBooks(ctx context.Context, title string) ([]domain.Book, error)

	// CreateBook validates input and stores a new book.
	CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error)

	// UpdateBook validates input and replaces the book's fields.
	UpdateBook(ctx context.Context, id int, input domain.BookInput) (*domain.Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, id int) error
}

// BookServiceImpl implements the BookService interface
type BookServiceImpl struct {
	books      store.BookStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewBookService creates a new BookService
func NewBookService(books store.BookStore, categories store.CategoryStore, logger *slog.Logger) BookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookServiceImpl{
		books:      books,
		categories: categories,
		logger:     logger.With("component", "book_service"),
	}
}

// Count implements BookService.
func (s *BookServiceImpl) Count(ctx context.Context) (int, error) {
	n, err := s.books.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

// ListBooks implements BookService.
func (s *BookServiceImpl) ListBooks(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Book], error) {
	req := page.Normalize()
	items, total, err := s.books.List(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list books",
			"error", err,
			"page", req.Page,
			"page_size", req.PageSize)
		return domain.Page[domain.Book]{}, fmt.Errorf("failed to list books: %w", err)
	}
	return domain.NewPage(items, req, total), nil
}

// GetBook implements BookService.
func (s *BookServiceImpl) GetBook(ctx context.Context, id int) (*domain.Book, error) {
	if err := domain.ValidateBookID(id); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, s.bookError(ctx, "get", id, err)
	}
	return book, nil
}

// SearchBooks implements BookService.
func (s *BookServiceImpl) SearchBooks(ctx context.Context, title string) ([]domain.Book, error) {
	books, err := s.books.Search(ctx, title)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search books", "error", err)
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

// CreateBook implements BookService.
func (s *BookServiceImpl) CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	if err := s.checkInput(ctx, &input); err != nil {
		return nil, err
	}

	book := &domain.Book{}
	book.Apply(input)
	if err := s.books.Create(ctx, book); err != nil {
		return nil, s.bookError(ctx, "create", 0, err)
	}

	s.logger.InfoContext(ctx, "book created",
		"book_id", book.ID,
		"category_id", book.CategoryID)
	return book, nil
}

// UpdateBook implements BookService.
func (s *BookServiceImpl) UpdateBook(ctx context.Context, id int, input domain.BookInput) (*domain.Book, error) {
	if err := domain.ValidateBookID(id); err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, &input); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, s.bookError(ctx, "update", id, err)
	}
	book.Apply(input)
	if err := s.books.Update(ctx, book); err != nil {
		return nil, s.bookError(ctx, "update", id, err)
	}

	s.logger.InfoContext(ctx, "book updated", "book_id", id)
	return book, nil
}

// DeleteBook implements BookService.
func (s *BookServiceImpl) DeleteBook(ctx context.Context, id int) error {
	if err := domain.ValidateBookID(id); err != nil {
		return err
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return s.bookError(ctx, "delete", id, err)
	}

	s.logger.InfoContext(ctx, "book deleted", "book_id", id)
	return nil
}

// checkInput normalizes and validates input, then verifies its category.
func (s *BookServiceImpl) checkInput(ctx context.Context, input *domain.BookInput) error {
	input.Normalize()
	if err := input.Validate(); err != nil {
		s.logger.DebugContext(ctx, "book input rejected", "error", err)
		return err
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return domain.NewValidationError(domain.MsgCategoryMissing)
		}
		return fmt.Errorf("failed to check category: %w", err)
	}
	return nil
}

// bookError translates a store error for the given operation.
func (s *BookServiceImpl) bookError(ctx context.Context, op string, id int, err error) error {
	switch {
	case errors.Is(err, store.ErrBookNotFound):
		s.logger.DebugContext(ctx, "book not found", "operation", op, "book_id", id)
		return domain.NewBookNotFoundError(id)
	case errors.Is(err, store.ErrInvalidEntity):
		// The category may disappear between the check and the write.
		return domain.NewValidationError(domain.MsgCategoryMissing)
	default:
		attrs := []any{"error", err, "operation", op, "book_id", id}
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			attrs = append(attrs, "store_entity", storeErr.Entity, "store_operation", storeErr.Operation)
		}
		s.logger.ErrorContext(ctx, "book store failure", attrs...)
		return fmt.Errorf("failed to %s book: %w", op, err)
	}
}
