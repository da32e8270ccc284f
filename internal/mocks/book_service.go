package mocks

import (
	"context"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
)

// MockBookService implements service.BookService for testing. Methods
// without a function field return Err.
type MockBookService struct {
	CountFn       func(ctx context.Context) (int, error)
	ListBooksFn   func(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Book], error)
	GetBookFn     func(ctx context.Context, id int) (*domain.Book, error)
	SearchBooksFn func(ctx context.Context, title string) ([]domain.Book, error)
	CreateBookFn  func(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	UpdateBookFn  func(ctx context.Context, id int, input domain.BookInput) (*domain.Book, error)
	DeleteBookFn  func(ctx context.Context, id int) error

	Err error
}

var _ service.BookService = (*MockBookService)(nil)

// Count implements service.BookService
func (m *MockBookService) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, m.Err
}

// ListBooks implements service.BookService
func (m *MockBookService) ListBooks(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Book], error) {
	if m.ListBooksFn != nil {
		return m.ListBooksFn(ctx, page)
	}
	return domain.Page[domain.Book]{}, m.Err
}

// GetBook implements service.BookService
func (m *MockBookService) GetBook(ctx context.Context, id int) (*domain.Book, error) {
	if m.GetBookFn != nil {
		return m.GetBookFn(ctx, id)
	}
	return nil, m.Err
}

// SearchBooks implements service.BookService
func (m *MockBookService) SearchBooks(ctx context.Context, title string) ([]domain.Book, error) {
	if m.SearchBooksFn != nil {
		return m.SearchBooksFn(ctx, title)
	}
	return nil, m.Err
}

// CreateBook implements service.BookService
func (m *MockBookService) CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	if m.CreateBookFn != nil {
		return m.CreateBookFn(ctx, input)
	}
	return nil, m.Err
}

// UpdateBook implements service.BookService
func (m *MockBookService) UpdateBook(ctx context.Context, id int, input domain.BookInput) (*domain.Book, error) {
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, id, input)
	}
	return nil, m.Err
}

// DeleteBook implements service.BookService
func (m *MockBookService) DeleteBook(ctx context.Context, id int) error {
	if m.DeleteBookFn != nil {
		return m.DeleteBookFn(ctx, id)
	}
	return m.Err
}
