package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockBookStore is a mock of store.BookStore for use with testify/mock
type MockBookStore struct {
	mock.Mock
}

var _ store.BookStore = (*MockBookStore)(nil)

// Count is a mock implementation of store.BookStore.Count
func (m *MockBookStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// List is a mock implementation of store.BookStore.List
func (m *MockBookStore) List(ctx context.Context, page domain.PageRequest) ([]domain.Book, int, error) {
	args := m.Called(ctx, page)
	books, _ := args.Get(0).([]domain.Book)
	return books, args.Int(1), args.Error(2)
}

// GetByID is a mock implementation of store.BookStore.GetByID
func (m *MockBookStore) GetByID(ctx context.Context, id int) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if book, ok := args.Get(0).(*domain.Book); ok {
		return book, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.BookStore.Search
func (m *MockBookStore) Search(ctx context.Context, title string) ([]domain.Book, error) {
	args := m.Called(ctx, title)
	books, _ := args.Get(0).([]domain.Book)
	return books, args.Error(1)
}

// Create is a mock implementation of store.BookStore.Create
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	return m.Called(ctx, book).Error(0)
}

// Update is a mock implementation of store.BookStore.Update
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	return m.Called(ctx, book).Error(0)
}

// Delete is a mock implementation of store.BookStore.Delete
func (m *MockBookStore) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryStore is a mock of store.CategoryStore for use with testify/mock
type MockCategoryStore struct {
	mock.Mock
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// List is a mock implementation of store.CategoryStore.List
func (m *MockCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

// GetByID is a mock implementation of store.CategoryStore.GetByID
func (m *MockCategoryStore) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserStore is a mock of store.UserStore for use with testify/mock
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUserName is a mock implementation of store.UserStore.GetByUserName
func (m *MockUserStore) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateRefreshToken is a mock implementation of store.UserStore.UpdateRefreshToken
func (m *MockUserStore) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	return m.Called(ctx, id, token, expiry).Error(0)
}
