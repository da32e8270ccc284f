// Package memory provides an in-memory implementation of the store
// interfaces, used for local development and tests. All state is guarded by
// a single RWMutex and lost when the process exits.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

// Store holds books, categories and users.
type Store struct {
	mu         sync.RWMutex
	categories map[int]domain.Category
	books      map[int]domain.Book
	users      map[uuid.UUID]domain.User
	roles      map[string]struct{}
	now        func() time.Time
	noSeed     bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutSeed starts with no categories or books. Roles are always seeded.
func WithoutSeed() Option {
	return func(s *Store) { s.noSeed = true }
}

// New constructs a store seeded with the default categories, books and roles.
func New(opts ...Option) *Store {
	s := &Store{
		users: make(map[uuid.UUID]domain.User),
		roles: make(map[string]struct{}),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, role := range domain.KnownRoles {
		s.roles[role] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	if s.noSeed {
		s.categories = make(map[int]domain.Category)
		s.books = make(map[int]domain.Book)
		return
	}
	s.categories = map[int]domain.Category{
		1: {ID: 1, Name: "Felsefe"},
		2: {ID: 2, Name: "Roman"},
		3: {ID: 3, Name: "Deneme"},
	}
	created := s.now()
	s.books = map[int]domain.Book{
		1: {ID: 1, Title: "Devlet", Price: decimal.MustParse("20.00"), URL: "/images/1.jpg", CategoryID: 1, CreatedAt: created, UpdatedAt: created},
		2: {ID: 2, Title: "Ateşten Gömlek", Price: decimal.MustParse("15.50"), URL: "/images/1.jpg", CategoryID: 2, CreatedAt: created, UpdatedAt: created},
		3: {ID: 3, Title: "Huzur", Price: decimal.MustParse("18.75"), URL: "/images/1.jpg", CategoryID: 3, CreatedAt: created, UpdatedAt: created},
	}
}

// SeedCategory adds or replaces a category.
func (s *Store) SeedCategory(c domain.Category) {
	s.mu.Lock()
	s.categories[c.ID] = c
	s.mu.Unlock()
}

// Reset drops every user and restores the initial books and categories.
func (s *Store) Reset() {
	s.mu.Lock()
	s.seed()
	s.users = make(map[uuid.UUID]domain.User)
	s.mu.Unlock()
}

// Books returns the BookStore view of s.
func (s *Store) Books() store.BookStore { return &bookStore{s: s} }

// Categories returns the CategoryStore view of s.
func (s *Store) Categories() store.CategoryStore { return &categoryStore{s: s} }

// Users returns the UserStore view of s.
func (s *Store) Users() store.UserStore { return &userStore{s: s} }
