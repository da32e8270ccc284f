package memory

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

type bookStore struct {
	s *Store
}

var _ store.BookStore = (*bookStore)(nil)

// withCategoryLocked returns a copy of b with its category attached.
func (s *Store) withCategoryLocked(b domain.Book) domain.Book {
	if c, ok := s.categories[b.CategoryID]; ok {
		cat := c
		b.Category = &cat
	} else {
		b.Category = nil
	}
	return b
}

func (s *Store) sortedBooksLocked() []domain.Book {
	ids := slices.Sorted(maps.Keys(s.books))
	out := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.withCategoryLocked(s.books[id]))
	}
	return out
}

func (r *bookStore) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.books), nil
}

func (r *bookStore) List(_ context.Context, page domain.PageRequest) ([]domain.Book, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.sortedBooksLocked()
	total := len(all)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)
	return all[start:end], total, nil
}

func (r *bookStore) GetByID(_ context.Context, id int) (*domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	out := r.s.withCategoryLocked(b)
	return &out, nil
}

func (r *bookStore) Search(_ context.Context, title string) ([]domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(title))
	out := []domain.Book{}
	for _, b := range r.s.sortedBooksLocked() {
		if needle == "" || strings.Contains(strings.ToLower(b.Title), needle) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bookStore) Create(_ context.Context, book *domain.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[book.CategoryID]; !ok {
		return store.ErrInvalidEntity
	}

	nextID := 1
	if len(r.s.books) > 0 {
		nextID = slices.Max(slices.Collect(maps.Keys(r.s.books))) + 1
	}
	now := r.s.now()
	book.ID = nextID
	book.CreatedAt = now
	book.UpdatedAt = now

	stored := *book
	stored.Category = nil
	r.s.books[book.ID] = stored

	*book = r.s.withCategoryLocked(stored)
	return nil
}

func (r *bookStore) Update(_ context.Context, book *domain.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.books[book.ID]
	if !ok {
		return store.ErrBookNotFound
	}
	if _, ok := r.s.categories[book.CategoryID]; !ok {
		return store.ErrInvalidEntity
	}

	existing.Title = book.Title
	existing.Price = book.Price
	existing.URL = book.URL
	existing.CategoryID = book.CategoryID
	existing.UpdatedAt = r.s.now()
	r.s.books[book.ID] = existing

	*book = r.s.withCategoryLocked(existing)
	return nil
}

func (r *bookStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}
