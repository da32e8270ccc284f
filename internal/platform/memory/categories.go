package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

type categoryStore struct {
	s *Store
}

var _ store.CategoryStore = (*categoryStore)(nil)

func (r *categoryStore) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.s.categories))
	for _, id := range slices.Sorted(maps.Keys(r.s.categories)) {
		out = append(out, r.s.categories[id])
	}
	return out, nil
}

func (r *categoryStore) GetByID(_ context.Context, id int) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &c, nil
}
