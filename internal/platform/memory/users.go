package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

type userStore struct {
	s *Store
}

var _ store.UserStore = (*userStore)(nil)

func cloneUser(u domain.User) *domain.User {
	u.Roles = slices.Clone(u.Roles)
	return &u
}

func (r *userStore) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.UserName, user.UserName) {
			return store.ErrUserNameExists
		}
		if user.Email != "" && strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}
	for _, role := range user.Roles {
		if _, ok := r.s.roles[role]; !ok {
			return store.ErrRoleNotFound
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *userStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userStore) GetByUserName(_ context.Context, userName string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.UserName, userName) {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (r *userStore) UpdateRefreshToken(_ context.Context, id uuid.UUID, token string, expiry time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.RefreshToken = token
	u.RefreshTokenExpiry = expiry
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return nil
}
