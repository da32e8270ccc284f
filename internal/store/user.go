package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and their role assignments atomically. The
	// caller supplies an already hashed password.
	// Returns ErrUserNameExists or ErrEmailExists on conflicts, and
	// ErrRoleNotFound when a role is not seeded.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUserName returns ErrUserNotFound if the user does not exist.
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)

	// UpdateRefreshToken stores the user's current refresh token and its
	// expiry. Returns ErrUserNotFound if the user does not exist.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error
}
