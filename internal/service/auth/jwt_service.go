package auth

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
)

// TokenTypeAccess is the only token type issued as a JWT. Refresh tokens are
// opaque strings stored with the user.
const TokenTypeAccess = "access"

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for user and returns it
	// with its expiry.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken verifies signature, issuer, audience, lifetime and type,
	// and returns the token's claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ParseExpiredToken performs the same checks as ValidateToken except the
	// lifetime check. It is used to identify the user during a refresh.
	ParseExpiredToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the application view of a validated access token.
type Claims struct {
	UserID    uuid.UUID
	UserName  string
	Roles     []string
	TokenType string

	Subject   string
	Issuer    string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// HasRole reports whether the token grants role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
