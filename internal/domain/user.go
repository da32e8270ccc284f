package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Seeded role names.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// KnownRoles lists every role a user may be registered with.
var KnownRoles = []string{RoleAdmin, RoleUser}

// IsKnownRole reports whether name is one of KnownRoles.
func IsKnownRole(name string) bool {
	return slices.Contains(KnownRoles, name)
}

// User represents a registered account of the book API.
type User struct {
	ID             uuid.UUID
	UserName       string
	Email          string
	FirstName      string
	LastName       string
	PhoneNumber    string
	HashedPassword string `json:"-"`
	Roles          []string

	// RefreshToken is the single outstanding refresh token, if any.
	RefreshToken       string    `json:"-"`
	RefreshTokenExpiry time.Time `json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
