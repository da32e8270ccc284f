package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/phrazzld/book-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", domain.NewValidationError(domain.MsgPriceRange), http.StatusUnprocessableEntity},
		{"registration", domain.DuplicateUserNameError("ali"), http.StatusBadRequest},
		{"id out of range", domain.ValidateBookID(0), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("%w: x", domain.ErrInvalidID), http.StatusBadRequest},
		{"book not found", domain.NewBookNotFoundError(5), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", domain.NewCategoryNotFoundError(5)), http.StatusNotFound},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"refresh", fmt.Errorf("%w: %w", auth.ErrInvalidRefreshToken, auth.ErrInvalidToken), http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", domain.NewValidationError(domain.MsgTitleRequired, domain.MsgPriceRange),
			domain.MsgTitleRequired + " " + domain.MsgPriceRange},
		{"not found", fmt.Errorf("wrapped: %w", domain.NewBookNotFoundError(7)), "The book with 7 could not be found!"},
		{"id out of range", domain.ValidateBookID(1001), "1001 is not between 1 and 1000"},
		{"credentials", service.ErrInvalidCredentials, "Invalid user name or password."},
		{"expired refresh", auth.ErrExpiredRefreshToken, "Refresh token has expired."},
		{"internal detail hidden", fmt.Errorf("pq: password authentication failed for user %q", "admin"),
			"An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}
