package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/phrazzld/book-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Unknown
// errors are 500.
func MapErrorToStatusCode(err error) int {
	var regErr *domain.RegistrationError
	switch {
	case err == nil:
		return http.StatusOK

	// Registration failures unwrap to ErrValidation but are client errors
	case errors.As(err, &regErr):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrIDOutOfRange),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to clients.
// Domain errors carry messages written for clients; everything else gets a
// fixed text per class.
func GetSafeErrorMessage(err error) string {
	var (
		verr  *domain.ValidationError
		nfErr *domain.NotFoundError
		idErr *domain.IDOutOfRangeError
	)
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &nfErr):
		return nfErr.Error()
	case errors.As(err, &idErr):
		return idErr.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return "The id must be a positive integer."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid user name or password."
	case errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Refresh token has expired."
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return "Invalid refresh token."
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to access this resource."
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err and logs the detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
