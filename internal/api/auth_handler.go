package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth. Rejected registrations return 400 with
// the list of identity errors as the body.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.auth.RegisterUser(r.Context(), req.toInput()); err != nil {
		var regErr *domain.RegistrationError
		if errors.As(err, &regErr) {
			shared.RespondWithJSON(w, r, http.StatusBadRequest, regErr.Errors)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		Succeeded: true,
		Errors:    []domain.IdentityError{},
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "User name and password are required.", err)
		return
	}

	user, err := h.auth.ValidateUser(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err), err,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	pair, err := h.auth.CreateToken(r.Context(), user, true)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tokenToResponse(pair))
}

// Refresh handles POST /api/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Access and refresh tokens are required.", err)
		return
	}

	pair, err := h.auth.RefreshToken(r.Context(), service.TokenPair{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tokenToResponse(pair))
}
