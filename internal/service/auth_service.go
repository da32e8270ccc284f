package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service/auth"
	"github.com/phrazzld/book-api/internal/store"
)

// RegistrationInput carries the fields of a new account.
type RegistrationInput struct {
	UserName    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	// Roles defaults to domain.RoleUser when empty.
	Roles []string
}

// TokenPair is an access token plus the refresh token that renews it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt is the access token expiry.
	ExpiresAt time.Time
}

// AuthService registers users and issues tokens.
type AuthService interface {
	// RegisterUser validates input and creates the account. Invalid input and
	// conflicts are reported as *domain.RegistrationError.
	RegisterUser(ctx context.Context, input RegistrationInput) (*domain.User, error)

	// ValidateUser returns the user whose credentials match, or
	// ErrInvalidCredentials.
	ValidateUser(ctx context.Context, userName, password string) (*domain.User, error)

	// CreateToken issues an access token and a new refresh token. The refresh
	// token expiry is moved forward only when populateExp is true.
	CreateToken(ctx context.Context, user *domain.User, populateExp bool) (*TokenPair, error)

	// RefreshToken exchanges a possibly expired access token and its current
	// refresh token for a new pair.
	RefreshToken(ctx context.Context, pair TokenPair) (*TokenPair, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	users           store.UserStore
	jwt             auth.JWTService
	hasher          auth.PasswordHasher
	refreshLifetime time.Duration
	now             func() time.Time
	logger          *slog.Logger
}

// AuthOption configures an AuthServiceImpl.
type AuthOption func(*AuthServiceImpl)

// WithAuthClock overrides the time source used for refresh token expiry.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthServiceImpl) { s.now = now }
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	refreshLifetime time.Duration,
	logger *slog.Logger,
	opts ...AuthOption,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AuthServiceImpl{
		users:           users,
		jwt:             jwtService,
		hasher:          hasher,
		refreshLifetime: refreshLifetime,
		now:             time.Now,
		logger:          logger.With("component", "auth_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterUser implements AuthService.
func (s *AuthServiceImpl) RegisterUser(ctx context.Context, input RegistrationInput) (*domain.User, error) {
	input.UserName = strings.TrimSpace(input.UserName)
	input.Email = strings.TrimSpace(input.Email)
	if len(input.Roles) == 0 {
		input.Roles = []string{domain.RoleUser}
	}

	if regErr := validateRegistration(input); !regErr.Empty() {
		s.logger.DebugContext(ctx, "registration rejected", "error", regErr)
		return nil, regErr
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:             uuid.New(),
		UserName:       input.UserName,
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhoneNumber:    input.PhoneNumber,
		HashedPassword: hashed,
		Roles:          dedupe(input.Roles),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNameExists):
			return nil, domain.DuplicateUserNameError(user.UserName)
		case errors.Is(err, store.ErrEmailExists):
			return nil, domain.DuplicateEmailError(user.Email)
		case errors.Is(err, store.ErrRoleNotFound):
			regErr := &domain.RegistrationError{}
			regErr.Add(domain.CodeInvalidRoleName, "One of the requested roles does not exist.")
			return nil, regErr
		}
		s.logger.ErrorContext(ctx, "failed to save user", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"roles", user.Roles)
	return user, nil
}

// validateRegistration collects every identity rule input violates.
func validateRegistration(input RegistrationInput) *domain.RegistrationError {
	regErr := &domain.RegistrationError{}

	if input.UserName == "" || !validUserName(input.UserName) {
		regErr.Add(domain.CodeInvalidUserName,
			"Username '%s' is invalid, can only contain letters or digits.", input.UserName)
	}
	if !validEmail(input.Email) {
		regErr.Add(domain.CodeInvalidEmail, "Email '%s' is invalid.", input.Email)
	}

	switch n := len(input.Password); {
	case n == 0:
		regErr.Add(domain.CodePasswordRequired, "A password is required.")
	case n < domain.MinPasswordLength:
		regErr.Add(domain.CodePasswordTooShort,
			"Passwords must be at least %d characters.", domain.MinPasswordLength)
	case n > domain.MaxPasswordLength:
		regErr.Add(domain.CodePasswordTooLong,
			"Passwords must be at most %d characters.", domain.MaxPasswordLength)
	}

	for _, role := range input.Roles {
		if !domain.IsKnownRole(role) {
			regErr.Add(domain.CodeInvalidRoleName, "Role name '%s' is invalid.", role)
		}
	}
	return regErr
}

// validUserName allows letters, digits and -._@+
func validUserName(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-._@+", r) {
			continue
		}
		return false
	}
	return true
}

var identityValidate = validator.New()

func validEmail(email string) bool {
	return identityValidate.Var(email, "required,email") == nil
}

func dedupe(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// ValidateUser implements AuthService.
func (s *AuthServiceImpl) ValidateUser(ctx context.Context, userName, password string) (*domain.User, error) {
	user, err := s.users.GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.DebugContext(ctx, "login failed: unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.DebugContext(ctx, "login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateToken implements AuthService.
func (s *AuthServiceImpl) CreateToken(ctx context.Context, user *domain.User, populateExp bool) (*TokenPair, error) {
	access, expiresAt, err := s.jwt.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := user.RefreshTokenExpiry
	if populateExp {
		expiry = s.now().Add(s.refreshLifetime)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refresh, expiry); err != nil {
		s.logger.ErrorContext(ctx, "failed to store refresh token",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = refresh
	user.RefreshTokenExpiry = expiry

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// RefreshToken implements AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, pair TokenPair) (*TokenPair, error) {
	claims, err := s.jwt.ParseExpiredToken(ctx, pair.AccessToken)
	if err != nil {
		s.logger.DebugContext(ctx, "refresh rejected: access token unusable", "error", err)
		return nil, fmt.Errorf("%w: %w", auth.ErrInvalidRefreshToken, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}

	if !auth.RefreshTokensEqual(user.RefreshToken, pair.RefreshToken) {
		s.logger.DebugContext(ctx, "refresh rejected: token mismatch", "user_id", user.ID)
		return nil, auth.ErrInvalidRefreshToken
	}
	if !s.now().Before(user.RefreshTokenExpiry) {
		s.logger.DebugContext(ctx, "refresh rejected: token expired", "user_id", user.ID)
		return nil, auth.ErrExpiredRefreshToken
	}

	return s.CreateToken(ctx, user, false)
}
