package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/book-api/internal/config"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/mocks"
	"github.com/phrazzld/book-api/internal/platform/memory"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/phrazzld/book-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var authNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

const refreshLifetime = 7 * 24 * time.Hour

type authFixture struct {
	svc   service.AuthService
	users *memory.Store
	clock *time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	clock := authNow
	now := func() time.Time { return clock }

	jwtSvc, err := auth.NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            "service-test-secret-long-enough-for-hs256",
		Issuer:               "book-api",
		Audience:             "book-api-clients",
		TokenLifetimeMinutes: 15,
	}, now)
	require.NoError(t, err)

	mem := memory.New(memory.WithClock(now))
	svc := service.NewAuthService(mem.Users(), jwtSvc, auth.NewBcryptHasher(4), refreshLifetime, nil,
		service.WithAuthClock(now))
	return &authFixture{svc: svc, users: mem, clock: &clock}
}

func validRegistration() service.RegistrationInput {
	return service.RegistrationInput{
		UserName:  "zcomert",
		Email:     "zcomert@samsun.edu.tr",
		Password:  "Secret123",
		FirstName: "Zafer",
		LastName:  "Cömert",
	}
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.svc.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleUser}, user.Roles)
	assert.NotEqual(t, "Secret123", user.HashedPassword)

	stored, err := f.users.Users().GetByUserName(ctx, "zcomert")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	t.Run("duplicate user name", func(t *testing.T) {
		in := validRegistration()
		in.UserName = "ZCOMERT"
		in.Email = "other@example.com"
		_, err := f.svc.RegisterUser(ctx, in)
		var regErr *domain.RegistrationError
		require.ErrorAs(t, err, &regErr)
		require.Len(t, regErr.Errors, 1)
		assert.Equal(t, domain.CodeDuplicateUserName, regErr.Errors[0].Code)
		assert.Equal(t, "Username 'ZCOMERT' is already taken.", regErr.Errors[0].Description)
	})

	t.Run("duplicate email", func(t *testing.T) {
		in := validRegistration()
		in.UserName = "someone"
		_, err := f.svc.RegisterUser(ctx, in)
		var regErr *domain.RegistrationError
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, domain.CodeDuplicateEmail, regErr.Errors[0].Code)
	})
}

func TestRegisterUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*service.RegistrationInput)
		wantCodes []string
	}{
		{
			name:      "blank user name",
			mutate:    func(in *service.RegistrationInput) { in.UserName = "  " },
			wantCodes: []string{domain.CodeInvalidUserName},
		},
		{
			name:      "user name with spaces",
			mutate:    func(in *service.RegistrationInput) { in.UserName = "z comert" },
			wantCodes: []string{domain.CodeInvalidUserName},
		},
		{
			name:      "missing email",
			mutate:    func(in *service.RegistrationInput) { in.Email = "" },
			wantCodes: []string{domain.CodeInvalidEmail},
		},
		{
			name:      "malformed email",
			mutate:    func(in *service.RegistrationInput) { in.Email = "not-an-email" },
			wantCodes: []string{domain.CodeInvalidEmail},
		},
		{
			name:      "missing password",
			mutate:    func(in *service.RegistrationInput) { in.Password = "" },
			wantCodes: []string{domain.CodePasswordRequired},
		},
		{
			name:      "short password",
			mutate:    func(in *service.RegistrationInput) { in.Password = "12345" },
			wantCodes: []string{domain.CodePasswordTooShort},
		},
		{
			name: "long password",
			mutate: func(in *service.RegistrationInput) {
				b := make([]byte, domain.MaxPasswordLength+1)
				for i := range b {
					b[i] = 'x'
				}
				in.Password = string(b)
			},
			wantCodes: []string{domain.CodePasswordTooLong},
		},
		{
			name:      "unknown role",
			mutate:    func(in *service.RegistrationInput) { in.Roles = []string{domain.RoleUser, "Owner"} },
			wantCodes: []string{domain.CodeInvalidRoleName},
		},
		{
			name: "several problems at once",
			mutate: func(in *service.RegistrationInput) {
				in.UserName = ""
				in.Email = "x"
				in.Password = "1"
			},
			wantCodes: []string{domain.CodeInvalidUserName, domain.CodeInvalidEmail, domain.CodePasswordTooShort},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newAuthFixture(t)

			in := validRegistration()
			tt.mutate(&in)
			_, err := f.svc.RegisterUser(context.Background(), in)

			var regErr *domain.RegistrationError
			require.ErrorAs(t, err, &regErr)
			codes := make([]string, len(regErr.Errors))
			for i, e := range regErr.Errors {
				codes[i] = e.Code
				assert.NotEmpty(t, e.Description)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRegisterUserAdminRole(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	in := validRegistration()
	in.Roles = []string{domain.RoleAdmin, domain.RoleUser, domain.RoleAdmin}

	user, err := f.svc.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleAdmin, domain.RoleUser}, user.Roles)
}

func TestValidateUser(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)

	user, err := f.svc.ValidateUser(ctx, "zcomert", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "zcomert", user.UserName)

	_, err = f.svc.ValidateUser(ctx, "zcomert", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = f.svc.ValidateUser(ctx, "nobody", "Secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCreateAndRefreshToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	ctx := context.Background()
	registered, err := f.svc.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)

	user, err := f.svc.ValidateUser(ctx, "zcomert", "Secret123")
	require.NoError(t, err)

	pair, err := f.svc.CreateToken(ctx, user, true)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, authNow.Add(15*time.Minute), pair.ExpiresAt)

	stored, err := f.users.Users().GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
	assert.Equal(t, authNow.Add(refreshLifetime), stored.RefreshTokenExpiry)

	// The access token has expired but the refresh token has not.
	*f.clock = authNow.Add(time.Hour)

	renewed, err := f.svc.RefreshToken(ctx, *pair)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)
	assert.Equal(t, authNow.Add(time.Hour+15*time.Minute), renewed.ExpiresAt)

	stored, err = f.users.Users().GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, renewed.RefreshToken, stored.RefreshToken)
	assert.Equal(t, authNow.Add(refreshLifetime), stored.RefreshTokenExpiry, "refresh keeps the original expiry")

	t.Run("old refresh token is rejected", func(t *testing.T) {
		_, err := f.svc.RefreshToken(ctx, *pair)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("garbage access token is rejected", func(t *testing.T) {
		_, err := f.svc.RefreshToken(ctx, service.TokenPair{AccessToken: "x.y.z", RefreshToken: renewed.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("expired refresh token is rejected", func(t *testing.T) {
		*f.clock = authNow.Add(refreshLifetime)
		_, err := f.svc.RefreshToken(ctx, *renewed)
		assert.ErrorIs(t, err, auth.ErrExpiredRefreshToken)
	})
}

func TestCreateTokenStoreFailure(t *testing.T) {
	t.Parallel()

	users := new(mocks.MockUserStore)
	users.On("UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("db down"))

	jwtSvc := &mocks.MockJWTService{Token: "access", ExpiresAt: authNow}
	svc := service.NewAuthService(users, jwtSvc, &mocks.MockPasswordHasher{}, refreshLifetime, nil)

	_, err := svc.CreateToken(context.Background(), &domain.User{UserName: "x"}, true)
	assert.ErrorContains(t, err, "failed to store refresh token")
	users.AssertExpectations(t)
}

func TestValidateUserUsesHasher(t *testing.T) {
	t.Parallel()

	users := new(mocks.MockUserStore)
	users.On("GetByUserName", mock.Anything, "ahmet").
		Return(&domain.User{UserName: "ahmet", HashedPassword: "hashed:pw"}, nil)

	hasher := &mocks.MockPasswordHasher{ShouldSucceed: false}
	svc := service.NewAuthService(users, &mocks.MockJWTService{}, hasher, refreshLifetime, nil)

	_, err := svc.ValidateUser(context.Background(), " ahmet ", "pw")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.CompareCallCount)
}
