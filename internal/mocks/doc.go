// Package mocks provides centralized mock implementations for testing.
//
// Two styles are used. Function-field mocks (MockJWTService,
// MockPasswordHasher, MockBookService) let a test override one method and
// fall back to fixed defaults for the rest. Testify mocks (MockBookStore,
// MockCategoryStore, MockUserStore) record calls and are configured with
// On(...).Return(...).
//
//	jwtSvc := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
package mocks
