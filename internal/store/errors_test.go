package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapGenericErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		generic error
	}{
		{"book not found", ErrBookNotFound, ErrNotFound},
		{"category not found", ErrCategoryNotFound, ErrNotFound},
		{"user not found", ErrUserNotFound, ErrNotFound},
		{"user name exists", ErrUserNameExists, ErrDuplicate},
		{"email exists", ErrEmailExists, ErrDuplicate},
		{"role not found", ErrRoleNotFound, ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			assert.True(t, errors.Is(wrapped, tc.generic))
			assert.True(t, errors.Is(wrapped, tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	err := NewStoreError("book", "create", "insert failed", ErrInvalidEntity)
	assert.Equal(t, "create operation on book failed: insert failed: invalid entity", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidEntity))

	bare := NewStoreError("user", "get", "scan failed", nil)
	assert.Equal(t, "get operation on user failed: scan failed", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
