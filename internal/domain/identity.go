package domain

import (
	"fmt"
	"strings"
)

// Registration error codes, reported to clients alongside a description.
const (
	CodeInvalidUserName   = "InvalidUserName"
	CodeDuplicateUserName = "DuplicateUserName"
	CodeInvalidEmail      = "InvalidEmail"
	CodeDuplicateEmail    = "DuplicateEmail"
	CodePasswordRequired  = "PasswordRequired"
	CodePasswordTooShort  = "PasswordTooShort"
	CodePasswordTooLong   = "PasswordTooLong"
	CodeInvalidRoleName   = "InvalidRoleName"
)

// Password length limits. bcrypt ignores input beyond 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// IdentityError is a single registration failure.
type IdentityError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RegistrationError aggregates every reason a registration was rejected.
type RegistrationError struct {
	Errors []IdentityError
}

func (e *RegistrationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ie := range e.Errors {
		parts[i] = ie.Code
	}
	return "registration failed: " + strings.Join(parts, ", ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *RegistrationError) Unwrap() error {
	return ErrValidation
}

// Add appends an error with a formatted description.
func (e *RegistrationError) Add(code, format string, args ...any) {
	e.Errors = append(e.Errors, IdentityError{Code: code, Description: fmt.Sprintf(format, args...)})
}

// Empty reports whether no errors were recorded.
func (e *RegistrationError) Empty() bool {
	return len(e.Errors) == 0
}

// DuplicateUserNameError reports a taken user name.
func DuplicateUserNameError(userName string) *RegistrationError {
	e := &RegistrationError{}
	e.Add(CodeDuplicateUserName, "Username '%s' is already taken.", userName)
	return e
}

// DuplicateEmailError reports a taken email address.
func DuplicateEmailError(email string) *RegistrationError {
	e := &RegistrationError{}
	e.Add(CodeDuplicateEmail, "Email '%s' is already taken.", email)
	return e
}
