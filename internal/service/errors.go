package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to
// HTTP status codes.
var (
	// ErrInvalidCredentials indicates an unknown user name or a wrong
	// password. Both cases return this error.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid user name or password")
)
