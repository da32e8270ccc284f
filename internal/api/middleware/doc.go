// Package middleware holds the HTTP middleware of the book API: tracing,
// panic recovery, metrics, CORS, rate limiting, and JWT authentication with
// role checks.
package middleware
