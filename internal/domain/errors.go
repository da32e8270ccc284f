package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Callers usually receive a *ValidationError that unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIDOutOfRange is returned when a book id falls outside MinBookID..MaxBookID.
	ErrIDOutOfRange = errors.New("id out of range")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when the caller is not authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks a required role.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries the human readable messages of every rule an
// input violated, in field order.
type ValidationError struct {
	Messages []string
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Entity string
	ID     int
}

// NewBookNotFoundError reports a missing book.
func NewBookNotFoundError(id int) *NotFoundError {
	return &NotFoundError{Entity: "book", ID: id}
}

// NewCategoryNotFoundError reports a missing category.
func NewCategoryNotFoundError(id int) *NotFoundError {
	return &NotFoundError{Entity: "category", ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The %s with %d could not be found!", e.Entity, e.ID)
}

// Unwrap allows errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
