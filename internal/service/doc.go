// Package service contains the application use cases of the book API. It
// orchestrates domain objects and the repositories defined in internal/store.
//
// Services translate store errors into domain errors (NotFoundError,
// ValidationError, RegistrationError) so the API layer can map them onto
// status codes without knowing which backend is in use. Dependencies are
// passed to constructors; services never depend on a concrete store.
package service
