// Package api handles incoming HTTP requests, request validation, and
// response formatting for the book API. Handlers translate HTTP concerns to
// service calls and map service errors to status codes; routing lives in
// cmd/server.
package api
