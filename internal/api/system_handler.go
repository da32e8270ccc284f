package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/book-api/internal/api/shared"
)

// ErrorEndpointMessage is the message returned by GET /api/error.
const ErrorEndpointMessage = "An error has been occurred."

// errDemo is raised by the error endpoint.
var errDemo = errors.New("error endpoint invoked")

// TriggerError handles GET /api/error. It always fails with 500 so clients
// can check the error body format.
func TriggerError(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, ErrorEndpointMessage, errDemo)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
