package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/platform/logger"
	"github.com/phrazzld/book-api/internal/redact"
)

// PanicMessage is the client facing message for a recovered panic.
const PanicMessage = "An unexpected error occurred"

// Recoverer turns a panic into a 500 JSON error. The panic value is logged
// but never sent to the client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContextOrDefault(r.Context()).Error("panic recovered",
				"panic", redact.String(fmt.Sprint(rec)),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()))

			shared.RespondWithError(w, r, http.StatusInternalServerError, PanicMessage)
		}()

		next.ServeHTTP(w, r)
	})
}
