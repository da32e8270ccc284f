package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/phrazzld/book-api/internal/config"
)

// Named CORS policies.
const (
	CORSPolicyAll     = "all"
	CORSPolicySpecial = "special"
)

// CORSPolicy holds configuration for the CORS middleware.
type CORSPolicy struct {
	// AllowedOrigins lists allowed origins. "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods is sent on preflight. Empty echoes the requested method.
	AllowedMethods []string
	// AllowedHeaders is sent on preflight. Empty echoes the requested headers.
	AllowedHeaders []string
	// ExposedHeaders lists response headers readable by the client.
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is how long preflight results can be cached, in seconds.
	MaxAge int
}

var exposedHeaders = []string{"X-Pagination", "X-Trace-ID", "X-Request-Id", "Location",
	"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"}

// AllPolicy allows any origin, method and header without credentials.
func AllPolicy() CORSPolicy {
	return CORSPolicy{
		AllowedOrigins: []string{"*"},
		ExposedHeaders: exposedHeaders,
		MaxAge:         86400,
	}
}

// SpecialPolicy allows only origins, with credentials.
func SpecialPolicy(origins []string) CORSPolicy {
	return CORSPolicy{
		AllowedOrigins:   slices.Clone(origins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

// PolicyFromConfig selects the named policy.
func PolicyFromConfig(cfg config.CORSConfig) CORSPolicy {
	if cfg.Policy == CORSPolicySpecial {
		return SpecialPolicy(cfg.AllowedOrigins)
	}
	return AllPolicy()
}

// CORS applies policy to every request and answers preflight requests with
// 204.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	wildcard := slices.Contains(policy.AllowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && (wildcard || slices.Contains(policy.AllowedOrigins, origin))
			h := w.Header()

			if allowed {
				if wildcard && !policy.AllowCredentials {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				if policy.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if len(policy.ExposedHeaders) > 0 {
					h.Set("Access-Control-Expose-Headers", strings.Join(policy.ExposedHeaders, ", "))
				}
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			if allowed {
				methods := strings.Join(policy.AllowedMethods, ", ")
				if methods == "" {
					methods = r.Header.Get("Access-Control-Request-Method")
				}
				h.Set("Access-Control-Allow-Methods", methods)

				headers := strings.Join(policy.AllowedHeaders, ", ")
				if headers == "" {
					headers = r.Header.Get("Access-Control-Request-Headers")
				}
				if headers != "" {
					h.Set("Access-Control-Allow-Headers", headers)
				}
				if policy.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(policy.MaxAge))
				}
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
