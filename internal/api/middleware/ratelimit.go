package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/platform/logger"
	"github.com/phrazzld/book-api/internal/platform/ratelimit"
)

// RateLimitMessage is returned with 429 responses.
const RateLimitMessage = "Too many requests. Please try again later."

// RateLimitKeyFunc extracts a rate limit key from a request
type RateLimitKeyFunc func(*http.Request) string

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Limiter ratelimit.Limiter
	// KeyFunc defaults to IPKeyFunc.
	KeyFunc RateLimitKeyFunc
	// FailOpen allows requests when the limiter errors. Otherwise they get 503.
	FailOpen bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// IPKeyFunc keys requests by client IP. chi's RealIP middleware has already
// rewritten RemoteAddr from X-Forwarded-For or X-Real-IP.
func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

// RateLimit throttles requests per key and sets the X-RateLimit-* headers.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPKeyFunc
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)
			res, err := cfg.Limiter.Allow(r.Context(), key)
			if err != nil {
				if cfg.FailOpen {
					logger.FromContextOrDefault(r.Context()).Warn("rate limiter unavailable, allowing request",
						"error", err)
					next.ServeHTTP(w, r)
					return
				}
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
					"Service temporarily unavailable", err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retry := res.RetryAfter(cfg.Now())
				h.Set("Retry-After", strconv.Itoa(int((retry+time.Second-1)/time.Second)))
				shared.RespondWithError(w, r, http.StatusTooManyRequests, RateLimitMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
