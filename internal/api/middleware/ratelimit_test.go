package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/book-api/internal/platform/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis: connection refused")
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.NewMemoryLimiter(60, 2)
	require.NoError(t, err)

	h := RateLimit(RateLimitConfig{Limiter: limiter})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := call("10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	// Same IP on another port shares the bucket.
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001").Code)

	limited := call("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	body := decodeError(t, limited)
	assert.Equal(t, RateLimitMessage, body.Message)

	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000").Code, "other clients are unaffected")
}

func TestRateLimitLimiterFailure(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		failOpen   bool
		wantStatus int
	}{
		{name: "fail open", failOpen: true, wantStatus: http.StatusOK},
		{name: "fail closed", failOpen: false, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			RateLimit(RateLimitConfig{
				Limiter:  failingLimiter{},
				FailOpen: tt.failOpen,
				Now:      func() time.Time { return time.Unix(0, 0) },
			})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestIPKeyFunc(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:443"
	assert.Equal(t, "ip:192.0.2.7", IPKeyFunc(req))

	req.RemoteAddr = "192.0.2.7"
	assert.Equal(t, "ip:192.0.2.7", IPKeyFunc(req))
}
