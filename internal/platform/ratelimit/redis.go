package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow keeps one sorted-set member per admitted request, scored by
// its timestamp in milliseconds. It returns {allowed, count, oldest}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, 0, window_start)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
	redis.call('ZADD', key, now, member)
	count = count + 1
	allowed = 1
end
redis.call('EXPIRE', key, ttl)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldest_score = now
if oldest[2] then
	oldest_score = tonumber(oldest[2])
end
return {allowed, count, tostring(oldest_score)}
`)

// RedisLimiter is a sliding window limiter shared through Redis.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter allows limit requests per window per key.
func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) (*RedisLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if window <= 0 {
		return nil, errors.New("window must be greater than 0")
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "bookapi:ratelimit:",
		now:    time.Now,
	}, nil
}

// Allow implements Limiter.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := r.now()
	ttl := int(r.window.Seconds())
	if ttl < 1 {
		ttl = 1
	}

	raw, err := slidingWindow.Run(ctx, r.client, []string{r.prefix + key},
		now.UnixMilli(),
		now.Add(-r.window).UnixMilli(),
		r.limit,
		ttl,
		uuid.NewString(),
	).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("redis rate limit check failed: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, errors.New("unexpected redis script result")
	}

	allowed, ok1 := raw[0].(int64)
	count, ok2 := raw[1].(int64)
	oldestStr, ok3 := raw[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return Result{}, errors.New("unexpected redis script result types")
	}
	oldest, err := strconv.ParseFloat(oldestStr, 64)
	if err != nil {
		oldest = float64(now.UnixMilli())
	}

	return Result{
		Allowed:   allowed == 1,
		Limit:     r.limit,
		Remaining: max(0, r.limit-int(count)),
		ResetAt:   time.UnixMilli(int64(oldest)).Add(r.window).UTC(),
	}, nil
}
