package ratelimit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// slidingWindow counts requests in a sorted set scored by millisecond
// timestamp. Returns 1 when the request is rejected.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
	return 1
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window * 2)

return 0
`)

// RedisRateLimiter is a sliding-window limiter shared by every instance
// pointing at the same Redis.
type RedisRateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   Logger
}

func NewRedisRateLimiter(client *redis.Client, requests int, window time.Duration, logger Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
	}
}

func (r *RedisRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

// IsLimited returns an error when Redis is unreachable. Callers decide
// whether to fail open.
func (r *RedisRateLimiter) IsLimited(ctx context.Context, key string) (bool, error) {
	key = withPrefix(key)

	member, err := requestID()
	if err != nil {
		return false, fmt.Errorf("rate limiter member id: %w", err)
	}

	result, err := slidingWindow.Run(ctx, r.client, []string{key},
		time.Now().UnixMilli(),
		r.window.Milliseconds(),
		r.requests,
		member,
	).Int64()
	if err != nil {
		if r.logger != nil {
			r.logger.Error("Redis rate limit script failed", "key", key, "error", err)
		}
		return false, fmt.Errorf("rate limiter redis: %w", err)
	}

	return result == 1, nil
}

// Close is a no-op: the client belongs to the application cache.
func (r *RedisRateLimiter) Close() error {
	return nil
}

func requestID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
