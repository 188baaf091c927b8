package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "ratelimit:"

type Logger interface {
	Error(msg string, args ...interface{})
}

// RateLimiter decides whether the caller identified by key has exhausted its
// allowance for the current window.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(ctx context.Context, key string) (bool, error)
	Close() error
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Redis shares counters across instances. Nil keeps them in process.
	Redis  *redis.Client
	Logger Logger
}

func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	if config.Redis != nil {
		return NewRedisRateLimiter(config.Redis, config.Requests, config.Window, config.Logger)
	}
	return NewInMemoryRateLimiter(config.Requests, config.Window)
}

// Key builds the counter key for one client under one limiter scope. Limiters
// sharing a Redis instance must use distinct scopes.
func Key(scope, client string) string {
	if scope == "" {
		scope = "global"
	}
	if client == "" {
		client = "unknown"
	}
	return keyPrefix + scope + ":" + client
}

func withPrefix(key string) string {
	if strings.HasPrefix(key, keyPrefix) {
		return key
	}
	return keyPrefix + key
}
