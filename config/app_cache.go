package config

import (
	"context"
	"errors"
	"os"

	"github.com/akeren/waitlist-api/internal/log"
	pkgredis "github.com/akeren/waitlist-api/pkg/redis"
	"github.com/akeren/waitlist-api/pkg/utils"
)

var ErrCacheNotConfigured = errors.New("cache host is not configured")

// Cache is the optional Redis connection. No waitlist data is ever cached
// in it; the router uses it for rate-limit counters shared across replicas.
type Cache interface {
	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	pkgredis.Config
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{Config: pkgredis.Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     utils.GetEnvOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       int(utils.GetEnvPositiveInt("REDIS_DB", 0)),
	}}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

// Connect dials and pings Redis.
func (cc *CacheConfig) Connect(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&cc.Config)
	if err != nil {
		logger.Error("Failed to connect to Redis", "addr", cc.Addr(), "error", err)
		return nil, err
	}

	logger.Info("Connected to Redis", "addr", cc.Addr(), "db", cc.DB)
	return cache, nil
}

// ConnectOptional returns nil when Redis is absent or unreachable. Rate
// limits then fall back to per-process buckets, which is acceptable for a
// single replica.
func (cc *CacheConfig) ConnectOptional(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("REDIS_HOST not set; rate limits are per process")
		return nil
	}

	cache, err := cc.Connect(logger)
	if err != nil {
		logger.Warn("Continuing without Redis; rate limits are per process")
		return nil
	}
	return cache
}

func closeCache(cache Cache, logger *log.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		logger.Error("Failed to close Redis connection", "error", err)
		return
	}
	logger.Info("Redis connection closed")
}
