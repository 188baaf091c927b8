package router

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/akeren/waitlist-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const DefaultTimeoutDuration = 30 * time.Second

// Cache is the subset of the application cache the router needs.
type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

type RouterService struct {
	engine         *gin.Engine
	server         *http.Server
	logger         *log.Logger
	redisClient    *redis.Client
	registry       *prometheus.Registry
	requestTimeout time.Duration

	rateLimiter       ratelimit.RateLimiter
	rateLimitRequests int
	rateLimitWindow   time.Duration
	scopedLimiters    []ratelimit.RateLimiter

	routes map[route]mountedRoute
}

func CreateRouterService(logger *log.Logger, cache Cache, routerConfig *RouterConfig) *RouterService {
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		logger.Info("Setting Gin mode", "mode", mode)
		gin.SetMode(mode)
	}

	if routerConfig.RequestTimeout <= 0 {
		routerConfig.RequestTimeout = DefaultTimeoutDuration
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if utils.IsTracingEnabled() {
		engine.Use(otelgin.Middleware(utils.OTelServiceName()))
		logger.Info("Tracing middleware enabled")
	}

	// ClientIP() trusts X-Forwarded-For only from proxies listed in TRUSTED_PROXIES.
	trustedProxies := parseTrustedProxiesEnv(os.Getenv("TRUSTED_PROXIES"))
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}

	rs := &RouterService{
		engine:            engine,
		logger:            logger,
		redisClient:       redisClientFromCache(cache, logger),
		requestTimeout:    routerConfig.RequestTimeout,
		rateLimitRequests: routerConfig.RateLimitRequests,
		rateLimitWindow:   routerConfig.RateLimitWindow,
		routes:            make(map[route]mountedRoute),
	}

	rs.rateLimiter = rs.NewRateLimiter(rs.rateLimitRequests, rs.rateLimitWindow)
	rs.mountMetrics()

	engine.Use(
		rs.securityHeadersMiddleware(),
		rs.maxBodySizeMiddleware(),
		rs.corsMiddleware(),
		rs.rateLimitMiddleware(),
		rs.timeoutMiddleware(),
		rs.correlationIDMiddleware(),
		rs.loggerInjectionMiddleware(),
		rs.requestLoggingMiddleware(),
	)

	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = true

	engine.NoRoute(func(c *gin.Context) {
		logger.WithCorrelationID(c.Request.Context()).Warn("Route not found", "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, NotFoundResult("Route not found").ToJSON())
	})

	engine.NoMethod(func(c *gin.Context) {
		logger.WithCorrelationID(c.Request.Context()).Warn("Method not allowed", "method", c.Request.Method)
		c.JSON(http.StatusMethodNotAllowed, ErrorResult(http.StatusMethodNotAllowed, "Method not allowed", nil).ToJSON())
	})

	// Handlers run on the serving goroutine; these timeouts bound them.
	rs.server = &http.Server{
		Addr:              ":8080",
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       routerConfig.RequestTimeout,
		WriteTimeout:      routerConfig.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized",
		"rate_limit_requests", rs.rateLimitRequests,
		"rate_limit_window", rs.rateLimitWindow,
		"redis_rate_limiting", rs.redisClient != nil,
	)
	return rs
}

func redisClientFromCache(cache Cache, logger *log.Logger) *redis.Client {
	if cache == nil {
		return nil
	}

	provider, ok := cache.(RedisClientProvider)
	if !ok {
		return nil
	}

	client := provider.GetClient()
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, rate limiting falls back to in-memory", "error", err)
		return nil
	}

	return client
}

func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	switch s {
	case "":
		return nil
	case "*":
		return []string{"0.0.0.0/0", "::/0"}
	}

	var proxies []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

// NewRateLimiter builds a limiter for a controller or handler override. It is
// shared across instances through Redis when a cache is configured.
func (routerService *RouterService) NewRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	limiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    routerService.redisClient,
		Logger:   routerService.logger,
	})
	routerService.scopedLimiters = append(routerService.scopedLimiters, limiter)
	return limiter
}

// RegisterCollector exposes c on /metrics. It is a no-op when metrics are
// disabled.
func (routerService *RouterService) RegisterCollector(c prometheus.Collector) {
	if routerService.registry == nil {
		return
	}
	if err := routerService.registry.Register(c); err != nil {
		routerService.logger.Warn("Metric collector not registered", "error", err)
	}
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"version", controller.version,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	routerService.server.Addr = ":" + utils.GetEnvOrDefault("APP_PORT", "8080")

	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		routerService.logger.Error("Failed to start HTTP server", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully")
	return routerService.server.Shutdown(ctx)
}

func (routerService *RouterService) Cleanup() {
	for _, limiter := range routerService.scopedLimiters {
		if err := limiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "error", err)
		}
	}
	routerService.logger.Info("Router service cleanup completed")
}
