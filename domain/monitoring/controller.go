package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database      int    `json:"database"`      // 1 = healthy, 0 = unhealthy
	Cache         int    `json:"cache"`         // 1 = healthy, 0 = unhealthy or not configured
	Notifications string `json:"notifications"` // email provider in use
	Uptime        int    `json:"uptime"`        // seconds
}

type MonitoringController struct {
	db           *gorm.DB
	logger       *log.Logger
	cache        Cache
	mailProvider string
	startTime    time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, mailProvider string) *router.RESTController {
	ctrl := &MonitoringController{
		db:           db,
		logger:       logger,
		cache:        cache,
		mailProvider: mailProvider,
		startTime:    time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			const monitoringRequestsPerMinute = 10

			c.RateLimitWith(rs.NewRateLimiter(monitoringRequestsPerMinute, time.Minute))

			rs.AddGetHandler(c, nil, "", ctrl.monitor)
			rs.AddGetHandler(c, nil, "health", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) monitor(c *router.RequestContext) *router.ServiceResult {
	return router.OKResult("waitlist-api is operational", "Monitoring successful")
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	code := http.StatusOK
	if status.Database == 0 {
		code = http.StatusServiceUnavailable
	}

	return router.ErrorResult(code, "waitlist-api health check completed", status)
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime:        int(time.Since(ctrl.startTime).Seconds()),
		Notifications: ctrl.mailProvider,
	}

	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	switch {
	case ctrl.cache == nil:
		logger.Debug("Cache not configured, cache health check skipped")
	case ctrl.cache.Ping(ctx) == nil:
		status.Cache = 1
	default:
		logger.Error("Cache health check failed")
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
