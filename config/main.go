package config

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/internal/notification"
	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/akeren/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

const tracingShutdownTimeout = 5 * time.Second

// ApplicationConfig holds every long-lived dependency of the server. Fields
// are optional so tests can assemble only what they exercise.
type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Mail            *MailConfig
	Admin           *AdminConfig
	Notifications   *notification.Dispatcher
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: int(utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests)),
		RateLimitWindow:   utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", router.DefaultTimeoutDuration),
	}
}

func (ac *AppConfig) routerConfig() *router.RouterConfig {
	return &router.RouterConfig{
		RateLimitRequests: ac.RateLimitRequests,
		RateLimitWindow:   ac.RateLimitWindow,
		RequestTimeout:    ac.RequestTimeout,
	}
}

// Cleanup releases whatever has been initialised, in reverse dependency
// order. Pending emails are drained first since their spans still need the
// tracer.
func (ac *ApplicationConfig) Cleanup() {
	if ac.Notifications != nil {
		timeout := notification.DefaultSendTimeout
		if ac.Mail != nil && ac.Mail.SendTimeout > 0 {
			timeout = ac.Mail.SendTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := ac.Notifications.Close(ctx); err != nil {
			ac.Logger.Warn("Pending notifications abandoned at shutdown", "error", err)
		}
		cancel()
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	closeCache(ac.Cache, ac.Logger)
	CloseDatabase(ac.DB, ac.Logger)

	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shut down tracer provider", "error", err)
		}
		cancel()
	}

	ac.Logger.Info("Application cleanup completed")
}

// LoadApplicationConfiguration wires the server from the environment. On
// failure everything opened so far is released before returning.
func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	ac := &ApplicationConfig{
		Logger: logger,
		Config: NewAppConfig(),
		Mail:   NewMailConfig(),
		Admin:  NewAdminConfig(),
	}

	if err := ac.load(autoMigrate); err != nil {
		ac.Cleanup()
		return nil, err
	}

	logger.Info("Application configuration loaded",
		"mail_provider", ac.Mail.Provider,
		"redis", ac.Cache != nil,
		"admin_api", ac.Admin.Enabled(),
	)
	return ac, nil
}

func (ac *ApplicationConfig) load(autoMigrate bool) error {
	var err error

	if ac.TracingShutdown, err = SetupTracing(context.Background(), ac.Logger); err != nil {
		return err
	}

	if ac.DB, err = NewDatabase(ac.Logger, NewDBConfig()); err != nil {
		return err
	}

	if autoMigrate {
		if err := AutoMigrate(ac.Logger, ac.DB, models.ModelRegistry...); err != nil {
			return err
		}
	}

	if ac.Notifications, err = ac.Mail.NewDispatcher(ac.Logger); err != nil {
		return err
	}

	ac.Cache = NewCacheConfig().ConnectOptional(ac.Logger)
	ac.RouterService = router.CreateRouterService(ac.Logger, ac.Cache, ac.Config.routerConfig())

	return nil
}
