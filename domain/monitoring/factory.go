package monitoring

import (
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db           *gorm.DB
	logger       *log.Logger
	cache        Cache
	mailProvider string
}

func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache Cache, mailProvider string) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:           db,
		logger:       logger,
		cache:        cache,
		mailProvider: mailProvider,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.logger, f.cache, f.mailProvider)
}
