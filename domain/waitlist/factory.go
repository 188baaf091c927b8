package waitlist

import (
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db         *gorm.DB
	logger     *log.Logger
	hook       RegistrationHook
	adminToken string
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, hook RegistrationHook, adminToken string) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:         db,
		logger:     logger,
		hook:       hook,
		adminToken: adminToken,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	return NewWaitlistService(f.logger, NewWaitlistRepository(f.db), f.hook)
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return newWaitlistController(f.CreateService(), f.adminToken)
}
