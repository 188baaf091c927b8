package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/emailevents"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService

	rs.MountController(monitoring.NewMonitoringControllerFactory(
		appConfig.DB,
		appConfig.Logger,
		appConfig.Cache,
		appConfig.Mail.Provider,
	).CreateController())

	var hook waitlist.RegistrationHook
	if appConfig.Notifications != nil {
		hook = waitlist.NewNotificationHook(appConfig.Notifications)
	}

	rs.MountController(waitlist.NewWaitlistServiceFactory(
		appConfig.DB,
		appConfig.Logger,
		hook,
		appConfig.Admin.APIToken,
	).CreateController())

	rs.MountController(emailevents.NewEmailEventsController(appConfig.Logger, appConfig.Mail.WebhookSecret))
}
