package waitlist

import (
	"context"

	"github.com/akeren/waitlist-api/internal/notification"
)

// ThankYouEnqueuer is satisfied by *notification.Dispatcher.
type ThankYouEnqueuer interface {
	Enqueue(ctx context.Context, recipient string, data notification.ThankYouData) error
}

type notificationHook struct {
	enqueuer ThankYouEnqueuer
}

// NewNotificationHook sends a thank-you email for each committed registration.
// A nil enqueuer yields a nil hook.
func NewNotificationHook(enqueuer ThankYouEnqueuer) RegistrationHook {
	if enqueuer == nil {
		return nil
	}
	return &notificationHook{enqueuer: enqueuer}
}

func (h *notificationHook) AfterRegister(ctx context.Context, event RegistrationEvent) error {
	return h.enqueuer.Enqueue(ctx, event.Email, notification.ThankYouData{
		Name:     event.Name,
		Position: event.Position,
	})
}
