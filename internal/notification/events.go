package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
)

type EventType string

const (
	EventSent            EventType = "email.sent"
	EventDelivered       EventType = "email.delivered"
	EventDeliveryDelayed EventType = "email.delivery_delayed"
	EventBounced         EventType = "email.bounced"
	EventComplained      EventType = "email.complained"
	EventFailed          EventType = "email.failed"
	EventOpened          EventType = "email.opened"
	EventClicked         EventType = "email.clicked"
)

var knownEventTypes = map[EventType]struct{}{
	EventSent:            {},
	EventDelivered:       {},
	EventDeliveryDelayed: {},
	EventBounced:         {},
	EventComplained:      {},
	EventFailed:          {},
	EventOpened:          {},
	EventClicked:         {},
}

func (t EventType) IsKnown() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// IsProblem reports whether the event means the recipient did not, or does
// not want to, receive mail.
func (t EventType) IsProblem() bool {
	switch t {
	case EventBounced, EventComplained, EventFailed:
		return true
	}
	return false
}

type DeliveryEventData struct {
	EmailID string   `json:"email_id"`
	To      []string `json:"to"`
	Subject string   `json:"subject,omitempty"`
}

// DeliveryEvent is a delivery status callback from the email provider.
type DeliveryEvent struct {
	Type      EventType         `json:"type" binding:"required"`
	CreatedAt time.Time         `json:"created_at"`
	Data      DeliveryEventData `json:"data"`
}

// ParseDeliveryEvent decodes a raw callback body.
func ParseDeliveryEvent(body []byte) (*DeliveryEvent, error) {
	var event DeliveryEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode delivery event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("decode delivery event: missing type")
	}
	return &event, nil
}

// HandleDeliveryEvent records a delivery event in the log. Events never
// change waitlist entries.
func HandleDeliveryEvent(ctx context.Context, logger *log.Logger, event *DeliveryEvent) {
	l := log.GetLoggerInstanceFromContext(ctx, logger)

	attrs := []any{
		"event_type", string(event.Type),
		"email_id", event.Data.EmailID,
		"recipients", len(event.Data.To),
	}

	switch {
	case !event.Type.IsKnown():
		l.Warn("Unknown email delivery event", attrs...)
	case event.Type.IsProblem():
		l.Warn("Email delivery problem", attrs...)
	default:
		l.Info("Email delivery event", attrs...)
	}
}
