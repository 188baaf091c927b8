package notification

import (
	"context"
	"errors"
	"fmt"
)

// RenderedContent is a ready-to-send message.
type RenderedContent struct {
	Subject string
	HTML    string
	Text    string
}

// Sender delivers rendered content to a single recipient and returns the
// provider's delivery ID.
type Sender interface {
	Send(ctx context.Context, recipient string, content RenderedContent) (string, error)
}

var (
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
	ErrDispatcherBusy   = errors.New("notification dispatcher is at capacity")
)

// DeliveryError is a failed notification. It is not an apperrors.AppError and
// never reaches API callers.
type DeliveryError struct {
	Recipient string
	Stage     string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification %s failed for %s: %v", e.Stage, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
