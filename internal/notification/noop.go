package notification

import (
	"context"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/google/uuid"
)

type noopSender struct {
	logger *log.Logger
}

// NewNoopSender logs instead of sending. It is the default when no email
// provider is configured.
func NewNoopSender(logger *log.Logger) Sender {
	return &noopSender{logger: logger}
}

func (n *noopSender) Send(ctx context.Context, recipient string, content RenderedContent) (string, error) {
	id := "noop-" + uuid.NewString()
	log.GetLoggerInstanceFromContext(ctx, n.logger).Info("Email would be sent (noop)",
		"delivery_id", id,
		"subject", content.Subject,
	)
	return id, nil
}
