package emailevents

import (
	"crypto/subtle"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/notification"
	"github.com/akeren/waitlist-api/pkg/constants"
)

const webhookSecretHeader = "X-Webhook-Secret"

// NewEmailEventsController receives delivery status callbacks from the email
// provider. When secret is empty the header is not checked.
func NewEmailEventsController(logger *log.Logger, secret string) *router.RESTController {
	return router.NewVersionedRESTController(
		"EmailEventsController",
		"v1",
		"/notifications",
		func(rs *router.RouterService, c *router.RESTController) {
			// Provider callbacks arrive in bursts from a few IPs.
			c.RateLimitWith(rs.NewRateLimiter(constants.DeliveryEventRateLimitRequests, time.Minute))

			rs.AddPostHandler(c, nil, "/events", receiveEventHandler(logger, secret))
		},
	)
}

func receiveEventHandler(base *log.Logger, secret string) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		if secret != "" && subtle.ConstantTimeCompare([]byte(ctx.GetHeader(webhookSecretHeader)), []byte(secret)) != 1 {
			logger.Warn("Rejected delivery event with bad webhook secret")
			return router.UnauthorizedResult("Invalid webhook secret")
		}

		body, err := ctx.GetRawData()
		if err != nil {
			logger.Error("Failed to read delivery event body", "error", err)
			return router.BadRequestResult("Invalid request body", nil)
		}

		event, err := notification.ParseDeliveryEvent(body)
		if err != nil {
			logger.Warn("Malformed delivery event", "error", err)
			return router.BadRequestResult("Invalid delivery event", nil)
		}

		notification.HandleDeliveryEvent(ctx.Request.Context(), base, event)

		return router.OKResult(nil, "Event received")
	}
}
