package notification

import (
	"context"

	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	"github.com/akeren/waitlist-api/pkg/retry"
)

type resilientSender struct {
	next    Sender
	breaker circuitbreaker.CircuitBreaker
	policy  retry.RetryPolicy
}

// WithResilience retries transient provider errors and stops calling the
// provider while it keeps failing.
func WithResilience(next Sender, breaker circuitbreaker.CircuitBreaker, policy retry.RetryPolicy) Sender {
	if breaker == nil {
		breaker = circuitbreaker.NewCircuitBreaker(nil)
	}
	if policy == nil {
		policy = retry.NewExponentialBackoff(nil)
	}
	return &resilientSender{next: next, breaker: breaker, policy: policy}
}

func (r *resilientSender) Send(ctx context.Context, recipient string, content RenderedContent) (string, error) {
	var deliveryID string

	err := r.breaker.Call(func() error {
		return r.policy.Execute(ctx, func(ctx context.Context) error {
			id, err := r.next.Send(ctx, recipient, content)
			if err != nil {
				return err
			}
			deliveryID = id
			return nil
		})
	})

	return deliveryID, err
}
