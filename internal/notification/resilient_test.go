package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	"github.com/akeren/waitlist-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() retry.RetryPolicy {
	return retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
		Multiplier:  1,
	})
}

func TestWithResilience_RetriesTransientErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("service unavailable")}
	resilient := WithResilience(sender, nil, fastRetry())

	_, err := resilient.Send(context.Background(), "ada@example.com", RenderedContent{})

	assert.True(t, retry.IsMaxRetriesExceeded(err))
	assert.Equal(t, 3, sender.Calls())
}

func TestWithResilience_DoesNotRetryPermanentErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("email address is not verified")}
	resilient := WithResilience(sender, nil, fastRetry())

	_, err := resilient.Send(context.Background(), "ada@example.com", RenderedContent{})

	require.Error(t, err)
	assert.Equal(t, 1, sender.Calls())
}

func TestWithResilience_OpensCircuit(t *testing.T) {
	sender := &fakeSender{err: errors.New("rejected")}
	breaker := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Minute,
		SuccessThreshold: 1,
	})
	resilient := WithResilience(sender, breaker, fastRetry())

	for i := 0; i < 2; i++ {
		_, err := resilient.Send(context.Background(), "ada@example.com", RenderedContent{})
		require.Error(t, err)
	}

	_, err := resilient.Send(context.Background(), "ada@example.com", RenderedContent{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 2, sender.Calls())
}

func TestWithResilience_ReturnsDeliveryID(t *testing.T) {
	resilient := WithResilience(&fakeSender{}, nil, nil)

	id, err := resilient.Send(context.Background(), "ada@example.com", RenderedContent{})

	require.NoError(t, err)
	assert.Equal(t, "msg-ada@example.com", id)
}

func TestWithResilience_StopsRetryingWhenContextEnds(t *testing.T) {
	sender := &fakeSender{err: errors.New("service unavailable")}
	resilient := WithResilience(sender, nil, retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: 5,
		BaseDelay:   time.Hour,
		Multiplier:  1,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resilient.Send(ctx, "ada@example.com", RenderedContent{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sender.Calls())
}
