package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, sender Sender, cfg DispatcherConfig) *Dispatcher {
	t.Helper()
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	return NewDispatcher(sender, renderer, testLogger(), cfg)
}

func TestDispatcher_Deliver_Success(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(t, sender, DispatcherConfig{})

	id, err := d.Deliver(context.Background(), "ada@example.com", ThankYouData{Name: "ada lovelace", Position: 3})

	require.NoError(t, err)
	assert.Equal(t, "msg-ada@example.com", id)
	require.Len(t, sender.contents, 1)
	assert.Contains(t, sender.contents[0].Text, "Ada Lovelace")
	assert.Contains(t, sender.contents[0].Text, "number 3")
}

func TestDispatcher_Deliver_SendFailureIsDeliveryError(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	d := newTestDispatcher(t, sender, DispatcherConfig{})

	_, err := d.Deliver(context.Background(), "ada@example.com", ThankYouData{})

	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "send", deliveryErr.Stage)
	assert.Equal(t, "ada@example.com", deliveryErr.Recipient)
}

func TestDispatcher_Deliver_RenderFailureSkipsSend(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, failingRenderer{}, testLogger(), DispatcherConfig{})

	_, err := d.Deliver(context.Background(), "ada@example.com", ThankYouData{})

	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "render", deliveryErr.Stage)
	assert.Zero(t, sender.Calls())
}

func TestDispatcher_Enqueue_AlwaysFailingSenderDoesNotSurface(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	d := newTestDispatcher(t, sender, DispatcherConfig{MaxConcurrentSends: 4})

	for i := 0; i < 3; i++ {
		assert.NoError(t, d.Enqueue(context.Background(), "ada@example.com", ThankYouData{}))
		require.Eventually(t, func() bool { return sender.Calls() == i+1 }, time.Second, 5*time.Millisecond)
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 3, sender.Calls())
}

func TestDispatcher_Enqueue_SurvivesRequestCancellation(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	d := newTestDispatcher(t, sender, DispatcherConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Enqueue(ctx, "ada@example.com", ThankYouData{}))
	cancel()

	close(sender.block)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"ada@example.com"}, sender.sent)
}

func TestDispatcher_Enqueue_BusyAtCapacity(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	d := newTestDispatcher(t, sender, DispatcherConfig{MaxConcurrentSends: 1})

	require.NoError(t, d.Enqueue(context.Background(), "first@example.com", ThankYouData{}))

	err := d.Enqueue(context.Background(), "second@example.com", ThankYouData{})
	assert.ErrorIs(t, err, ErrDispatcherBusy)

	close(sender.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []string{"first@example.com"}, sender.sent)
}

func TestDispatcher_Enqueue_AfterClose(t *testing.T) {
	d := newTestDispatcher(t, &fakeSender{}, DispatcherConfig{})
	require.NoError(t, d.Close(context.Background()))

	err := d.Enqueue(context.Background(), "ada@example.com", ThankYouData{})
	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

func TestDispatcher_Close_HonoursDeadline(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	d := newTestDispatcher(t, sender, DispatcherConfig{SendTimeout: time.Minute})
	require.NoError(t, d.Enqueue(context.Background(), "ada@example.com", ThankYouData{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(sender.block)
	require.NoError(t, d.Close(context.Background()))
}
