package notification

import (
	"context"
	"sync"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMaxConcurrentSends = 8
	DefaultSendTimeout        = 10 * time.Second
)

type DispatcherConfig struct {
	MaxConcurrentSends int64
	SendTimeout        time.Duration
}

// Dispatcher renders and sends thank-you emails off the request path. At most
// MaxConcurrentSends deliveries are in flight; beyond that Enqueue refuses
// work instead of queueing it.
type Dispatcher struct {
	sender   Sender
	renderer Renderer
	logger   *log.Logger
	sem      *semaphore.Weighted
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, renderer Renderer, logger *log.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.MaxConcurrentSends <= 0 {
		cfg.MaxConcurrentSends = DefaultMaxConcurrentSends
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	return &Dispatcher{
		sender:   sender,
		renderer: renderer,
		logger:   logger.With("component", "notification"),
		sem:      semaphore.NewWeighted(cfg.MaxConcurrentSends),
		timeout:  cfg.SendTimeout,
	}
}

// Deliver renders and sends synchronously.
func (d *Dispatcher) Deliver(ctx context.Context, recipient string, data ThankYouData) (string, error) {
	content, err := d.renderer.RenderThankYou(data)
	if err != nil {
		return "", &DeliveryError{Recipient: recipient, Stage: "render", Err: err}
	}

	id, err := d.sender.Send(ctx, recipient, content)
	if err != nil {
		return "", &DeliveryError{Recipient: recipient, Stage: "send", Err: err}
	}

	return id, nil
}

// Enqueue starts an asynchronous delivery and returns immediately. The
// delivery outlives ctx's cancellation but keeps its values, so the request's
// correlation id stays on the log lines.
func (d *Dispatcher) Enqueue(ctx context.Context, recipient string, data ThankYouData) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return &DeliveryError{Recipient: recipient, Stage: "enqueue", Err: ErrDispatcherClosed}
	}

	if !d.sem.TryAcquire(1) {
		return &DeliveryError{Recipient: recipient, Stage: "enqueue", Err: ErrDispatcherBusy}
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.sem.Release(1)

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		logger := log.GetLoggerInstanceFromContext(sendCtx, d.logger)

		id, err := d.Deliver(sendCtx, recipient, data)
		if err != nil {
			logger.Warn("Thank-you email not delivered", "error", err)
			return
		}

		logger.Info("Thank-you email sent", "delivery_id", id)
	}()

	return nil
}

// Close stops accepting work and waits for in-flight deliveries until ctx is
// done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
