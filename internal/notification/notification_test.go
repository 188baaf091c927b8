package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/akeren/waitlist-api/internal/log"
)

func testLogger() *log.Logger {
	return log.NewLogger(io.Discard, slog.LevelDebug)
}

type fakeSender struct {
	mu       sync.Mutex
	calls    int32
	err      error
	sent     []string
	contents []RenderedContent
	block    chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, recipient string, content RenderedContent) (string, error) {
	atomic.AddInt32(&f.calls, 1)

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if f.err != nil {
		return "", f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recipient)
	f.contents = append(f.contents, content)
	return "msg-" + recipient, nil
}

func (f *fakeSender) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type failingRenderer struct{}

func (failingRenderer) RenderThankYou(ThankYouData) (RenderedContent, error) {
	return RenderedContent{}, errors.New("template exploded")
}
