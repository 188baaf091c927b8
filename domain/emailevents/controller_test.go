package emailevents

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
)

const bouncedEvent = `{"type":"email.bounced","created_at":"2024-05-01T10:00:00Z","data":{"email_id":"abc","to":["ada@example.com"]}}`

func newTestRouter(t *testing.T, secret string) *router.RouterService {
	t.Helper()

	logger := log.NewLogger(io.Discard, slog.LevelDebug)
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewEmailEventsController(logger, secret))
	return rs
}

func post(rs *router.RouterService, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/notifications/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestReceiveEvent_Accepted(t *testing.T) {
	rs := newTestRouter(t, "")

	assert.Equal(t, http.StatusOK, post(rs, bouncedEvent, nil).Code)
}

func TestReceiveEvent_Malformed(t *testing.T) {
	rs := newTestRouter(t, "")

	assert.Equal(t, http.StatusBadRequest, post(rs, `{"data":{}}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(rs, `nope`, nil).Code)
}

func TestReceiveEvent_WebhookSecret(t *testing.T) {
	rs := newTestRouter(t, "s3cret")

	assert.Equal(t, http.StatusUnauthorized, post(rs, bouncedEvent, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, post(rs, bouncedEvent, map[string]string{"X-Webhook-Secret": "wrong"}).Code)
	assert.Equal(t, http.StatusOK, post(rs, bouncedEvent, map[string]string{"X-Webhook-Secret": "s3cret"}).Code)
}
