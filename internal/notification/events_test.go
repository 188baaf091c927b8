package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryEvent(t *testing.T) {
	body := []byte(`{"type":"email.bounced","created_at":"2024-05-01T10:00:00Z","data":{"email_id":"abc","to":["ada@example.com"]}}`)

	event, err := ParseDeliveryEvent(body)

	require.NoError(t, err)
	assert.Equal(t, EventBounced, event.Type)
	assert.Equal(t, "abc", event.Data.EmailID)
	assert.Equal(t, []string{"ada@example.com"}, event.Data.To)
	assert.True(t, event.Type.IsProblem())
}

func TestParseDeliveryEvent_Rejects(t *testing.T) {
	_, err := ParseDeliveryEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseDeliveryEvent([]byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestEventType(t *testing.T) {
	assert.True(t, EventOpened.IsKnown())
	assert.False(t, EventOpened.IsProblem())
	assert.False(t, EventType("email.archived").IsKnown())
}

func TestHandleDeliveryEvent_DoesNotPanicOnUnknownType(t *testing.T) {
	assert.NotPanics(t, func() {
		HandleDeliveryEvent(context.Background(), testLogger(), &DeliveryEvent{Type: "email.archived"})
	})
}
