package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailConfig_Defaults(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "")
	t.Setenv("MAIL_FROM_ADDRESS", "")
	t.Setenv("MAIL_MAX_CONCURRENT_SENDS", "")
	t.Setenv("MAIL_SEND_TIMEOUT", "")

	cfg := NewMailConfig()

	assert.Equal(t, MailProviderNoop, cfg.Provider)
	assert.Equal(t, "hello@blanktechnology.co", cfg.FromAddress)
	assert.Equal(t, "Blank Survey", cfg.FromName)
	assert.Equal(t, int64(notification.DefaultMaxConcurrentSends), cfg.MaxConcurrentSends)
	assert.Equal(t, notification.DefaultSendTimeout, cfg.SendTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestNewMailConfig_Overrides(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "SES")
	t.Setenv("MAIL_MAX_CONCURRENT_SENDS", "2")
	t.Setenv("MAIL_SEND_TIMEOUT", "3s")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg := NewMailConfig()

	assert.Equal(t, MailProviderSES, cfg.Provider)
	assert.Equal(t, int64(2), cfg.MaxConcurrentSends)
	assert.Equal(t, 3*time.Second, cfg.SendTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestMailConfig_Validate(t *testing.T) {
	assert.Error(t, (&MailConfig{Provider: MailProviderSES, FromAddress: "a@b.co"}).Validate())
	assert.Error(t, (&MailConfig{Provider: "sendgrid"}).Validate())
}

func TestMailConfig_NewDispatcher(t *testing.T) {
	logger := log.NewLogger(io.Discard, slog.LevelInfo)

	dispatcher, err := (&MailConfig{Provider: MailProviderNoop}).NewDispatcher(logger)
	require.NoError(t, err)
	require.NotNil(t, dispatcher)

	_, err = (&MailConfig{Provider: "carrier-pigeon"}).NewDispatcher(logger)
	assert.Error(t, err)
}
