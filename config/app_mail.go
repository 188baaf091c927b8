package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/notification"
	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	"github.com/akeren/waitlist-api/pkg/retry"
	"github.com/akeren/waitlist-api/pkg/utils"
)

const (
	MailProviderNoop = "noop"
	MailProviderSES  = "ses"

	defaultMailFromAddress = "hello@blanktechnology.co"
	defaultMailFromName    = "Blank Survey"
)

type MailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	SES                notification.SESConfig
	MaxConcurrentSends int64
	SendTimeout        time.Duration
	WebhookSecret      string
}

func NewMailConfig() *MailConfig {
	cfg := &MailConfig{
		Provider:    strings.ToLower(utils.GetEnvTrimmedOrDefault("MAIL_PROVIDER", MailProviderNoop)),
		FromAddress: utils.GetEnvTrimmedOrDefault("MAIL_FROM_ADDRESS", defaultMailFromAddress),
		FromName:    utils.GetEnvTrimmedOrDefault("MAIL_FROM_NAME", defaultMailFromName),
		SES: notification.SESConfig{
			Region:          utils.GetEnvTrimmedOrDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     utils.GetEnvTrimmed("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: utils.GetEnvTrimmed("AWS_SECRET_ACCESS_KEY"),
		},
		MaxConcurrentSends: utils.GetEnvPositiveInt("MAIL_MAX_CONCURRENT_SENDS", notification.DefaultMaxConcurrentSends),
		SendTimeout:        utils.GetEnvPositiveDuration("MAIL_SEND_TIMEOUT", notification.DefaultSendTimeout),
		WebhookSecret:      utils.GetEnvTrimmed("MAIL_WEBHOOK_SECRET"),
	}

	return cfg
}

func (mc *MailConfig) Validate() error {
	switch mc.Provider {
	case MailProviderNoop:
		return nil
	case MailProviderSES:
		var missing []string
		if mc.SES.AccessKeyID == "" {
			missing = append(missing, "AWS_ACCESS_KEY_ID")
		}
		if mc.SES.SecretAccessKey == "" {
			missing = append(missing, "AWS_SECRET_ACCESS_KEY")
		}
		if mc.FromAddress == "" {
			missing = append(missing, "MAIL_FROM_ADDRESS")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required mail env vars: %s", strings.Join(missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unsupported MAIL_PROVIDER %q (supported: %s, %s)", mc.Provider, MailProviderNoop, MailProviderSES)
	}
}

func (mc *MailConfig) NewSender(logger *log.Logger) notification.Sender {
	if mc.Provider != MailProviderSES {
		return notification.NewNoopSender(logger)
	}

	breakerConfig := circuitbreaker.DefaultConfig()
	// A rejected recipient says nothing about the provider's health.
	breakerConfig.IsFailure = func(err error) bool {
		return retry.IsMaxRetriesExceeded(err) || retry.IsRetryable(err)
	}
	breakerConfig.OnStateChange = func(from, to circuitbreaker.CircuitState) {
		logger.Warn("Mail provider circuit changed state", "provider", mc.Provider, "from", from.String(), "to", to.String())
	}

	return notification.WithResilience(
		notification.NewSESSender(mc.SES, mc.FromAddress, mc.FromName),
		circuitbreaker.NewCircuitBreaker(breakerConfig),
		retry.NewExponentialBackoff(nil),
	)
}

// NewDispatcher wires sender, templates and concurrency limits.
func (mc *MailConfig) NewDispatcher(logger *log.Logger) (*notification.Dispatcher, error) {
	if err := mc.Validate(); err != nil {
		logger.Error("Invalid mail configuration", "error", err)
		return nil, err
	}

	renderer, err := notification.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}

	dispatcher := notification.NewDispatcher(mc.NewSender(logger), renderer, logger, notification.DispatcherConfig{
		MaxConcurrentSends: mc.MaxConcurrentSends,
		SendTimeout:        mc.SendTimeout,
	})

	logger.Info("Notification dispatcher ready",
		"provider", mc.Provider,
		"max_concurrent_sends", mc.MaxConcurrentSends,
		"send_timeout", mc.SendTimeout,
	)
	return dispatcher, nil
}
