package constants

import "time"

// RFC3339DateTimeFormat is used for every timestamp rendered in an API response.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

const (
	// DefaultRateLimitRequests applies to every route without an override.
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1

	// RegistrationRateLimitRequests bounds sign-ups per client IP per minute.
	RegistrationRateLimitRequests = 30
	// DeliveryEventRateLimitRequests bounds provider callbacks per minute.
	DeliveryEventRateLimitRequests = 300
)

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
