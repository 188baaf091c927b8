package waitlist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeCreated   = "created"
	outcomeDuplicate = "duplicate"
	outcomeInvalid   = "invalid"
	outcomeError     = "error"
)

type registrationMetrics struct {
	total *prometheus.CounterVec
}

func newRegistrationMetrics() *registrationMetrics {
	return &registrationMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waitlist_registrations_total",
			Help: "Waitlist registration attempts by intake path and outcome.",
		}, []string{"path", "outcome"}),
	}
}

func (m *registrationMetrics) observe(path string, err error) {
	m.total.WithLabelValues(path, registrationOutcome(err)).Inc()
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrDuplicateEmail):
		return outcomeDuplicate
	case errors.Is(err, ErrInvalidEmail):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
