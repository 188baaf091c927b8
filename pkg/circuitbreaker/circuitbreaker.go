package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

type CircuitState int

const (
	// Closed lets every call through.
	Closed CircuitState = iota
	// Open rejects calls until the recovery timeout elapses.
	Open
	// HalfOpen lets calls through to probe whether the dependency recovered.
	HalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker guards calls and opens the circuit after repeated failures.
type CircuitBreaker interface {
	Call(func() error) error
	State() CircuitState
	Reset()
}

type Config struct {
	FailureThreshold int           // consecutive failures before opening
	RecoveryTimeout  time.Duration // time spent open before probing
	SuccessThreshold int           // probe successes needed to close again
	// IsFailure decides which errors count against the dependency. Errors it
	// rejects are returned to the caller but leave the breaker untouched.
	// Nil counts every error.
	IsFailure func(error) bool
	// OnStateChange runs outside the breaker's lock.
	OnStateChange func(from, to CircuitState)
}

func DefaultConfig() *Config {
	return &Config{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 2,
	}
}

type circuitBreaker struct {
	config *Config
	now    func() time.Time

	mutex       sync.Mutex
	state       CircuitState
	failures    int
	successes   int
	nextAttempt time.Time
}

// NewCircuitBreaker applies defaults when config is nil.
func NewCircuitBreaker(config *Config) CircuitBreaker {
	return newCircuitBreaker(config, time.Now)
}

func newCircuitBreaker(config *Config, now func() time.Time) *circuitBreaker {
	if config == nil {
		config = DefaultConfig()
	}
	return &circuitBreaker{
		config: config,
		now:    now,
		state:  Closed,
	}
}

func (cb *circuitBreaker) Call(fn func() error) error {
	cb.mutex.Lock()
	from := cb.state
	if cb.state == Open && cb.now().After(cb.nextAttempt) {
		cb.state = HalfOpen
		cb.successes = 0
	}
	allowed := cb.state != Open
	to := cb.state
	cb.mutex.Unlock()

	cb.notify(from, to)

	if !allowed {
		return ErrCircuitOpen
	}

	// fn runs without the lock held.
	err := fn()

	cb.mutex.Lock()
	from = cb.state
	switch {
	case err == nil:
		cb.recordSuccess()
	case cb.countsAsFailure(err):
		cb.recordFailure()
	case cb.state == HalfOpen:
		// The dependency answered; only the request was bad.
		cb.recordSuccess()
	}
	to = cb.state
	cb.mutex.Unlock()

	cb.notify(from, to)
	return err
}

func (cb *circuitBreaker) State() CircuitState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mutex.Lock()
	from := cb.state
	cb.state = Closed
	cb.failures = 0
	cb.successes = 0
	cb.mutex.Unlock()

	cb.notify(from, Closed)
}

func (cb *circuitBreaker) recordFailure() {
	cb.failures++

	switch cb.state {
	case Closed:
		if cb.failures >= cb.config.FailureThreshold {
			cb.open()
		}
	case HalfOpen:
		cb.open()
	}
}

func (cb *circuitBreaker) open() {
	cb.state = Open
	cb.nextAttempt = cb.now().Add(cb.config.RecoveryTimeout)
}

func (cb *circuitBreaker) recordSuccess() {
	cb.failures = 0

	if cb.state == HalfOpen {
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.state = Closed
			cb.successes = 0
		}
	}
}

func (cb *circuitBreaker) countsAsFailure(err error) bool {
	return cb.config.IsFailure == nil || cb.config.IsFailure(err)
}

func (cb *circuitBreaker) notify(from, to CircuitState) {
	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}
