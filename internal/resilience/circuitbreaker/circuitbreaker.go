// Package circuitbreaker guards calls to language model backends and remote
// pages with github.com/sony/gobreaker. Each breaker publishes its state as
// the circuit_breaker_state gauge.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// stateGauge is 0 closed, 1 half-open, 2 open.
var stateGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state per circuit (0 closed, 1 half-open, 2 open)",
	},
	[]string{"circuit"},
)

// Config tunes one breaker.
type Config struct {
	Name string

	// MaxRequests is how many probe calls pass while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// The breaker trips once at least MinRequests calls were counted and
	// the failure ratio reaches FailureThreshold (0.6 = 60%).
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful decides whether an error counts against the breaker.
	// When nil every non-nil error is a failure.
	IsSuccessful func(err error) bool

	// Untracked breakers are left out of the state gauge. Set it for
	// breakers keyed by caller input, whose names are unbounded.
	Untracked bool
}

// SummarizerAPIConfig is used for every language model backend.
func SummarizerAPIConfig(provider string) Config {
	return Config{
		Name:             provider + "-api",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// URLFetchConfig trips late and recovers quickly: remote sites fail for
// many reasons unrelated to each other.
func URLFetchConfig() Config {
	return Config{
		Name:             "url-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      10,
	}
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a closed breaker.
func New(cfg Config) *CircuitBreaker {
	onChange := onStateChange
	if cfg.Untracked {
		onChange = logStateChange
	} else {
		stateGauge.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))
	}

	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.Requests >= cfg.MinRequests &&
					float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
			},
			IsSuccessful:  cfg.IsSuccessful,
			OnStateChange: onChange,
		}),
	}
}

func onStateChange(name string, from, to gobreaker.State) {
	stateGauge.WithLabelValues(name).Set(stateValue(to))
	logStateChange(name, from, to)
}

func logStateChange(name string, from, to gobreaker.State) {
	slog.Warn("circuit breaker state changed",
		slog.String("circuit", name),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Run calls fn through cb. While the breaker is open fn is not called and
// the gobreaker rejection error is returned; see IsRejected.
func Run[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }
func (cb *CircuitBreaker) Name() string          { return cb.name }
func (cb *CircuitBreaker) IsOpen() bool          { return cb.State() == gobreaker.StateOpen }

// IsRejected reports whether err means the breaker refused the call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
