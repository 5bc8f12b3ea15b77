package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb == nil {
		t.Fatal("expected circuit breaker, got nil")
	}
	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestRun_Success(t *testing.T) {
	cb := New(testConfig())

	got, err := Run(cb, func() (string, error) { return "summary", nil })

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got != "summary" {
		t.Errorf("expected summary, got %q", got)
	}
}

func TestRun_TripsAfterFailures(t *testing.T) {
	cb := New(testConfig())
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := Run(cb, func() (string, error) { return "", boom })
		if !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open state, got %v", cb.State())
	}
	if got := testutil.ToFloat64(stateGauge.WithLabelValues("test-circuit")); got != 2 {
		t.Errorf("expected state gauge 2, got %v", got)
	}

	calls := 0
	_, err := Run(cb, func() (string, error) { calls++; return "x", nil })
	if !IsRejected(err) {
		t.Errorf("expected rejection, got %v", err)
	}
	if calls != 0 {
		t.Errorf("function must not run while open, ran %d times", calls)
	}
}

func TestIsSuccessful_IgnoresCallerErrors(t *testing.T) {
	callerErr := errors.New("empty input")
	cfg := testConfig()
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, callerErr) }
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, _ = Run(cb, func() (int, error) { return 0, callerErr })
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state, got %v", cb.State())
	}
}

func TestPresetConfigs(t *testing.T) {
	if got := SummarizerAPIConfig("claude").Name; got != "claude-api" {
		t.Errorf("unexpected name %q", got)
	}
	if cfg := URLFetchConfig(); cfg.MinRequests == 0 || cfg.FailureThreshold <= 0 {
		t.Errorf("unexpected url fetch config %+v", cfg)
	}
}

func TestNew_UntrackedSkipsGauge(t *testing.T) {
	cfg := testConfig()
	cfg.Name = "untracked-circuit"
	cfg.Untracked = true
	cb := New(cfg)

	for i := 0; i < 3; i++ {
		_, _ = Run(cb, func() (string, error) { return "", errors.New("boom") })
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open state, got %v", cb.State())
	}
	if stateGauge.DeleteLabelValues("untracked-circuit") {
		t.Error("untracked breaker must not publish a gauge series")
	}
}
