package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failure")

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker("player-api", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil, nil)

	fail := func() (any, error) { return nil, errUpstream }

	for i := 0; i < 2; i++ {
		if _, err := b.Execute(fail); !errors.Is(err, errUpstream) {
			t.Fatalf("attempt %d: expected upstream error, got %v", i, err)
		}
	}
	if state := b.State(); state != "open" {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	_, err := b.Execute(func() (any, error) {
		called = true
		return "ok", nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("expected open breaker to short-circuit the call")
	}
}

func TestBreaker_IgnoresNonFailureErrors(t *testing.T) {
	errNotFound := errors.New("not found")
	b := NewBreaker("player-api", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, func(err error) bool {
		return !errors.Is(err, errNotFound)
	}, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (any, error) { return nil, errNotFound }); !errors.Is(err, errNotFound) {
			t.Fatalf("expected not found error, got %v", err)
		}
	}
	if state := b.State(); state != "closed" {
		t.Fatalf("expected breaker to stay closed, got %s", state)
	}
}

func TestBreaker_DisabledRunsThrough(t *testing.T) {
	b := NewBreaker("player-api", CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (any, error) { return nil, errUpstream }); !errors.Is(err, errUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	}
	if state := b.State(); state != "disabled" {
		t.Fatalf("unexpected state: %s", state)
	}
}

func TestCircuitBreakerConfig_WithDefaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true}.WithDefaults()
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold != defaults.FailureThreshold || cfg.OpenTimeout != defaults.OpenTimeout || cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
