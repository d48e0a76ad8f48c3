package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream 503")

func failing() error { return errUpstream }
func passing() error { return nil }

func TestCircuitBreaker_Transitions(t *testing.T) {
	var changes []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(from, to CircuitState) {
			changes = append(changes, string(from)+"->"+string(to))
		},
	})
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Do(failing, nil); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(failing, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	calls := 0
	if err := b.Do(func() error { calls++; return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open circuit must not run the call")
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open once the timeout elapsed, got %s", state)
	}
	if err := b.Do(passing, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(changes) != len(want) {
		t.Fatalf("unexpected transitions: %v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("transition %d = %s, want %s", i, changes[i], want[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.Do(failing, nil)
	now = now.Add(2 * time.Second)
	_ = b.Do(failing, nil)

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected failed probe to reopen, got %s", state)
	}
}

func TestCircuitBreaker_IsFailureFilter(t *testing.T) {
	errDenied := errors.New("token inactive")
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	onlyUpstream := func(err error) bool { return errors.Is(err, errUpstream) }

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errDenied }, onlyUpstream); !errors.Is(err, errDenied) {
			t.Fatalf("expected caller error passthrough, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-failure errors must not open the circuit, got %s", state)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	for i := 0; i < 3; i++ {
		if err := b.Do(failing, nil); !errors.Is(err, errUpstream) {
			t.Fatalf("nil breaker must run every call, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker reports closed, got %s", state)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{}.withDefaults()
	if cfg.FailureThreshold != defaultFailureThreshold || cfg.OpenTimeout != defaultOpenTimeout || cfg.HalfOpenMaxReq != defaultHalfOpenProbes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
