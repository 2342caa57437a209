package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/teststubs"
)

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 100, 1, nil)

	start := time.Now()
	for season := 2022; season <= 2024; season++ {
		if _, err := rl.FetchTable(context.Background(), season); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	// Burst 1 at 100/s: the second and third calls each wait roughly 10ms.
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected calls to be paced, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("expected inner provider called 3 times, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 0.001, 1, nil)
	// Drain the single burst token.
	if _, err := rl.FetchTable(context.Background(), 2024); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchTable(ctx, 2024); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedProvider(nil, 10, 1, nil)

	_, err := rl.FetchTable(context.Background(), 2024)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaults(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, 0, nil).(*rateLimitedProvider)
	if rl.limiter.Limit() != defaultRPS || rl.limiter.Burst() != defaultBurst {
		t.Fatalf("expected default limiter, got %v/%d", rl.limiter.Limit(), rl.limiter.Burst())
	}
	if rl.Name() != "rate-limited" {
		t.Fatalf("expected fallback name, got %s", rl.Name())
	}
}
