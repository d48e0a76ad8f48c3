package anubis

import (
	"testing"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/user"
)

func TestPrincipalCache_SetGetAndExpire(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	cache := newPrincipalCache(time.Minute, 10)
	cache.now = func() time.Time { return current }

	cache.Set("k1", user.Principal{UserID: "u-1"})
	principal, ok := cache.Get("k1")
	if !ok || principal.UserID != "u-1" {
		t.Fatalf("expected cache hit, got=%+v ok=%v", principal, ok)
	}

	current = current.Add(time.Minute)
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
}

func TestPrincipalCache_EvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 2)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	cache.Set("k2", user.Principal{UserID: "u-2"})
	cache.Set("k3", user.Principal{UserID: "u-3"})

	if cache.Len() != 2 {
		t.Fatalf("expected capacity to hold at 2, got=%d", cache.Len())
	}
	if _, ok := cache.Get("k3"); !ok {
		t.Fatalf("expected newest entry to be cached")
	}
}

func TestPrincipalCache_DisabledWithoutTTL(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(-1, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache to be disabled")
	}
}
