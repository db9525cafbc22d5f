package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

func TestEngineSearchRequiresLogin(t *testing.T) {
	eng := New(config.DefaultConfig(), testLogger)

	_, err := eng.Search(context.Background(), types.SearchRequest{
		Hashtag:      "kahve",
		MaxFollowers: 5000,
	})
	if !errors.Is(err, types.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestEngineCloseIdempotent(t *testing.T) {
	eng := New(config.DefaultConfig(), testLogger)

	// No session was ever created; both calls are no-ops.
	if err := eng.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestJitterThrottleBounds(t *testing.T) {
	thr := NewJitterThrottle(0, 0)
	// Zero range returns immediately even with a live context.
	thr.Wait(context.Background())

	// Inverted range collapses to the minimum rather than panicking.
	inv := NewJitterThrottle(5, 1)
	if inv.Min != 5 || inv.Max != 5 {
		t.Errorf("expected collapsed range [5,5], got [%d,%d]", inv.Min, inv.Max)
	}
}
