package engine

import (
	"context"
	"math/rand"
	"time"
)

// Throttle inserts a delay between profile visits to reduce request
// burstiness. Injected as a strategy so tests can substitute NopThrottle.
type Throttle interface {
	Wait(ctx context.Context)
}

// JitterThrottle sleeps a uniformly random duration in [Min, Max].
type JitterThrottle struct {
	Min time.Duration
	Max time.Duration
}

// NewJitterThrottle creates a throttle over the given delay range.
func NewJitterThrottle(min, max time.Duration) *JitterThrottle {
	if max < min {
		max = min
	}
	return &JitterThrottle{Min: min, Max: max}
}

func (t *JitterThrottle) Wait(ctx context.Context) {
	d := t.Min
	if span := t.Max - t.Min; span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// NopThrottle waits for nothing.
type NopThrottle struct{}

func (NopThrottle) Wait(context.Context) {}
