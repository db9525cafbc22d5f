package api

import (
	"testing"
	"time"
)

func TestClientLimiterQuota(t *testing.T) {
	l := NewClientLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if _, ok := l.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be within quota", i+1)
		}
	}

	retryAfter, ok := l.Allow("10.0.0.1")
	if ok {
		t.Fatal("fourth request should exceed the quota")
	}
	if retryAfter <= 0 {
		t.Errorf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestClientLimiterIsolatesClients(t *testing.T) {
	l := NewClientLimiter(1, time.Hour)

	if _, ok := l.Allow("10.0.0.1"); !ok {
		t.Fatal("first client should be within quota")
	}
	if _, ok := l.Allow("10.0.0.2"); !ok {
		t.Fatal("second client has its own quota")
	}
	if _, ok := l.Allow("10.0.0.1"); ok {
		t.Fatal("first client already spent its quota")
	}
}

func TestClientLimiterRemaining(t *testing.T) {
	l := NewClientLimiter(5, time.Hour)

	if got := l.Remaining("10.0.0.1"); got != 5 {
		t.Errorf("fresh client remaining = %d, want 5", got)
	}

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.1")

	if got := l.Remaining("10.0.0.1"); got != 3 {
		t.Errorf("after 2 requests remaining = %d, want 3", got)
	}
}
