package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter enforces a per-client request quota over a sliding window.
type ClientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	requests int
	window   time.Duration
}

func NewClientLimiter(requests int, window time.Duration) *ClientLimiter {
	return &ClientLimiter{
		clients:  make(map[string]*rate.Limiter),
		requests: requests,
		window:   window,
	}
}

func (l *ClientLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.clients[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.window/time.Duration(l.requests)), l.requests)
		l.clients[key] = lim
	}
	return lim
}

// Allow consumes one slot for key. When the quota is exhausted it returns
// ok=false together with how long the client should wait before retrying.
func (l *ClientLimiter) Allow(key string) (retryAfter time.Duration, ok bool) {
	lim := l.limiter(key)
	res := lim.Reserve()
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		return delay, false
	}
	return 0, true
}

// Remaining reports how many requests key has left without consuming one.
func (l *ClientLimiter) Remaining(key string) int {
	tokens := int(l.limiter(key).Tokens())
	if tokens < 0 {
		return 0
	}
	if tokens > l.requests {
		return l.requests
	}
	return tokens
}

// Limit returns the configured quota size.
func (l *ClientLimiter) Limit() int { return l.requests }

// Window returns the configured quota window.
func (l *ClientLimiter) Window() time.Duration { return l.window }
