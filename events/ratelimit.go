package events

import (
	"sync"
	"time"
)

type counter struct {
	count       int
	windowStart time.Time
}

// RateLimiter caps how many times a given event may be sent to a given
// client within a time window. Counts are per process and approximate;
// dropping an event is acceptable, blocking a mutation is not.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	limit    int
	counters map[string]*counter
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		window:   window,
		limit:    limit,
		counters: make(map[string]*counter),
	}
}

// Allow reports whether one more event may go out to this client, and
// counts it if so. Expired windows reset; stale keys are pruned lazily.
func (l *RateLimiter) Allow(clientID, event string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	key := clientID + ":" + event

	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowStart) >= l.window {
		l.counters[key] = &counter{count: 1, windowStart: now}
		l.pruneLocked(now)
		return true
	}

	if c.count >= l.limit {
		return false
	}
	c.count++
	return true
}

func (l *RateLimiter) pruneLocked(now time.Time) {
	for key, c := range l.counters {
		if now.Sub(c.windowStart) >= l.window {
			delete(l.counters, key)
		}
	}
}
