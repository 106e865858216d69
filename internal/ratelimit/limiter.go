package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by (identity, bucket).
// State lives only in memory: losing it on restart is acceptable and there
// is no coordination across processes.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*window
	stopC   chan struct{}
}

type window struct {
	start  time.Time
	count  int
	length time.Duration
}

func NewLimiter() *Limiter {
	l := &Limiter{
		entries: make(map[string]*window),
		stopC:   make(chan struct{}),
	}

	go l.cleanupRoutine()

	return l
}

// Allow records one request for identity against the named bucket and
// reports whether it is accepted. The identity-wide global caps are checked
// before the named bucket. On rejection retryAfter is the time left until
// the exhausted window resets.
func (l *Limiter) Allow(identity, bucket string) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, gb := range globalBuckets {
		if ok, retryAfter := l.hit(identity, gb, now); !ok {
			return false, retryAfter
		}
	}

	return l.hit(identity, GetBucket(bucket), now)
}

// hit is the check-and-increment step for one rule. Caller holds l.mu, so
// read, window reset and increment happen as one critical section.
func (l *Limiter) hit(identity string, b Bucket, now time.Time) (bool, time.Duration) {
	key := identity + "|" + b.Name

	w, exists := l.entries[key]
	if !exists || now.Sub(w.start) >= b.Window {
		w = &window{start: now, length: b.Window}
		l.entries[key] = w
	}

	w.count++
	if w.count <= b.Max {
		return true, 0
	}

	return false, w.start.Add(b.Window).Sub(now)
}

// Reset drops all counters. Test helper.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*window)
}

func (l *Limiter) Stop() {
	close(l.stopC)
}

// cleanupRoutine drops windows that expired long ago so idle identities do
// not leak memory.
func (l *Limiter) cleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.stopC:
			return
		}
	}
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.entries {
		if now.Sub(w.start) >= 2*w.length {
			delete(l.entries, key)
		}
	}
}
