package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for one identity.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) allow(now time.Time, rate, capacity float64) bool {
	b.tokens += now.Sub(b.lastRefill).Seconds() * rate
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter keeps one token bucket per identity (ip, user id, ...). Buckets idle
// for longer than expiration are dropped on a later call.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64
	capacity   float64
	expiration time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// New returns a limiter refilling rate tokens per second up to capacity.
func New(rate, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
	}
}

func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[identity] = b
	}
	return b.allow(now, l.rate, l.capacity)
}

// Len reports the number of tracked identities.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expiration {
		return
	}
	l.lastSweep = now
	for identity, b := range l.buckets {
		if now.Sub(b.lastRefill) >= l.expiration {
			delete(l.buckets, identity)
		}
	}
}
