package hearts

import "sync"

// DefaultMaxConcurrent is the cap used when no limit is configured.
const DefaultMaxConcurrent = 30

// Limiter bounds the number of simultaneously live particles. Every admitted
// particle holds one slot until it is retired.
//
// The check-and-increment in TryAdmit and the decrement in Release are each
// performed under a mutex, so a Limiter may be shared by callbacks running on
// different goroutines.
type Limiter struct {
	mu     sync.Mutex
	max    int
	active int
}

// NewLimiter creates a limiter with the given cap. Non-positive values fall
// back to DefaultMaxConcurrent.
func NewLimiter(max int) *Limiter {
	if max <= 0 {
		max = DefaultMaxConcurrent
	}
	return &Limiter{max: max}
}

// TryAdmit takes a slot if one is free and reports whether it did. A
// rejected call changes nothing.
func (l *Limiter) TryAdmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active >= l.max {
		return false
	}
	l.active++
	return true
}

// Release returns a slot. A release without a matching admission is a no-op
// and reports false; the count never goes negative.
func (l *Limiter) Release() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == 0 {
		return false
	}
	l.active--
	return true
}

// SetLimit replaces the cap when n is positive and ignores it otherwise.
// Lowering the cap does not evict live particles; admission stays closed
// until the active count drains below the new cap.
func (l *Limiter) SetLimit(n int) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	l.max = n
	l.mu.Unlock()
}

// Limit returns the current cap.
func (l *Limiter) Limit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.max
}

// Active returns the number of slots currently held.
func (l *Limiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
