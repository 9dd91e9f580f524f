package hearts

import (
	"container/heap"
	"sync"
	"time"
)

// Scheduler runs deferred callbacks. Hosts that own a frame loop use a
// Timeline; anything that can run a func after a delay on the host's update
// goroutine satisfies it.
type Scheduler interface {
	// After runs fn once, no earlier than d from Now. Callbacks are never
	// run synchronously inside After.
	After(d time.Duration, fn func())
	// Now returns the scheduler's current time, measured from its start.
	Now() time.Duration
}

// Timeline is a frame-driven Scheduler. Time only moves when the host calls
// Advance, and due callbacks run on the goroutine calling Advance in order
// of due time, then scheduling order.
type Timeline struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewTimeline creates an empty timeline at time zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// After implements Scheduler. Negative delays are treated as zero.
func (t *Timeline) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	t.mu.Lock()
	heap.Push(&t.queue, &timer{at: t.now + d, seq: t.seq, fn: fn})
	t.seq++
	t.mu.Unlock()
}

// Now implements Scheduler. While a callback runs, Now reports the time it
// was due, so work it schedules is placed relative to that moment.
func (t *Timeline) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

// Advance moves time forward by dt and runs every callback that falls due,
// including callbacks scheduled by other callbacks within the window. It
// returns the number of callbacks run.
func (t *Timeline) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	t.mu.Lock()
	target := t.now + dt
	fired := 0
	for len(t.queue) > 0 && t.queue[0].at <= target {
		tm := heap.Pop(&t.queue).(*timer)
		t.now = tm.at
		t.mu.Unlock()
		tm.fn()
		fired++
		t.mu.Lock()
	}
	t.now = target
	t.mu.Unlock()
	return fired
}

// Pending returns the number of callbacks waiting to run.
func (t *Timeline) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// NextDue returns the due time of the earliest pending callback.
func (t *Timeline) NextDue() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 {
		return 0, false
	}
	return t.queue[0].at, true
}

// Clear drops every pending callback without running it.
func (t *Timeline) Clear() {
	t.mu.Lock()
	t.queue = t.queue[:0]
	t.mu.Unlock()
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// timerQueue is a min-heap ordered by (at, seq).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	tm := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return tm
}
