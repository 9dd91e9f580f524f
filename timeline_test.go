package hearts

import (
	"testing"
	"time"
)

func TestTimelineRunsInDueOrder(t *testing.T) {
	tl := NewTimeline()
	var order []string
	tl.After(ms(30), func() { order = append(order, "c") })
	tl.After(ms(10), func() { order = append(order, "a") })
	tl.After(ms(20), func() { order = append(order, "b") })

	if n := tl.Advance(ms(30)); n != 3 {
		t.Fatalf("Advance ran %d callbacks, want 3", n)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTimelineTiesKeepSchedulingOrder(t *testing.T) {
	tl := NewTimeline()
	var order []int
	for i := 0; i < 5; i++ {
		tl.After(ms(5), func() { order = append(order, i) })
	}
	tl.Advance(ms(5))
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestTimelineNeverRunsSynchronously(t *testing.T) {
	tl := NewTimeline()
	ran := false
	tl.After(0, func() { ran = true })
	if ran {
		t.Fatal("After ran callback synchronously")
	}
	tl.Advance(0)
	if !ran {
		t.Error("zero-delay callback did not run on Advance(0)")
	}
}

func TestTimelineHoldsFutureCallbacks(t *testing.T) {
	tl := NewTimeline()
	ran := false
	tl.After(ms(100), func() { ran = true })
	tl.Advance(ms(99))
	if ran {
		t.Fatal("callback ran early")
	}
	if tl.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", tl.Pending())
	}
	tl.Advance(ms(1))
	if !ran {
		t.Error("callback did not run when due")
	}
}

func TestTimelineNowDuringCallback(t *testing.T) {
	tl := NewTimeline()
	var seen time.Duration
	tl.After(ms(40), func() { seen = tl.Now() })
	tl.Advance(ms(100))
	if seen != ms(40) {
		t.Errorf("Now in callback = %v, want 40ms", seen)
	}
	if tl.Now() != ms(100) {
		t.Errorf("Now after Advance = %v, want 100ms", tl.Now())
	}
}

func TestTimelineNestedSchedulingWithinWindow(t *testing.T) {
	tl := NewTimeline()
	var hits []time.Duration
	tl.After(ms(10), func() {
		hits = append(hits, tl.Now())
		tl.After(ms(10), func() { hits = append(hits, tl.Now()) })
		tl.After(ms(100), func() { hits = append(hits, tl.Now()) })
	})
	tl.Advance(ms(50))
	if len(hits) != 2 || hits[0] != ms(10) || hits[1] != ms(20) {
		t.Errorf("hits = %v, want [10ms 20ms]", hits)
	}
	if tl.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", tl.Pending())
	}
}

func TestTimelineClearAndNextDue(t *testing.T) {
	tl := NewTimeline()
	if _, ok := tl.NextDue(); ok {
		t.Error("NextDue on empty timeline reported ok")
	}
	tl.After(ms(25), func() { t.Error("cleared callback ran") })
	tl.After(-ms(5), func() { t.Error("cleared callback ran") })
	if due, _ := tl.NextDue(); due != 0 {
		t.Errorf("NextDue = %v, want 0 for negative delay", due)
	}
	tl.Clear()
	if tl.Advance(time.Second) != 0 {
		t.Error("Advance ran callbacks after Clear")
	}
}
