package hearts

import (
	"math"
	"testing"
	"time"
)

func TestRainPlanDelays(t *testing.T) {
	r := NewResolver(5, DefaultCosmetics())
	plan := RainPlan(10, ms(50), RainOptions{}, Environment{}, r)
	if len(plan) != 10 {
		t.Fatalf("len = %d, want 10", len(plan))
	}
	for i, ps := range plan {
		if ps.Delay != ms(50*i) {
			t.Errorf("plan[%d].Delay = %v, want %v", i, ps.Delay, ms(50*i))
		}
		if ps.Params.Pos != nil {
			t.Errorf("plan[%d] has a position, want bottom-edge placement", i)
		}
		if ps.Params.Size < 15 || ps.Params.Size > 35 {
			t.Errorf("plan[%d].Size = %f, want within [15, 35]", i, ps.Params.Size)
		}
		if ps.Params.Duration < 2*time.Second || ps.Params.Duration > 4*time.Second {
			t.Errorf("plan[%d].Duration = %v, want within [2s, 4s]", i, ps.Params.Duration)
		}
	}
}

func TestRainPlanConstrained(t *testing.T) {
	r := NewResolver(5, DefaultCosmetics())
	if n := len(RainPlan(10, ms(50), RainOptions{}, Environment{Constrained: true}, r)); n != 6 {
		t.Errorf("constrained len = %d, want 6", n)
	}
	if n := len(RainPlan(0, 0, RainOptions{}, Environment{}, r)); n != DefaultRainCount {
		t.Errorf("default len = %d, want %d", n, DefaultRainCount)
	}
}

func TestSpawnRain(t *testing.T) {
	m, s, tl := newTestManager(t)
	m.SpawnRain(10, ms(50), RainOptions{})
	if tl.Pending() != 10 {
		t.Fatalf("Pending = %d, want 10 scheduled attempts", tl.Pending())
	}

	tl.Advance(0)
	if len(s.particles()) != 1 {
		t.Errorf("particles at 0ms = %d, want 1", len(s.particles()))
	}
	tl.Advance(ms(449))
	if len(s.particles()) != 9 {
		t.Errorf("particles at 449ms = %d, want 9", len(s.particles()))
	}
	tl.Advance(ms(1))
	if len(s.particles()) != 10 {
		t.Errorf("particles at 450ms = %d, want 10", len(s.particles()))
	}
	for _, el := range s.particles() {
		if el.style.Y != s.viewport.Height {
			t.Errorf("rain particle at y=%f, want bottom edge", el.style.Y)
		}
	}
}

func TestSpawnRainConstrained(t *testing.T) {
	m, s, tl := newTestManager(t, WithEnvironment(Environment{Constrained: true}))
	m.SpawnRain(10, ms(50), RainOptions{})
	if tl.Pending() != 6 {
		t.Fatalf("Pending = %d, want 6", tl.Pending())
	}
	tl.Advance(ms(450))
	if len(s.particles()) != 6 {
		t.Errorf("particles = %d, want 6", len(s.particles()))
	}
}

func TestSpawnRainRejectionsAreIndependent(t *testing.T) {
	m, s, tl := newTestManager(t, WithMaxConcurrent(3))
	m.SpawnRain(10, ms(10), RainOptions{})
	tl.Advance(ms(50))
	if len(s.particles()) != 3 {
		t.Fatalf("particles = %d, want 3 admitted", len(s.particles()))
	}
	s.complete(s.particles()[0])
	tl.Advance(ms(10))
	if len(s.particles()) != 4 {
		t.Errorf("particles = %d, want a later entry admitted after a slot freed", len(s.particles()))
	}
}

func TestDestroyAllDropsPendingBatches(t *testing.T) {
	m, s, tl := newTestManager(t)
	m.SpawnRain(10, ms(50), RainOptions{})
	tl.Advance(ms(100))
	if got := m.DestroyAll(); got != 3 {
		t.Errorf("DestroyAll = %d, want 3", got)
	}
	tl.Advance(time.Second)
	if len(s.particles()) != 3 {
		t.Errorf("particles = %d, want no spawns after DestroyAll", len(s.particles()))
	}

	m.SpawnRain(2, ms(50), RainOptions{})
	tl.Advance(ms(50))
	if len(s.particles()) != 5 {
		t.Errorf("particles = %d, want new batches unaffected", len(s.particles()))
	}
}

func TestRingPoints(t *testing.T) {
	pts := RingPoints(100, 100, 50, 4)
	want := []Vec2{{150, 100}, {100, 150}, {50, 100}, {100, 50}}
	if len(pts) != len(want) {
		t.Fatalf("len = %d, want %d", len(pts), len(want))
	}
	for i := range want {
		assertNear(t, "x", pts[i].X, want[i].X)
		assertNear(t, "y", pts[i].Y, want[i].Y)
	}
	if RingPoints(0, 0, 10, 0) != nil {
		t.Error("zero count returned points")
	}
}

func TestSpawnRing(t *testing.T) {
	m, s, tl := newTestManager(t)
	m.SpawnRing(100, 100, 4, RingOptions{Radius: 50})

	plan := RingPlan(Vec2{100, 100}, 4, RingOptions{Radius: 50})
	for i := 1; i < len(plan); i++ {
		if plan[i].Delay <= plan[i-1].Delay {
			t.Errorf("plan[%d].Delay = %v, not after %v", i, plan[i].Delay, plan[i-1].Delay)
		}
	}

	tl.Advance(time.Second)
	got := s.particles()
	if len(got) != 4 {
		t.Fatalf("particles = %d, want 4", len(got))
	}
	want := []Vec2{{150, 100}, {100, 150}, {50, 100}, {100, 50}}
	for i, el := range got {
		assertNear(t, "x", el.style.X, want[i].X)
		assertNear(t, "y", el.style.Y, want[i].Y)
	}
}

func TestFollowCooldown(t *testing.T) {
	m, s, tl := newTestManager(t)
	src := newFakeTarget()
	f := m.BindMouseFollow(src, FollowOptions{Chance: 1, MinInterval: time.Second})
	defer f.Unbind()

	src.fire(EventMouseMove, 10, 10, Rect{})
	tl.Advance(ms(10))
	src.fire(EventMouseMove, 20, 20, Rect{})
	if len(s.particles()) != 1 {
		t.Fatalf("particles = %d, want 1 (second suppressed)", len(s.particles()))
	}

	tl.Advance(ms(1001))
	src.fire(EventMouseMove, 30, 30, Rect{})
	if len(s.particles()) != 2 {
		t.Errorf("particles = %d, want 2 after cooldown", len(s.particles()))
	}
	last := s.particles()[1]
	if last.style.X != 30 || last.style.Y != 30 {
		t.Errorf("spawned at (%f, %f), want pointer (30, 30)", last.style.X, last.style.Y)
	}
}

func TestFollowChance(t *testing.T) {
	m, _, tl := newTestManager(t)
	f := m.NewFollower(FollowOptions{Chance: 0.5, MinInterval: ms(1)})
	hits := 0
	for i := 0; i < 400; i++ {
		tl.Advance(ms(10))
		if h := f.Sample(1, 1); h != nil {
			hits++
			h.Retire()
		}
	}
	if hits < 120 || hits > 280 {
		t.Errorf("hits = %d of 400, want roughly half", hits)
	}
}

func TestFollowUnbind(t *testing.T) {
	m, s, _ := newTestManager(t)
	src := newFakeTarget()
	f := m.BindMouseFollow(src, FollowOptions{Chance: 1})
	f.Unbind()
	f.Unbind()
	src.fire(EventMouseMove, 1, 1, Rect{})
	if len(s.particles()) != 0 {
		t.Error("unbound follower spawned")
	}
}

func TestBurstCenter(t *testing.T) {
	c := BurstCenter(NewEvent(EventClick, 1, 2, Rect{X: 10, Y: 20, Width: 100, Height: 50}, nil))
	if c != (Vec2{60, 45}) {
		t.Errorf("center = %v, want bounds center", c)
	}
	c = BurstCenter(NewEvent(EventClick, 1, 2, Rect{}, nil))
	if c != (Vec2{1, 2}) {
		t.Errorf("center = %v, want pointer", c)
	}
}

func TestBindBurst(t *testing.T) {
	m, s, tl := newTestManager(t)
	target := newFakeTarget()
	unbind := m.BindBurst(target, "", 5, BurstOptions{StopPropagation: true})

	target.fire(EventClick, 0, 0, Rect{X: 10, Y: 20, Width: 100, Height: 50})
	if target.stopped != 1 {
		t.Errorf("stopped = %d, want 1", target.stopped)
	}
	tl.Advance(ms(200))
	got := s.particles()
	if len(got) != 5 {
		t.Fatalf("particles = %d, want 5", len(got))
	}
	for _, el := range got {
		if math.Abs(el.style.X-60) > 30 || math.Abs(el.style.Y-45) > 20 {
			t.Errorf("particle at (%f, %f), outside spread", el.style.X, el.style.Y)
		}
	}

	unbind()
	target.fire(EventClick, 0, 0, Rect{})
	tl.Advance(ms(200))
	if len(s.particles()) != 5 {
		t.Errorf("particles = %d after unbind, want 5", len(s.particles()))
	}
}

func TestBindBurstKeepsPropagation(t *testing.T) {
	m, _, _ := newTestManager(t)
	target := newFakeTarget()
	m.BindBurst(target, EventMouseOver, 3, BurstOptions{})
	target.fire(EventMouseOver, 5, 5, Rect{})
	if target.stopped != 0 {
		t.Errorf("stopped = %d, want 0", target.stopped)
	}
}

func TestPulseAnimation(t *testing.T) {
	anim, ok := PulseAnimation(time.Second, ms(400), 0.5)
	if !ok {
		t.Fatal("no pulse for 1s at 400ms period")
	}
	if anim.Iterations != 2 || !anim.Layered {
		t.Errorf("Iterations=%d Layered=%v, want 2 and true", anim.Iterations, anim.Layered)
	}
	peak, _ := anim.Sample(ms(200))
	assertNear(t, "peak Scale", peak.Scale, 1.5)
	assertNear(t, "peak Alpha", peak.Alpha, 0.75)

	if _, ok := PulseAnimation(ms(300), ms(400), 0.5); ok {
		t.Error("pulse built when no full cycle fits")
	}
}

func TestSpawnPulsing(t *testing.T) {
	m, s, _ := newTestManager(t, WithMaxConcurrent(1))
	h := m.SpawnPulsing(50, 50, PulseOptions{Duration: time.Second})
	if h == nil {
		t.Fatal("SpawnPulsing rejected")
	}
	el := h.Element().(*fakeElement)
	if len(el.anims) != 2 || !el.anims[1].Layered {
		t.Fatalf("anims = %d, want motion plus a layered pulse", len(el.anims))
	}
	if len(el.done) != 1 {
		t.Errorf("done callbacks = %d, want only the motion's", len(el.done))
	}

	if m.SpawnPulsing(50, 50, PulseOptions{}) != nil {
		t.Error("SpawnPulsing admitted past cap")
	}
	if len(s.created) != 1 {
		t.Errorf("created = %d, want 1", len(s.created))
	}
}

func TestSpawnPulsingShortLife(t *testing.T) {
	m, _, _ := newTestManager(t)
	h := m.SpawnPulsing(0, 0, PulseOptions{Duration: ms(300), Period: ms(400)})
	if n := len(h.Element().(*fakeElement).anims); n != 1 {
		t.Errorf("anims = %d, want no pulse layer", n)
	}
}

func TestTransitionTo(t *testing.T) {
	var went []string
	m, s, tl := newTestManager(t, WithNavigator(NavigatorFunc(func(dest string) {
		went = append(went, dest)
	})))
	m.TransitionTo("/next", 4, ms(500))

	var overlay *fakeElement
	for _, el := range s.created {
		if el.style.Kind == KindOverlay {
			overlay = el
		}
	}
	if overlay == nil || !overlay.attached {
		t.Fatal("overlay not inserted")
	}
	if overlay.style.Alpha != 0 || overlay.style.Width != s.viewport.Width {
		t.Errorf("overlay style = %+v", overlay.style)
	}

	tl.Advance(ms(10))
	if len(overlay.anims) != 1 {
		t.Fatalf("overlay anims = %d, want fade started", len(overlay.anims))
	}
	end, _ := overlay.anims[0].Sample(time.Second)
	assertNear(t, "overlay end Alpha", end.Alpha, overlayOpacity)

	tl.Advance(ms(489))
	if len(went) != 0 {
		t.Fatal("navigated early")
	}
	tl.Advance(ms(1))
	if len(went) != 1 || went[0] != "/next" {
		t.Errorf("navigations = %v, want [/next]", went)
	}
	if overlay.attached {
		t.Error("overlay still attached after navigation")
	}
	if n := len(s.particles()); n != 4 {
		t.Errorf("rain particles = %d, want 4", n)
	}
}

func TestTransitionWithoutNavigator(t *testing.T) {
	m, s, tl := newTestManager(t)
	m.TransitionTo("/x", 1, ms(100))
	tl.Advance(ms(100))
	if s.removes != 1 {
		t.Errorf("removes = %d, want overlay removed", s.removes)
	}
}
