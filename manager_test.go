package hearts

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewPanicsOnNilDeps(t *testing.T) {
	for name, fn := range map[string]func(){
		"surface":   func() { New(nil, NewTimeline()) },
		"scheduler": func() { New(newFakeSurface(), nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestSpawnOneCapOfOne(t *testing.T) {
	m, s, tl := newTestManager(t, WithMaxConcurrent(1))

	first := m.SpawnOne(Params{})
	if first == nil {
		t.Fatal("first spawn rejected")
	}
	if second := m.SpawnOne(Params{}); second != nil {
		t.Fatal("second spawn admitted past cap")
	}

	tl.Advance(first.Particle().Duration + FallbackGrace)
	if !first.Retired() {
		t.Fatal("first particle not retired after its duration")
	}
	if third := m.SpawnOne(Params{}); third == nil {
		t.Error("third spawn rejected after slot freed")
	}
	if len(s.created) != 2 {
		t.Errorf("created = %d, want 2", len(s.created))
	}
}

func TestSpawnOneRejectionHasNoSideEffects(t *testing.T) {
	m, s, tl := newTestManager(t, WithMaxConcurrent(1))
	m.SpawnOne(Params{})
	pending := tl.Pending()

	if m.SpawnOne(Params{}) != nil {
		t.Fatal("spawn admitted past cap")
	}
	if len(s.created) != 1 || s.inserts != 1 {
		t.Errorf("created=%d inserts=%d, want 1 and 1", len(s.created), s.inserts)
	}
	if tl.Pending() != pending {
		t.Errorf("Pending = %d, want %d", tl.Pending(), pending)
	}
}

func TestSpawnOneCreatesInsertsAnimates(t *testing.T) {
	m, s, tl := newTestManager(t)
	h := m.SpawnOne(Params{Pos: &Vec2{5, 6}})
	el := h.Element().(*fakeElement)

	if !el.attached {
		t.Error("element not inserted")
	}
	if len(el.anims) != 1 || len(el.done) != 1 {
		t.Fatalf("anims=%d done=%d, want 1 and 1", len(el.anims), len(el.done))
	}
	if el.style.X != 5 || el.style.Y != 6 || el.style.Kind != KindParticle {
		t.Errorf("style = %+v", el.style)
	}
	if tl.Pending() != 1 {
		t.Errorf("Pending = %d, want the fallback timer", tl.Pending())
	}
	if m.Active() != 1 || len(s.created) != 1 {
		t.Errorf("Active=%d created=%d", m.Active(), len(s.created))
	}
}

func TestRetireExactlyOnce(t *testing.T) {
	tests := []struct {
		name  string
		first string
	}{
		{"animation then timer", "animation"},
		{"timer then animation", "timer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s, tl := newTestManager(t, WithMaxConcurrent(2))
			h := m.SpawnOne(Params{})
			el := h.Element().(*fakeElement)
			wait := h.Particle().Duration + FallbackGrace

			if tt.first == "animation" {
				s.complete(el)
				tl.Advance(wait)
			} else {
				tl.Advance(wait)
				s.complete(el)
			}

			if s.removes != 1 || s.badRemoves != 0 {
				t.Errorf("removes=%d badRemoves=%d, want 1 and 0", s.removes, s.badRemoves)
			}
			if m.Active() != 0 {
				t.Errorf("Active = %d, want 0", m.Active())
			}
			// A double release would leave room for three.
			for i := 0; i < 3; i++ {
				m.SpawnOne(Params{})
			}
			if m.Active() != 2 {
				t.Errorf("Active = %d after refill, want 2", m.Active())
			}
		})
	}
}

func TestRetireWithoutNotification(t *testing.T) {
	m, s, tl := newTestManager(t)
	s.dropNotices = true
	h := m.SpawnOne(Params{})

	tl.Advance(h.Particle().Duration)
	if h.Retired() {
		t.Fatal("retired before grace elapsed")
	}
	tl.Advance(FallbackGrace)
	if !h.Retired() || m.Active() != 0 {
		t.Error("fallback timer did not retire the particle")
	}
}

func TestRetireAfterExternalRemoval(t *testing.T) {
	m, s, _ := newTestManager(t)
	h := m.SpawnOne(Params{})
	el := h.Element().(*fakeElement)

	s.Remove(el)
	s.complete(el)

	if s.badRemoves != 0 {
		t.Errorf("badRemoves = %d, want 0", s.badRemoves)
	}
	if s.removes != 1 {
		t.Errorf("removes = %d, want only the external one", s.removes)
	}
	if m.Active() != 0 {
		t.Errorf("Active = %d, want slot released", m.Active())
	}
}

func TestHandleRetire(t *testing.T) {
	m, s, tl := newTestManager(t)
	h := m.SpawnOne(Params{})

	if !h.Retire() {
		t.Fatal("first Retire reported false")
	}
	if h.Retire() {
		t.Error("second Retire reported true")
	}
	s.completeAll()
	tl.Advance(h.Particle().Duration + FallbackGrace)
	if s.removes != 1 || m.Active() != 0 {
		t.Errorf("removes=%d Active=%d, want 1 and 0", s.removes, m.Active())
	}
}

func TestDestroyAll(t *testing.T) {
	m, s, tl := newTestManager(t)
	for i := 0; i < 4; i++ {
		m.SpawnOne(Params{})
	}
	if n := m.DestroyAll(); n != 4 {
		t.Errorf("DestroyAll = %d, want 4", n)
	}
	if m.Active() != 0 || s.removes != 4 {
		t.Errorf("Active=%d removes=%d", m.Active(), s.removes)
	}
	s.completeAll()
	tl.Advance(DefaultDuration * 2)
	if s.removes != 4 || m.Active() != 0 {
		t.Errorf("late triggers acted: removes=%d Active=%d", s.removes, m.Active())
	}
}

func TestSetMaxConcurrentIgnoresNonPositive(t *testing.T) {
	m, _, _ := newTestManager(t, WithMaxConcurrent(7))
	m.SetMaxConcurrent(0)
	if m.MaxConcurrent() != 7 {
		t.Errorf("MaxConcurrent = %d after 0, want 7", m.MaxConcurrent())
	}
	m.SetMaxConcurrent(-5)
	if m.MaxConcurrent() != 7 {
		t.Errorf("MaxConcurrent = %d after -5, want 7", m.MaxConcurrent())
	}
	m.SetMaxHearts(12)
	if m.MaxConcurrent() != 12 {
		t.Errorf("MaxConcurrent = %d, want 12", m.MaxConcurrent())
	}
}

func TestSharedLimiter(t *testing.T) {
	l := NewLimiter(2)
	a, _, _ := newTestManager(t, WithLimiter(l))
	b, _, _ := newTestManager(t, WithLimiter(l))
	a.SpawnOne(Params{})
	b.SpawnOne(Params{})
	if a.SpawnOne(Params{}) != nil || b.SpawnOne(Params{}) != nil {
		t.Error("shared cap exceeded")
	}
}

func TestCapNeverExceeded(t *testing.T) {
	m, s, tl := newTestManager(t, WithMaxConcurrent(5))
	m.SpawnRain(40, ms(10), RainOptions{DurationMin: ms(100), DurationMax: ms(300)})
	for i := 0; i < 100; i++ {
		tl.Advance(ms(7))
		if i%3 == 0 {
			s.completeAll()
		}
		if m.Active() > 5 {
			t.Fatalf("Active = %d, exceeds cap", m.Active())
		}
	}
	if m.Active() != 0 {
		t.Errorf("Active = %d at the end, want 0", m.Active())
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	m, s, _ := newTestManager(t, WithMaxConcurrent(1), WithLogOutput(&buf))

	m.SpawnOne(Params{})
	m.SpawnOne(Params{})
	if buf.Len() != 0 {
		t.Fatalf("logged with debug off: %q", buf.String())
	}

	m.SetDebugMode(true)
	m.SpawnOne(Params{})
	s.completeAll()

	out := buf.String()
	if !strings.Contains(out, "[hearts] spawn rejected: 1/1 active") {
		t.Errorf("missing rejection line in %q", out)
	}
	if !strings.Contains(out, "[hearts] retired by animation: 0/1 active") {
		t.Errorf("missing retirement line in %q", out)
	}
}

func TestCreateHeartCompat(t *testing.T) {
	m, s, tl := newTestManager(t)
	h := m.CreateHeart(30, 40)
	if h == nil || h.Particle().X != 30 || h.Particle().Y != 40 {
		t.Fatalf("CreateHeart = %+v", h)
	}
	m.HeartRain(3)
	tl.Advance(ms(100))
	if len(s.particles()) != 4 {
		t.Errorf("particles = %d, want 4", len(s.particles()))
	}
}
