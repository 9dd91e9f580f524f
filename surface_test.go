package hearts

import (
	"math"
	"testing"
	"time"
)

// fakeElement records what the manager did to one element.
type fakeElement struct {
	id       int
	style    Style
	attached bool
	anims    []Animation
	done     []func()
}

// fakeSurface is a recording Surface. Animations never complete on their
// own; tests call complete to deliver the notification.
type fakeSurface struct {
	viewport    Rect
	created     []*fakeElement
	inserts     int
	removes     int
	badRemoves  int
	dropNotices bool // swallow done callbacks, like hosts that never notify
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{viewport: Rect{Width: 800, Height: 600}}
}

func (s *fakeSurface) Create(style Style) Element {
	el := &fakeElement{id: len(s.created), style: style}
	s.created = append(s.created, el)
	return el
}

func (s *fakeSurface) Insert(el Element) {
	el.(*fakeElement).attached = true
	s.inserts++
}

func (s *fakeSurface) Remove(el Element) {
	fe := el.(*fakeElement)
	if !fe.attached {
		s.badRemoves++
	}
	fe.attached = false
	s.removes++
}

func (s *fakeSurface) Attached(el Element) bool {
	return el.(*fakeElement).attached
}

func (s *fakeSurface) Animate(el Element, anim Animation, done func()) {
	fe := el.(*fakeElement)
	fe.anims = append(fe.anims, anim)
	if done != nil && !s.dropNotices {
		fe.done = append(fe.done, done)
	}
}

func (s *fakeSurface) Viewport() Rect { return s.viewport }

// complete delivers every pending completion notification of el.
func (s *fakeSurface) complete(el *fakeElement) {
	done := el.done
	el.done = nil
	for _, fn := range done {
		fn()
	}
}

func (s *fakeSurface) completeAll() {
	for _, el := range s.created {
		s.complete(el)
	}
}

func (s *fakeSurface) particles() []*fakeElement {
	var out []*fakeElement
	for _, el := range s.created {
		if el.style.Kind == KindParticle {
			out = append(out, el)
		}
	}
	return out
}

// fakeTarget is an EventTarget fired by hand.
type fakeTarget struct {
	handlers map[string][]*func(Event)
	stopped  int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{handlers: make(map[string][]*func(Event))}
}

func (t *fakeTarget) On(event string, fn func(Event)) func() {
	p := &fn
	t.handlers[event] = append(t.handlers[event], p)
	return func() {
		hs := t.handlers[event]
		for i, h := range hs {
			if h == p {
				t.handlers[event] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

func (t *fakeTarget) fire(event string, x, y float64, bounds Rect) {
	ev := NewEvent(event, x, y, bounds, func() { t.stopped++ })
	for _, h := range t.handlers[event] {
		(*h)(ev)
	}
}

// newTestManager builds a manager on a fake surface with a fixed seed and an
// unconstrained environment.
func newTestManager(t *testing.T, opts ...Option) (*Manager, *fakeSurface, *Timeline) {
	t.Helper()
	s := newFakeSurface()
	tl := NewTimeline()
	base := []Option{
		WithEnvironment(Environment{}),
		WithResolver(NewResolver(42, DefaultCosmetics())),
	}
	return New(s, tl, append(base, opts...)...), s, tl
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
