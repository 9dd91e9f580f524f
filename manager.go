package hearts

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// FallbackGrace is how long past a particle's duration the fallback timer
// waits before retiring it. Completion notifications are not reliable on
// every surface, so the timer is always armed.
const FallbackGrace = 100 * time.Millisecond

// Manager creates particles on a Surface and retires each exactly once,
// holding one Limiter slot per live particle.
type Manager struct {
	surface  Surface
	sched    Scheduler
	limiter  *Limiter
	env      Environment
	resolver *Resolver
	nav      Navigator

	mu     sync.Mutex
	active map[*Handle]struct{}
	gen    uint64

	debug  bool
	logOut io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxConcurrent sets the particle cap. Non-positive values are ignored.
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) { m.limiter.SetLimit(n) }
}

// WithLimiter shares an existing limiter, so several managers draw from one
// cap.
func WithLimiter(l *Limiter) Option {
	return func(m *Manager) {
		if l != nil {
			m.limiter = l
		}
	}
}

// WithEnvironment sets the host classification. The default is
// DetectEnvironment().
func WithEnvironment(env Environment) Option {
	return func(m *Manager) { m.env = env }
}

// WithResolver replaces the parameter resolver, typically with a seeded one.
func WithResolver(r *Resolver) Option {
	return func(m *Manager) {
		if r != nil {
			m.resolver = r
		}
	}
}

// WithNavigator sets the navigation action used by TransitionTo.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

// WithLogOutput redirects debug output. The default is stderr.
func WithLogOutput(w io.Writer) Option {
	return func(m *Manager) {
		if w != nil {
			m.logOut = w
		}
	}
}

// WithDebug enables debug logging.
func WithDebug(enabled bool) Option {
	return func(m *Manager) { m.debug = enabled }
}

// New creates a Manager drawing on surface and scheduling on sched. Both are
// required; New panics if either is nil.
func New(surface Surface, sched Scheduler, opts ...Option) *Manager {
	if surface == nil {
		panic("hearts: nil surface")
	}
	if sched == nil {
		panic("hearts: nil scheduler")
	}
	m := &Manager{
		surface:  surface,
		sched:    sched,
		limiter:  NewLimiter(DefaultMaxConcurrent),
		env:      DetectEnvironment(),
		resolver: NewRandomResolver(DefaultCosmetics()),
		active:   make(map[*Handle]struct{}),
		logOut:   os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetMaxConcurrent replaces the cap. Values that are not positive are
// silently ignored.
func (m *Manager) SetMaxConcurrent(n int) {
	m.limiter.SetLimit(n)
}

// MaxConcurrent returns the current cap.
func (m *Manager) MaxConcurrent() int {
	return m.limiter.Limit()
}

// Active returns the number of live particles.
func (m *Manager) Active() int {
	return m.limiter.Active()
}

// Environment returns the host classification in use.
func (m *Manager) Environment() Environment {
	return m.env
}

// Scheduler returns the scheduler the manager defers work on.
func (m *Manager) Scheduler() Scheduler {
	return m.sched
}

// SetDebugMode enables or disables debug logging of rejections and
// retirements.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// SpawnOne creates a single particle. It returns nil when the cap is
// reached; in that case nothing is created and nothing is scheduled.
func (m *Manager) SpawnOne(p Params) *Handle {
	if !m.limiter.TryAdmit() {
		m.logf("spawn rejected: %d/%d active", m.limiter.Active(), m.limiter.Limit())
		return nil
	}

	part := m.resolver.Resolve(p, m.env, m.surface.Viewport())
	el := m.surface.Create(part.Style())
	h := &Handle{m: m, el: el, particle: part}
	m.track(h)

	m.surface.Insert(el)
	m.surface.Animate(el, part.Motion(), func() { h.retire(retiredByAnimation) })
	m.sched.After(part.Duration+FallbackGrace, func() { h.retire(retiredByTimeout) })
	return h
}

// DestroyAll retires every live particle and drops spawns still pending from
// batches scheduled before the call. It returns the number of particles
// retired.
func (m *Manager) DestroyAll() int {
	m.mu.Lock()
	m.gen++
	live := make([]*Handle, 0, len(m.active))
	for h := range m.active {
		live = append(live, h)
	}
	m.mu.Unlock()

	n := 0
	for _, h := range live {
		if h.retire(retiredByDestroy) {
			n++
		}
	}
	m.logf("destroy all: %d retired", n)
	return n
}

func (m *Manager) track(h *Handle) {
	m.mu.Lock()
	m.active[h] = struct{}{}
	m.mu.Unlock()
}

func (m *Manager) untrack(h *Handle) {
	m.mu.Lock()
	delete(m.active, h)
	m.mu.Unlock()
}

func (m *Manager) generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// logf prints a debug line. No-op unless debug mode is on.
func (m *Manager) logf(format string, args ...any) {
	if !m.debug {
		return
	}
	_, _ = fmt.Fprintf(m.logOut, "[hearts] "+format+"\n", args...)
}

// retireCause names what ended a particle, for debug output.
type retireCause uint8

const (
	retiredByAnimation retireCause = iota
	retiredByTimeout
	retiredByDestroy
	retiredByCaller
)

func (c retireCause) String() string {
	switch c {
	case retiredByAnimation:
		return "animation"
	case retiredByTimeout:
		return "timeout"
	case retiredByDestroy:
		return "destroy"
	default:
		return "caller"
	}
}

// Handle refers to one admitted particle.
type Handle struct {
	m        *Manager
	el       Element
	particle Particle
	retired  atomic.Bool
}

// Particle returns the resolved parameters the particle was created with.
func (h *Handle) Particle() Particle {
	return h.particle
}

// Element returns the surface element backing the particle.
func (h *Handle) Element() Element {
	return h.el
}

// Retired reports whether the particle has been cleaned up.
func (h *Handle) Retired() bool {
	return h.retired.Load()
}

// Retire cleans the particle up now. Later triggers become no-ops. It reports
// whether this call did the cleanup.
func (h *Handle) Retire() bool {
	return h.retire(retiredByCaller)
}

// retire is shared by every trigger; only the first caller gets past the
// guard.
func (h *Handle) retire(cause retireCause) bool {
	if !h.retired.CompareAndSwap(false, true) {
		return false
	}
	s := h.m.surface
	if s.Attached(h.el) {
		s.Remove(h.el)
	}
	h.m.untrack(h)
	h.m.limiter.Release()
	h.m.logf("retired by %s: %d/%d active", cause, h.m.limiter.Active(), h.m.limiter.Limit())
	return true
}
