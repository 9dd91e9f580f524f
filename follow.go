package hearts

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Follow defaults.
const (
	DefaultFollowChance      = 0.03
	DefaultFollowMinInterval = 100 * time.Millisecond
)

// followEpoch anchors scheduler time for the rate limiter, which measures
// elapsed time between wall-clock instants.
var followEpoch = time.Unix(0, 0)

// FollowOptions shape pointer-follow emission. Zero fields take the defaults.
type FollowOptions struct {
	// Chance is the probability that a movement sample emits, in (0, 1].
	Chance float64
	// MinInterval is the cooldown between emissions.
	MinInterval      time.Duration
	SizeMin, SizeMax float64
	Glyph            string
}

func (o FollowOptions) withDefaults() FollowOptions {
	if !finite(o.Chance) || o.Chance <= 0 {
		o.Chance = DefaultFollowChance
	}
	o.Chance = math.Min(o.Chance, 1)
	if o.MinInterval <= 0 {
		o.MinInterval = DefaultFollowMinInterval
	}
	if !finite(o.SizeMin) || o.SizeMin <= 0 {
		o.SizeMin = 12
	}
	if !finite(o.SizeMax) || o.SizeMax <= 0 {
		o.SizeMax = 24
	}
	return o
}

// Follower emits particles at the pointer as it moves. A sample emits only
// when it wins the Chance roll and the cooldown since the last emission has
// elapsed.
type Follower struct {
	m        *Manager
	opts     FollowOptions
	cooldown *rate.Limiter

	mu  sync.Mutex
	off func()
}

// NewFollower creates an unbound follower. Feed it with Sample.
func (m *Manager) NewFollower(opts FollowOptions) *Follower {
	opts = opts.withDefaults()
	return &Follower{
		m:        m,
		opts:     opts,
		cooldown: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
	}
}

// BindMouseFollow creates a follower fed by EventMouseMove on source.
func (m *Manager) BindMouseFollow(source EventTarget, opts FollowOptions) *Follower {
	f := m.NewFollower(opts)
	f.off = source.On(EventMouseMove, func(ev Event) {
		f.Sample(ev.X, ev.Y)
	})
	return f
}

// Sample offers one pointer position. It returns the spawned particle, or nil
// when either gate held it back or the cap was reached.
func (f *Follower) Sample(x, y float64) *Handle {
	if f.m.resolver.Float64() >= f.opts.Chance {
		return nil
	}
	if !f.cooldown.AllowN(followEpoch.Add(f.m.sched.Now()), 1) {
		return nil
	}
	return f.m.SpawnOne(Params{
		Pos:   &Vec2{x, y},
		Size:  f.m.resolver.Sample(Range{f.opts.SizeMin, f.opts.SizeMax}),
		Glyph: f.opts.Glyph,
	})
}

// Unbind detaches the follower from its event source. Safe to call more
// than once.
func (f *Follower) Unbind() {
	f.mu.Lock()
	off := f.off
	f.off = nil
	f.mu.Unlock()
	if off != nil {
		off()
	}
}
