package hearts

import "time"

// Rain defaults.
const (
	DefaultRainCount    = 30
	DefaultRainInterval = 50 * time.Millisecond
)

// RainOptions shape a rain batch. Zero fields take the defaults.
type RainOptions struct {
	SizeMin, SizeMax         float64
	DurationMin, DurationMax time.Duration
	Glyph                    string
}

func (o RainOptions) withDefaults() RainOptions {
	if !finite(o.SizeMin) || o.SizeMin <= 0 {
		o.SizeMin = 15
	}
	if !finite(o.SizeMax) || o.SizeMax <= 0 {
		o.SizeMax = 35
	}
	if o.DurationMin <= 0 {
		o.DurationMin = 2 * time.Second
	}
	if o.DurationMax <= 0 {
		o.DurationMax = 4 * time.Second
	}
	return o
}

// RainPlan builds a rain batch: count particles rising from random points on
// the bottom edge, one every interval. Constrained hosts get 40% fewer.
func RainPlan(count int, interval time.Duration, opts RainOptions, env Environment, r *Resolver) SpawnPlan {
	if count <= 0 {
		count = DefaultRainCount
	}
	if interval <= 0 {
		interval = DefaultRainInterval
	}
	opts = opts.withDefaults()
	n := env.rainCount(count)

	plan := make(SpawnPlan, 0, n)
	for i := 0; i < n; i++ {
		d := r.Sample(Range{float64(opts.DurationMin), float64(opts.DurationMax)})
		plan = append(plan, PlannedSpawn{
			Delay: step(i, interval),
			Params: Params{
				Size:     r.Sample(Range{opts.SizeMin, opts.SizeMax}),
				Duration: time.Duration(d),
				Glyph:    opts.Glyph,
			},
		})
	}
	return plan
}

// SpawnRain schedules a rain batch. A count or interval of zero uses the
// defaults (30 particles, 50ms apart).
func (m *Manager) SpawnRain(count int, interval time.Duration, opts RainOptions) {
	m.Schedule(RainPlan(count, interval, opts, m.env, m.resolver))
}
