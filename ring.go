package hearts

import (
	"math"
	"time"
)

// Ring defaults.
const (
	DefaultRingCount    = 8
	DefaultRingRadius   = 60.0
	DefaultRingInterval = 40 * time.Millisecond
)

// RingOptions shape a ring. Zero fields take the defaults.
type RingOptions struct {
	Radius   float64
	Size     float64
	Duration time.Duration
	Interval time.Duration
	Glyph    string
}

// RingPoints returns count points evenly spaced on a circle, starting at
// angle zero (to the right of the center) and turning clockwise in screen
// coordinates.
func RingPoints(cx, cy, radius float64, count int) []Vec2 {
	if count <= 0 {
		return nil
	}
	pts := make([]Vec2, count)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(count)
		pts[i] = Vec2{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return pts
}

// RingPlan builds one spawn per ring point, each Interval after the last.
func RingPlan(center Vec2, count int, opts RingOptions) SpawnPlan {
	if count <= 0 {
		count = DefaultRingCount
	}
	if !finite(opts.Radius) || opts.Radius <= 0 {
		opts.Radius = DefaultRingRadius
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultRingInterval
	}

	pts := RingPoints(center.X, center.Y, opts.Radius, count)
	plan := make(SpawnPlan, len(pts))
	for i := range pts {
		plan[i] = PlannedSpawn{
			Delay: step(i, opts.Interval),
			Params: Params{
				Pos:      &pts[i],
				Size:     opts.Size,
				Duration: opts.Duration,
				Glyph:    opts.Glyph,
			},
		}
	}
	return plan
}

// SpawnRing schedules a ring of particles around (x, y).
func (m *Manager) SpawnRing(x, y float64, count int, opts RingOptions) {
	m.Schedule(RingPlan(Vec2{x, y}, count, opts))
}
