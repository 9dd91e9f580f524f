package hearts

import "time"

// DefaultBurstCount is the number of particles per burst when none is given.
const DefaultBurstCount = 5

// BurstOptions shape an event-triggered burst. Zero fields take the defaults.
type BurstOptions struct {
	// SpreadX and SpreadY bound the random offset from the trigger center;
	// offsets fall within ±Spread/2.
	SpreadX, SpreadY float64
	Interval         time.Duration
	Size             float64
	Glyph            string
	// StopPropagation keeps the triggering event from reaching outer
	// listeners.
	StopPropagation bool
}

func (o BurstOptions) withDefaults() BurstOptions {
	if !finite(o.SpreadX) || o.SpreadX < 0 {
		o.SpreadX = 0
	}
	if !finite(o.SpreadY) || o.SpreadY < 0 {
		o.SpreadY = 0
	}
	if o.SpreadX == 0 && o.SpreadY == 0 {
		o.SpreadX, o.SpreadY = 60, 40
	}
	if o.Interval <= 0 {
		o.Interval = 30 * time.Millisecond
	}
	return o
}

// BurstCenter returns where a burst for ev is centered: the middle of the
// trigger's bounds, or the pointer when the trigger has no geometry.
func BurstCenter(ev Event) Vec2 {
	if ev.Bounds.Empty() {
		return Vec2{ev.X, ev.Y}
	}
	return ev.Bounds.Center()
}

// BurstPlan builds a burst of count particles around center.
func BurstPlan(center Vec2, count int, opts BurstOptions, r *Resolver) SpawnPlan {
	if count <= 0 {
		count = DefaultBurstCount
	}
	opts = opts.withDefaults()

	plan := make(SpawnPlan, 0, count)
	for i := 0; i < count; i++ {
		pos := Vec2{
			X: center.X + (r.Float64()-0.5)*opts.SpreadX,
			Y: center.Y + (r.Float64()-0.5)*opts.SpreadY,
		}
		plan = append(plan, PlannedSpawn{
			Delay:  step(i, opts.Interval),
			Params: Params{Pos: &pos, Size: opts.Size, Glyph: opts.Glyph},
		})
	}
	return plan
}

// BindBurst spawns a burst every time event fires on target. An empty event
// name binds to EventClick. The returned func detaches the listener.
func (m *Manager) BindBurst(target EventTarget, event string, count int, opts BurstOptions) (unbind func()) {
	if event == "" {
		event = EventClick
	}
	return target.On(event, func(ev Event) {
		if opts.StopPropagation {
			ev.StopPropagation()
		}
		m.Schedule(BurstPlan(BurstCenter(ev), count, opts, m.resolver))
	})
}
