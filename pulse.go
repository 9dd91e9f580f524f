package hearts

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Pulse defaults.
const (
	DefaultPulsePeriod    = 400 * time.Millisecond
	DefaultPulseAmplitude = 0.25
)

// PulseOptions shape a pulsing particle. Zero fields take the defaults.
type PulseOptions struct {
	Size     float64
	Duration time.Duration
	// Period is the length of one grow-and-shrink cycle.
	Period time.Duration
	// Amplitude is the peak scale gain and opacity dip, in (0, 1].
	Amplitude float64
	Glyph     string
}

// PulseAnimation returns the layered oscillation for a particle living
// total. It plays floor(total/period) full cycles; ok is false when not even
// one fits.
func PulseAnimation(total, period time.Duration, amplitude float64) (anim Animation, ok bool) {
	if period <= 0 {
		period = DefaultPulsePeriod
	}
	if !finite(amplitude) || amplitude <= 0 {
		amplitude = DefaultPulseAmplitude
	}
	amplitude = clamp(amplitude, 0, 1)

	cycles := int(total / period)
	if cycles < 1 {
		return Animation{}, false
	}
	return Animation{
		Keyframes: []Keyframe{
			{Offset: 0, Scale: 1, Alpha: 1},
			{Offset: 0.5, Scale: 1 + amplitude, Alpha: 1 - amplitude/2},
			{Offset: 1, Scale: 1, Alpha: 1},
		},
		Duration:   period,
		Iterations: cycles,
		Easing:     ease.InOutSine,
		Layered:    true,
	}, true
}

// SpawnPulsing spawns one particle at (x, y) with a pulse layered over its
// drift. It returns nil, and adds no pulse, when the cap is reached.
func (m *Manager) SpawnPulsing(x, y float64, opts PulseOptions) *Handle {
	h := m.SpawnOne(Params{
		Pos:      &Vec2{x, y},
		Size:     opts.Size,
		Duration: opts.Duration,
		Glyph:    opts.Glyph,
	})
	if h == nil {
		return nil
	}
	if anim, ok := PulseAnimation(h.particle.Duration, opts.Period, opts.Amplitude); ok {
		m.surface.Animate(h.el, anim, nil)
	}
	return h
}
