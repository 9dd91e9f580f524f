package hearts

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Keyframe is one pose of an element. DX, DY and Rotation are added to the
// element's Style, Scale multiplies its size and Alpha replaces its opacity.
// In a layered animation Alpha is a factor on the primary pose instead.
type Keyframe struct {
	Offset   float64 // position within one iteration, 0..1
	DX, DY   float64
	Rotation float64 // degrees
	Scale    float64
	Alpha    float64
}

// Identity is the neutral pose: it moves nothing and is fully opaque.
var Identity = Keyframe{Scale: 1, Alpha: 1}

// Animation moves an element through keyframes.
type Animation struct {
	Keyframes []Keyframe
	// Duration of one iteration.
	Duration time.Duration
	// Iterations is the number of times the keyframes play; values below 1
	// play once.
	Iterations int
	// Easing shapes each segment between keyframes. Nil is linear.
	Easing ease.TweenFunc
	// Layered animations compose on top of an element's primary animation
	// instead of replacing it.
	Layered bool
}

// Total returns the full running time across all iterations.
func (a Animation) Total() time.Duration {
	return a.Duration * time.Duration(a.iterations())
}

func (a Animation) iterations() int {
	if a.Iterations < 1 {
		return 1
	}
	return a.Iterations
}

// Sample returns the pose at elapsed time and whether the animation has
// finished. A finished animation holds its last keyframe.
func (a Animation) Sample(elapsed time.Duration) (Keyframe, bool) {
	n := len(a.Keyframes)
	if n == 0 {
		return Identity, true
	}
	last := a.Keyframes[n-1]
	if a.Duration <= 0 || elapsed >= a.Total() {
		return last, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	cycle := float64(elapsed) / float64(a.Duration)
	p := cycle - math.Floor(cycle)
	return a.at(p), false
}

// at interpolates the keyframes at progress p in [0, 1).
func (a Animation) at(p float64) Keyframe {
	kf := a.Keyframes
	if p <= kf[0].Offset {
		return kf[0]
	}
	for i := 1; i < len(kf); i++ {
		from, to := kf[i-1], kf[i]
		if p > to.Offset {
			continue
		}
		span := to.Offset - from.Offset
		if span <= 0 {
			return to
		}
		t := a.ease((p - from.Offset) / span)
		return Keyframe{
			Offset:   p,
			DX:       lerp(from.DX, to.DX, t),
			DY:       lerp(from.DY, to.DY, t),
			Rotation: lerp(from.Rotation, to.Rotation, t),
			Scale:    lerp(from.Scale, to.Scale, t),
			Alpha:    lerp(from.Alpha, to.Alpha, t),
		}
	}
	return kf[len(kf)-1]
}

func (a Animation) ease(t float64) float64 {
	if a.Easing == nil {
		return t
	}
	return float64(a.Easing(float32(t), 0, 1, 1))
}

// Compose layers k on top of base.
func Compose(base, k Keyframe) Keyframe {
	return Keyframe{
		Offset:   base.Offset,
		DX:       base.DX + k.DX,
		DY:       base.DY + k.DY,
		Rotation: base.Rotation + k.Rotation,
		Scale:    base.Scale * k.Scale,
		Alpha:    base.Alpha * k.Alpha,
	}
}

// Apply returns the style as posed by k.
func (k Keyframe) Apply(s Style) Style {
	s.X += k.DX
	s.Y += k.DY
	s.Rotation += k.Rotation
	s.Width *= k.Scale
	s.Height *= k.Scale
	s.Alpha = k.Alpha
	return s
}
