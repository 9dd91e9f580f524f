package hearts

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
)

// Defaults used when a spawn leaves a parameter unset.
const (
	DefaultSize     = 20.0
	DefaultDuration = 2000 * time.Millisecond

	maxSize     = 512.0
	minDuration = 50 * time.Millisecond

	// fallbackViewportHeight is the rise basis for surfaces that report no
	// height yet (e.g. before the first layout).
	fallbackViewportHeight = 600.0
)

// Params describes a particle to spawn. Zero fields are resolved by a
// Resolver.
type Params struct {
	// Pos is the spawn point. Nil places the particle at a random x along
	// the bottom edge of the viewport.
	Pos      *Vec2
	Size     float64
	Duration time.Duration
	Glyph    string
	// Color overrides the hue-derived color when its alpha is non-zero.
	Color Color
}

// Particle holds fully resolved per-particle parameters.
type Particle struct {
	X, Y     float64
	Size     float64
	Duration time.Duration
	Glyph    string
	Color    Color
	Rotation float64 // initial, degrees
	Spin     float64 // rotation added over the lifetime, degrees
	Opacity  float64 // initial opacity in [0.7, 1]
	Drift    float64 // horizontal travel, pixels
	Rise     float64 // vertical travel, pixels (upward)
}

// Style returns the element style a Surface should create for p.
func (p Particle) Style() Style {
	return Style{
		Kind:     KindParticle,
		X:        p.X,
		Y:        p.Y,
		Width:    p.Size,
		Height:   p.Size,
		Glyph:    p.Glyph,
		Color:    p.Color,
		Rotation: p.Rotation,
		Alpha:    p.Opacity,
	}
}

// Motion returns the drift-and-fade animation for p.
func (p Particle) Motion() Animation {
	return Animation{
		Keyframes: []Keyframe{
			{Offset: 0, Scale: 1, Alpha: p.Opacity},
			{Offset: 1, DX: p.Drift, DY: -p.Rise, Rotation: p.Spin, Scale: 1, Alpha: 0},
		},
		Duration: p.Duration,
		Easing:   ease.OutSine,
	}
}

// Cosmetics are the randomization ranges used to fill in unset parameters.
type Cosmetics struct {
	Size     float64
	Duration time.Duration
	Glyphs   []string
	// Hue in degrees; values wrap around 360.
	Hue        Range
	Saturation float64
	Lightness  float64
	Rotation   Range // degrees
	Spin       Range // degrees
	Drift      Range // pixels
	// Rise is the vertical travel as a fraction of the viewport height.
	Rise Range
}

// DefaultCosmetics returns the stock pink-to-red heart look.
func DefaultCosmetics() Cosmetics {
	return Cosmetics{
		Size:       DefaultSize,
		Duration:   DefaultDuration,
		Glyphs:     []string{"❤", "💖", "💕", "💗", "💓"},
		Hue:        Range{330, 370},
		Saturation: 0.85,
		Lightness:  0.65,
		Rotation:   Range{-30, 30},
		Spin:       Range{-45, 45},
		Drift:      Range{-100, 100},
		Rise:       Range{0.6, 1.0},
	}
}

// normalize fills invalid fields from the defaults.
func (c Cosmetics) normalize() Cosmetics {
	d := DefaultCosmetics()
	if !finite(c.Size) || c.Size <= 0 {
		c.Size = d.Size
	}
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if len(c.Glyphs) == 0 {
		c.Glyphs = d.Glyphs
	}
	if !c.Hue.valid() {
		c.Hue = d.Hue
	}
	if !finite(c.Saturation) || c.Saturation <= 0 {
		c.Saturation = d.Saturation
	}
	if !finite(c.Lightness) || c.Lightness <= 0 {
		c.Lightness = d.Lightness
	}
	c.Saturation = clamp(c.Saturation, 0, 1)
	c.Lightness = clamp(c.Lightness, 0, 1)
	if !c.Rotation.valid() {
		c.Rotation = d.Rotation
	}
	if !c.Spin.valid() {
		c.Spin = d.Spin
	}
	if !c.Drift.valid() {
		c.Drift = d.Drift
	}
	if !c.Rise.valid() || c.Rise.Max <= 0 {
		c.Rise = d.Rise
	}
	return c
}

// Resolver turns Params into Particles. It is the only place randomness
// enters the system; seeding it makes every spawn reproducible.
type Resolver struct {
	mu  sync.Mutex
	rng *rand.Rand
	c   Cosmetics
}

// NewResolver creates a resolver with a fixed seed.
func NewResolver(seed uint64, c Cosmetics) *Resolver {
	return &Resolver{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		c:   c.normalize(),
	}
}

// NewRandomResolver creates a resolver seeded from the runtime's entropy.
func NewRandomResolver(c Cosmetics) *Resolver {
	return NewResolver(rand.Uint64(), c)
}

// Cosmetics returns the normalized ranges in use.
func (r *Resolver) Cosmetics() Cosmetics {
	return r.c
}

// Float64 returns a value in [0, 1).
func (r *Resolver) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Sample returns a value drawn from rg.
func (r *Resolver) Sample(rg Range) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rg.Sample(r.rng)
}

// Resolve fills every unset or malformed field of p.
func (r *Resolver) Resolve(p Params, env Environment, viewport Rect) Particle {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.c

	out := Particle{
		Size:     p.Size,
		Duration: p.Duration,
		Glyph:    p.Glyph,
		Color:    p.Color,
	}
	if !finite(out.Size) || out.Size <= 0 {
		out.Size = c.Size
	}
	out.Size = math.Min(out.Size, maxSize)
	if out.Duration <= 0 {
		out.Duration = c.Duration
	}
	if out.Duration < minDuration {
		out.Duration = minDuration
	}
	if out.Glyph == "" {
		out.Glyph = c.Glyphs[r.rng.IntN(len(c.Glyphs))]
	}

	if p.Pos != nil && finite(p.Pos.X) && finite(p.Pos.Y) {
		out.X, out.Y = p.Pos.X, p.Pos.Y
	} else {
		out.X = viewport.X + r.rng.Float64()*viewport.Width
		out.Y = viewport.Y + viewport.Height
	}

	hue := math.Mod(c.Hue.Sample(r.rng), 360)
	if hue < 0 {
		hue += 360
	}
	if out.Color.A <= 0 {
		hc := colorful.Hsl(hue, c.Saturation, c.Lightness).Clamped()
		out.Color = Color{R: hc.R, G: hc.G, B: hc.B, A: 1}
	}

	out.Rotation = c.Rotation.Sample(r.rng)
	out.Spin = c.Spin.Sample(r.rng)
	out.Drift = c.Drift.Sample(r.rng)
	out.Opacity = math.Min(1, math.Max(0.7, r.rng.Float64()*0.3+0.7))

	height := viewport.Height
	if height <= 0 {
		height = fallbackViewportHeight
	}
	out.Rise = c.Rise.Sample(r.rng) * height

	if env.Constrained {
		out.Rise *= constrainedRiseScale
		out.Duration = time.Duration(float64(out.Duration) * constrainedDurationScale)
	}
	return out
}
