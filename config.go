package hearts

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a Manager's settings. Durations are Go duration
// strings ("50ms", "1.5s"). Zero values mean "use the default".
//
// Example:
//
//	maxConcurrent: 40
//	particle:
//	  glyphs: ["❤", "💖"]
//	  hue: {min: 320, max: 360}
//	rain:
//	  count: 30
//	  interval: 50ms
//	follow:
//	  enabled: true
//	  chance: 0.05
type Config struct {
	MaxConcurrent int `yaml:"maxConcurrent"`
	// Constrained overrides environment detection when set.
	Constrained *bool `yaml:"constrained"`
	Debug       bool  `yaml:"debug"`
	// Seed makes randomization reproducible. Zero seeds from entropy.
	Seed uint64 `yaml:"seed"`

	Particle   ParticleConfig   `yaml:"particle"`
	Rain       RainConfig       `yaml:"rain"`
	Burst      BurstConfig      `yaml:"burst"`
	Follow     FollowConfig     `yaml:"follow"`
	Ring       RingConfig       `yaml:"ring"`
	Pulse      PulseConfig      `yaml:"pulse"`
	Transition TransitionConfig `yaml:"transition"`
}

// ParticleConfig holds the cosmetic ranges.
type ParticleConfig struct {
	Size       float64       `yaml:"size"`
	Duration   time.Duration `yaml:"duration"`
	Glyphs     []string      `yaml:"glyphs"`
	Hue        Range         `yaml:"hue"`
	Saturation float64       `yaml:"saturation"`
	Lightness  float64       `yaml:"lightness"`
	Rotation   Range         `yaml:"rotation"`
	Spin       Range         `yaml:"spin"`
	Drift      Range         `yaml:"drift"`
	Rise       Range         `yaml:"rise"`
}

// RainConfig holds rain settings.
type RainConfig struct {
	Count       int           `yaml:"count"`
	Interval    time.Duration `yaml:"interval"`
	SizeMin     float64       `yaml:"sizeMin"`
	SizeMax     float64       `yaml:"sizeMax"`
	DurationMin time.Duration `yaml:"durationMin"`
	DurationMax time.Duration `yaml:"durationMax"`
	Glyph       string        `yaml:"glyph"`
}

// BurstConfig holds burst settings.
type BurstConfig struct {
	Count           int           `yaml:"count"`
	SpreadX         float64       `yaml:"spreadX"`
	SpreadY         float64       `yaml:"spreadY"`
	Interval        time.Duration `yaml:"interval"`
	Size            float64       `yaml:"size"`
	Glyph           string        `yaml:"glyph"`
	StopPropagation bool          `yaml:"stopPropagation"`
}

// FollowConfig holds pointer-follow settings.
type FollowConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Chance      float64       `yaml:"chance"`
	MinInterval time.Duration `yaml:"minInterval"`
	SizeMin     float64       `yaml:"sizeMin"`
	SizeMax     float64       `yaml:"sizeMax"`
	Glyph       string        `yaml:"glyph"`
}

// RingConfig holds ring settings.
type RingConfig struct {
	Count    int           `yaml:"count"`
	Radius   float64       `yaml:"radius"`
	Size     float64       `yaml:"size"`
	Duration time.Duration `yaml:"duration"`
	Interval time.Duration `yaml:"interval"`
	Glyph    string        `yaml:"glyph"`
}

// PulseConfig holds pulsing-particle settings.
type PulseConfig struct {
	Size      float64       `yaml:"size"`
	Duration  time.Duration `yaml:"duration"`
	Period    time.Duration `yaml:"period"`
	Amplitude float64       `yaml:"amplitude"`
	Glyph     string        `yaml:"glyph"`
}

// TransitionConfig holds transition settings.
type TransitionConfig struct {
	Count int           `yaml:"count"`
	Wait  time.Duration `yaml:"wait"`
}

// DefaultConfig returns a config with every default spelled out.
func DefaultConfig() *Config {
	c := DefaultCosmetics()
	cfg := &Config{
		MaxConcurrent: DefaultMaxConcurrent,
		Particle: ParticleConfig{
			Size:       c.Size,
			Duration:   c.Duration,
			Glyphs:     c.Glyphs,
			Hue:        c.Hue,
			Saturation: c.Saturation,
			Lightness:  c.Lightness,
			Rotation:   c.Rotation,
			Spin:       c.Spin,
			Drift:      c.Drift,
			Rise:       c.Rise,
		},
		Rain:       RainConfig{Count: DefaultRainCount, Interval: DefaultRainInterval},
		Burst:      BurstConfig{Count: DefaultBurstCount},
		Follow:     FollowConfig{Chance: DefaultFollowChance, MinInterval: DefaultFollowMinInterval},
		Ring:       RingConfig{Count: DefaultRingCount, Radius: DefaultRingRadius, Interval: DefaultRingInterval},
		Pulse:      PulseConfig{Period: DefaultPulsePeriod, Amplitude: DefaultPulseAmplitude},
		Transition: TransitionConfig{Count: DefaultRainCount, Wait: DefaultTransitionWait},
	}
	return cfg
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hearts config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML config data. Out-of-range numbers are clamped, not
// rejected; only malformed YAML is an error.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hearts config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Normalize clamps every field into its valid range. Invalid values become
// zero so the runtime defaults apply.
func (c *Config) Normalize() {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	nonNegInt(&c.Rain.Count)
	nonNegInt(&c.Burst.Count)
	nonNegInt(&c.Ring.Count)
	nonNegInt(&c.Transition.Count)
	nonNegDur(&c.Particle.Duration, &c.Rain.Interval, &c.Rain.DurationMin, &c.Rain.DurationMax,
		&c.Burst.Interval, &c.Follow.MinInterval, &c.Ring.Duration, &c.Ring.Interval,
		&c.Pulse.Duration, &c.Pulse.Period, &c.Transition.Wait)
	if c.Rain.DurationMin > 0 && c.Rain.DurationMax > 0 && c.Rain.DurationMin > c.Rain.DurationMax {
		c.Rain.DurationMin, c.Rain.DurationMax = c.Rain.DurationMax, c.Rain.DurationMin
	}
	if c.Rain.SizeMin > c.Rain.SizeMax && c.Rain.SizeMax > 0 {
		c.Rain.SizeMin, c.Rain.SizeMax = c.Rain.SizeMax, c.Rain.SizeMin
	}
	if c.Follow.Chance > 1 {
		c.Follow.Chance = 1
	}
	if c.Pulse.Amplitude > 1 {
		c.Pulse.Amplitude = 1
	}
}

func nonNegInt(v *int) {
	if *v < 0 {
		*v = 0
	}
}

func nonNegDur(vs ...*time.Duration) {
	for _, v := range vs {
		if *v < 0 {
			*v = 0
		}
	}
}

// Cosmetics converts the particle section. Empty ranges take the defaults.
func (c *Config) Cosmetics() Cosmetics {
	d := DefaultCosmetics()
	p := c.Particle
	pick := func(r, def Range) Range {
		if r == (Range{}) {
			return def
		}
		return r
	}
	return Cosmetics{
		Size:       p.Size,
		Duration:   p.Duration,
		Glyphs:     p.Glyphs,
		Hue:        pick(p.Hue, d.Hue),
		Saturation: p.Saturation,
		Lightness:  p.Lightness,
		Rotation:   pick(p.Rotation, d.Rotation),
		Spin:       pick(p.Spin, d.Spin),
		Drift:      pick(p.Drift, d.Drift),
		Rise:       pick(p.Rise, d.Rise),
	}
}

// Environment returns the configured override, or the detected environment.
func (c *Config) Environment() Environment {
	if c.Constrained != nil {
		return Environment{Constrained: *c.Constrained}
	}
	return DetectEnvironment()
}

// Options converts the config into Manager options.
func (c *Config) Options() []Option {
	var r *Resolver
	if c.Seed != 0 {
		r = NewResolver(c.Seed, c.Cosmetics())
	} else {
		r = NewRandomResolver(c.Cosmetics())
	}
	return []Option{
		WithMaxConcurrent(c.MaxConcurrent),
		WithEnvironment(c.Environment()),
		WithResolver(r),
		WithDebug(c.Debug),
	}
}

// RainOptions converts the rain section.
func (c *Config) RainOptions() RainOptions {
	return RainOptions{
		SizeMin:     c.Rain.SizeMin,
		SizeMax:     c.Rain.SizeMax,
		DurationMin: c.Rain.DurationMin,
		DurationMax: c.Rain.DurationMax,
		Glyph:       c.Rain.Glyph,
	}
}

// BurstOptions converts the burst section.
func (c *Config) BurstOptions() BurstOptions {
	return BurstOptions{
		SpreadX:         c.Burst.SpreadX,
		SpreadY:         c.Burst.SpreadY,
		Interval:        c.Burst.Interval,
		Size:            c.Burst.Size,
		Glyph:           c.Burst.Glyph,
		StopPropagation: c.Burst.StopPropagation,
	}
}

// FollowOptions converts the follow section.
func (c *Config) FollowOptions() FollowOptions {
	return FollowOptions{
		Chance:      c.Follow.Chance,
		MinInterval: c.Follow.MinInterval,
		SizeMin:     c.Follow.SizeMin,
		SizeMax:     c.Follow.SizeMax,
		Glyph:       c.Follow.Glyph,
	}
}

// RingOptions converts the ring section.
func (c *Config) RingOptions() RingOptions {
	return RingOptions{
		Radius:   c.Ring.Radius,
		Size:     c.Ring.Size,
		Duration: c.Ring.Duration,
		Interval: c.Ring.Interval,
		Glyph:    c.Ring.Glyph,
	}
}

// PulseOptions converts the pulse section.
func (c *Config) PulseOptions() PulseOptions {
	return PulseOptions{
		Size:      c.Pulse.Size,
		Duration:  c.Pulse.Duration,
		Period:    c.Pulse.Period,
		Amplitude: c.Pulse.Amplitude,
		Glyph:     c.Pulse.Glyph,
	}
}
