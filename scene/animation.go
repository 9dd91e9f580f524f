package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/hearts"
)

// Animated channels, in Keyframe field order.
const (
	chDX = iota
	chDY
	chRotation
	chScale
	chAlpha
	channelCount
)

// KeyframePlayer plays a hearts.Animation as a chain of gween tweens, one
// tween per channel per keyframe segment. Call Update(dt) each frame and read
// Pose. If the target node is disposed the player stops without calling its
// completion func.
type KeyframePlayer struct {
	anim   hearts.Animation
	target *Node
	onDone func()

	seg     int
	iter    int
	segDur  float32
	segTime float32
	tweens  [channelCount]*gween.Tween
	vals    [channelCount]float32

	Done bool
}

// NewKeyframePlayer creates a player for anim on target. onDone, if not nil,
// runs once when the last iteration completes. An animation with fewer than
// two keyframes or no duration starts Done, holding its last pose, and never
// calls onDone.
func NewKeyframePlayer(target *Node, anim hearts.Animation, onDone func()) *KeyframePlayer {
	p := &KeyframePlayer{anim: anim, target: target, onDone: onDone}
	kf := anim.Keyframes
	switch {
	case len(kf) == 0:
		p.setPose(hearts.Identity)
		p.Done = true
	case len(kf) == 1 || anim.Duration <= 0:
		p.setPose(kf[len(kf)-1])
		p.Done = true
	default:
		p.startSegment(0)
	}
	return p
}

// Pose returns the current keyframe values.
func (p *KeyframePlayer) Pose() hearts.Keyframe {
	return hearts.Keyframe{
		DX:       float64(p.vals[chDX]),
		DY:       float64(p.vals[chDY]),
		Rotation: float64(p.vals[chRotation]),
		Scale:    float64(p.vals[chScale]),
		Alpha:    float64(p.vals[chAlpha]),
	}
}

// Layered reports whether the animation composes over a primary one.
func (p *KeyframePlayer) Layered() bool {
	return p.anim.Layered
}

// Update advances the player by dt seconds. It reports whether the player
// finished during this call, after running the completion func.
func (p *KeyframePlayer) Update(dt float32) bool {
	if !p.advance(dt) {
		return false
	}
	p.complete()
	return true
}

// advance moves time forward without running the completion func. It
// reports whether the player finished during this call.
func (p *KeyframePlayer) advance(dt float32) bool {
	if p.Done {
		return false
	}
	if p.target != nil && p.target.IsDisposed() {
		p.Done = true
		p.onDone = nil
		return false
	}
	for dt > 0 && !p.Done {
		step := min(dt, p.segDur-p.segTime)
		p.segTime += step
		dt -= step
		for i, tw := range p.tweens {
			p.vals[i], _ = tw.Update(step)
		}
		if p.segTime >= p.segDur {
			p.nextSegment()
		}
	}
	return p.Done
}

// complete runs the completion func at most once.
func (p *KeyframePlayer) complete() {
	if fn := p.onDone; fn != nil {
		p.onDone = nil
		fn()
	}
}

func (p *KeyframePlayer) nextSegment() {
	kf := p.anim.Keyframes
	if p.seg+1 < len(kf)-1 {
		p.startSegment(p.seg + 1)
		return
	}
	p.iter++
	if p.iter >= max(p.anim.Iterations, 1) {
		p.setPose(kf[len(kf)-1])
		p.Done = true
		return
	}
	p.startSegment(0)
}

func (p *KeyframePlayer) startSegment(i int) {
	from, to := p.anim.Keyframes[i], p.anim.Keyframes[i+1]
	p.seg = i
	p.segTime = 0
	p.segDur = float32((to.Offset - from.Offset) * p.anim.Duration.Seconds())
	if p.segDur < 0 {
		p.segDur = 0
	}
	fn := p.anim.Easing
	if fn == nil {
		fn = ease.Linear
	}
	fv, tv := channels(from), channels(to)
	for c := range p.tweens {
		p.tweens[c] = gween.New(fv[c], tv[c], p.segDur, fn)
		p.vals[c] = fv[c]
	}
}

func (p *KeyframePlayer) setPose(k hearts.Keyframe) {
	p.vals = channels(k)
}

func channels(k hearts.Keyframe) [channelCount]float32 {
	return [channelCount]float32{
		float32(k.DX), float32(k.DY), float32(k.Rotation), float32(k.Scale), float32(k.Alpha),
	}
}
