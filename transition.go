package hearts

import "time"

// Transition timing.
const (
	DefaultTransitionWait = 1500 * time.Millisecond

	overlayDelay   = 10 * time.Millisecond
	overlayFade    = time.Second
	overlayOpacity = 0.85
	overlayZIndex  = 1 << 20
)

// OverlayColor is the tint of the transition overlay.
var OverlayColor = Color{R: 1, G: 0.86, B: 0.9, A: 1}

// TransitionTo rains count particles, fades a full-viewport overlay in and,
// after wait, navigates to destination with the configured Navigator. Zero
// count and wait take the defaults (30, 1.5s).
//
// The overlay is removed right after navigation; a Navigator that swaps the
// visible scene does so before that happens.
func (m *Manager) TransitionTo(destination string, count int, wait time.Duration) {
	if count <= 0 {
		count = DefaultRainCount
	}
	if wait <= 0 {
		wait = DefaultTransitionWait
	}

	m.SpawnRain(count, DefaultRainInterval, RainOptions{})

	vp := m.surface.Viewport()
	overlay := m.surface.Create(Style{
		Kind:   KindOverlay,
		X:      vp.X,
		Y:      vp.Y,
		Width:  vp.Width,
		Height: vp.Height,
		Color:  OverlayColor,
		Alpha:  0,
		ZIndex: overlayZIndex,
	})
	m.surface.Insert(overlay)

	m.sched.After(overlayDelay, func() {
		m.surface.Animate(overlay, Animation{
			Keyframes: []Keyframe{
				{Offset: 0, Scale: 1, Alpha: 0},
				{Offset: 1, Scale: 1, Alpha: overlayOpacity},
			},
			Duration: overlayFade,
		}, nil)
	})
	m.sched.After(wait, func() {
		if m.nav != nil {
			m.nav.Navigate(destination)
		} else {
			m.logf("transition to %q: no navigator", destination)
		}
		if m.surface.Attached(overlay) {
			m.surface.Remove(overlay)
		}
	})
}
