// Package hearts spawns short-lived decorative particles ("hearts") over a
// 2D scene while capping how many are alive at once.
//
// A [Manager] owns the lifecycle: it asks its [Limiter] for a slot, resolves
// the particle's look with a [Resolver], creates and animates an element on a
// [Surface], and retires the particle exactly once, either when the
// animation reports completion or when a fallback timer fires, whichever
// comes first. When the cap is reached a spawn simply returns nil.
//
// Everything deferred runs on a [Scheduler]. Hosts with a frame loop use a
// [Timeline] and call [Timeline.Advance] once per update:
//
//	tl := hearts.NewTimeline()
//	m := hearts.New(surface, tl, hearts.WithMaxConcurrent(40))
//	m.SpawnRain(30, 50*time.Millisecond, hearts.RainOptions{})
//
//	// every frame:
//	tl.Advance(dt)
//
// # Strategies
//
// Besides [Manager.SpawnOne], the manager schedules batches:
// [Manager.SpawnRain] (bottom-edge rain), [Manager.BindBurst] (a burst
// around whatever fired an event), [Manager.BindMouseFollow] (rate-limited
// emission at the pointer), [Manager.SpawnRing] (a circle) and
// [Manager.SpawnPulsing] (a particle with a pulse layered on its drift).
// [Manager.TransitionTo] combines a rain with a fading overlay and a
// deferred [Navigator] call.
//
// # Surfaces
//
// The scene subpackage renders on Ebitengine and the term subpackage renders
// in a terminal through tcell. Both also provide [EventTarget]s.
package hearts
