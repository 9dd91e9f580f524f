// Package scene renders hearts particles with [Ebitengine].
//
// A [Scene] is a small retained-mode node tree with pointer input (mouse and
// touch), event bubbling and a per-frame [hearts.Timeline]. A [Surface]
// implements [hearts.Surface] on top of it, drawing each particle as a tinted
// heart sprite and playing its keyframe animations through [gween] tweens.
//
//	sc := scene.NewScene(800, 600)
//	sf := scene.NewSurface(sc)
//	m := hearts.New(sf, sc.Timeline())
//
//	button := scene.NewRect("button", 120, 40, hearts.Color{R: 1, G: 0.4, B: 0.6, A: 1})
//	button.Interactable = true
//	sc.Root().AddChild(button)
//	m.BindBurst(sf.Target(button), hearts.EventClick, 5, hearts.BurstOptions{})
//	m.BindMouseFollow(sf.RootTarget(), hearts.FollowOptions{})
//
//	scene.Run(sc, scene.RunConfig{Title: "hearts"})
//
// Pointer events go to scene-level handlers first, then to the node under
// the pointer and each of its ancestors, until a listener calls
// [PointerContext.StopPropagation]. Events over empty space are delivered to
// the root, so a root target sees every move.
//
// For scripted runs, [LoadTestScript] queues synthetic clicks, moves and
// screenshots frame by frame.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package scene
