package scene

// syntheticPointerEvent is one injected pointer sample, in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a left-button press at (x, y). Each queued event is
// consumed by one frame's input pass, in place of the real mouse.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectHover queues a button-up move to (x, y).
func (s *Scene) InjectHover(x, y float64) {
	s.InjectRelease(x, y)
}

// InjectPath queues button-up moves from (fromX, fromY) to (toX, toY), one
// per frame, interpolated over the given number of frames (at least 2).
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectHover(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput feeds one queued event through the mouse pointer.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, mods)
	return true
}
