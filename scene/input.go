package scene

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	seen      bool // lastX/lastY hold a real sample
	hitNode   *Node
	hoverNode *Node
	button    MouseButton // button captured at press time
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

// handlerRegistry holds listeners per event type. Scenes and nodes each own
// one.
type handlerRegistry struct {
	byType [eventTypeCount][]pointerHandler
	nextID uint32
}

func (r *handlerRegistry) add(ev EventType, fn func(PointerContext)) CallbackHandle {
	if ev >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	r.byType[ev] = append(r.byType[ev], pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: ev}
}

// snapshot returns the listeners for ev. Listeners added or removed while
// the snapshot is dispatched take effect from the next event.
func (r *handlerRegistry) snapshot(ev EventType) []pointerHandler {
	if r == nil || len(r.byType[ev]) == 0 {
		return nil
	}
	return slices.Clone(r.byType[ev])
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	hs := h.reg.byType[h.event]
	for i := range hs {
		if hs[i].id == h.id {
			copy(hs[i:], hs[i+1:])
			hs[len(hs)-1] = pointerHandler{}
			h.reg.byType[h.event] = hs[:len(hs)-1]
			return
		}
	}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventClick, fn)
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's size.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := n.Size()
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Invisible or non-interactable subtrees are
// skipped.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (wx, wy), or nil.
func (s *Scene) hitTest(wx, wy float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput handles one frame of pointer input. An injected event, when
// queued, replaces the real mouse for the frame.
func (s *Scene) processInput() {
	mods := readModifiers()
	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)
}

func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers maps touches to pointers 1-9. A tap produces the same
// down, up and click sequence as a mouse press.
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.pointers[i] = pointerState{}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch to a pointer slot (1-9), allocating one if needed.
// Returns -1 when every slot is taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			s.dispatch(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, mods)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, pointerID, wx, wy, button, mods)
		}
		ps.hoverNode = target
	}

	moved := !ps.seen || wx != ps.lastX || wy != ps.lastY
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.dispatch(EventPointerDown, target, pointerID, wx, wy, button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.dispatch(EventClick, target, pointerID, wx, wy, ps.button, mods)
		}
		s.dispatch(EventPointerUp, target, pointerID, wx, wy, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
	case moved:
		s.dispatch(EventPointerMove, target, pointerID, wx, wy, button, mods)
	}
	ps.lastX, ps.lastY, ps.seen = wx, wy, true
}

// dispatch delivers one event. Scene-level handlers run first. Then, for
// bubbling events, the target's listeners and callback run, followed by each
// ancestor's, until a listener calls StopPropagation. Events over empty space
// start at the root.
func (s *Scene) dispatch(ev EventType, target *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	var lx, ly float64
	var userData any
	if target != nil {
		lx, ly = target.WorldToLocal(wx, wy)
		userData = target.UserData
	}
	stopped := false
	ctx := PointerContext{
		Node: target, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: mods,
		stopped: &stopped,
	}

	for _, h := range s.handlers.snapshot(ev) {
		h.fn(ctx)
	}

	n := target
	if n == nil {
		if !ev.bubbles() {
			return
		}
		n = s.root
	}
	for ; n != nil && !stopped; n = n.Parent {
		ctx.Current = n
		for _, h := range n.listeners.snapshot(ev) {
			h.fn(ctx)
		}
		if fn := n.callback(ev); fn != nil {
			fn(ctx)
		}
		if !ev.bubbles() {
			return
		}
	}
}
