package term

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/hearts"
)

// listener is one registration made through a target.
type listener struct {
	id     int
	event  string
	bounds hearts.Rect // empty: the whole screen
	region bool
	fn     func(hearts.Event)
}

type inputState struct {
	listeners []listener
	nextID    int
	buttons   tcell.ButtonMask
	col, row  int
	seen      bool
}

// target is an EventTarget over a screen region, or the whole screen.
type target struct {
	sf     *Surface
	bounds hearts.Rect
	region bool
}

// Target returns an EventTarget for pointer events inside bounds, given in
// surface pixels. Events carry bounds, so bursts center on the region.
func (sf *Surface) Target(bounds hearts.Rect) hearts.EventTarget {
	return target{sf: sf, bounds: bounds, region: true}
}

// RootTarget returns an EventTarget for every pointer event on the screen.
func (sf *Surface) RootTarget() hearts.EventTarget {
	return target{sf: sf}
}

// On implements hearts.EventTarget. Supported events are click and
// mousemove; mouseover is treated as mousemove entering the region.
func (t target) On(event string, fn func(hearts.Event)) (off func()) {
	switch event {
	case hearts.EventClick, hearts.EventMouseMove, hearts.EventMouseOver:
	default:
		return func() {}
	}
	in := &t.sf.input
	in.nextID++
	id := in.nextID
	in.listeners = append(in.listeners, listener{
		id: id, event: event, bounds: t.bounds, region: t.region, fn: fn,
	})
	return func() {
		in.listeners = slices.DeleteFunc(in.listeners, func(l listener) bool { return l.id == id })
	}
}

// HandleEvent feeds a tcell event to the surface's targets. It reports
// whether the event was a mouse event.
//
// A click is a left-button release. Region listeners run before whole-screen
// listeners, and a listener calling StopPropagation skips the rest.
func (sf *Surface) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	in := &sf.input
	col, row := me.Position()
	buttons := me.Buttons()

	prevCol, prevRow, seen := in.col, in.row, in.seen
	moved := !seen || col != prevCol || row != prevRow
	released := in.buttons&tcell.Button1 != 0 && buttons&tcell.Button1 == 0
	in.col, in.row, in.seen, in.buttons = col, row, true, buttons

	x := float64(col*CellWidth + CellWidth/2)
	y := float64(row*CellHeight + CellHeight/2)
	px := float64(prevCol*CellWidth + CellWidth/2)
	py := float64(prevRow*CellHeight + CellHeight/2)

	if moved {
		sf.dispatch(hearts.EventMouseMove, x, y, anyListener)
		sf.dispatch(hearts.EventMouseOver, x, y, func(l listener) bool {
			return !seen || !l.region || !l.bounds.Contains(px, py)
		})
	}
	if released {
		sf.dispatch(hearts.EventClick, x, y, anyListener)
	}
	return true
}

// dispatch delivers one event at (x, y) to matching listeners that pass
// filter.
func (sf *Surface) dispatch(event string, x, y float64, filter func(listener) bool) {
	ls := slices.Clone(sf.input.listeners)
	// Region listeners first, keeping registration order within each group.
	slices.SortStableFunc(ls, func(a, b listener) int {
		switch {
		case a.region == b.region:
			return 0
		case a.region:
			return -1
		}
		return 1
	})
	stopped := false
	stop := func() { stopped = true }
	for _, l := range ls {
		if stopped {
			return
		}
		if l.event != event || !filter(l) {
			continue
		}
		if l.region && !l.bounds.Contains(x, y) {
			continue
		}
		l.fn(hearts.NewEvent(event, x, y, l.bounds, stop))
	}
}

func anyListener(listener) bool { return true }
