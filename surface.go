package hearts

// Element is an opaque visual created by a Surface. Only the Surface that
// created an element knows its concrete type.
type Element any

// Kind selects what a Surface should build for a Style.
type Kind uint8

const (
	KindParticle Kind = iota // a glyph centered on (X, Y)
	KindOverlay              // a solid rectangle with its top-left at (X, Y)
)

// Style is the initial look of an element.
type Style struct {
	Kind          Kind
	X, Y          float64
	Width, Height float64
	Glyph         string
	Color         Color
	Rotation      float64 // degrees
	Alpha         float64
	ZIndex        int
}

// Surface is everything the manager needs from the host renderer.
//
// Animate may or may not call done: some hosts drop the notification when an
// element is removed early or when the animation is interrupted. Callers that
// depend on completion must arm their own timeout.
type Surface interface {
	Create(style Style) Element
	Insert(el Element)
	Remove(el Element)
	Attached(el Element) bool
	Animate(el Element, anim Animation, done func())
	Viewport() Rect
}

// Event names understood by EventTarget implementations.
const (
	EventClick     = "click"
	EventMouseOver = "mouseover"
	EventMouseMove = "mousemove"
)

// Event is one occurrence on an EventTarget.
type Event struct {
	Type string
	// X and Y are the pointer position in surface pixels.
	X, Y float64
	// Bounds is the geometry of the node that triggered the event. It is
	// empty for targets without geometry.
	Bounds Rect

	stop func()
}

// NewEvent builds an Event. stop, when non-nil, is called by
// StopPropagation.
func NewEvent(typ string, x, y float64, bounds Rect, stop func()) Event {
	return Event{Type: typ, X: x, Y: y, Bounds: bounds, stop: stop}
}

// StopPropagation asks the target to stop delivering this event to outer
// listeners. No-op for targets that do not propagate.
func (e Event) StopPropagation() {
	if e.stop != nil {
		e.stop()
	}
}

// EventTarget delivers named events to listeners.
type EventTarget interface {
	// On registers fn for the named event and returns a func that removes it.
	On(event string, fn func(Event)) (off func())
}

// Navigator performs the navigation that ends a transition.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a plain func to Navigator.
type NavigatorFunc func(destination string)

// Navigate calls f(destination).
func (f NavigatorFunc) Navigate(destination string) { f(destination) }
