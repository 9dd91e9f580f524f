package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hearts"
)

// LayerZIndex is the ZIndex of the container particles are inserted into,
// so they draw above the rest of the scene.
const LayerZIndex = 1 << 16

// Surface implements hearts.Surface on a Scene. Elements are *Node values
// living in a dedicated layer under the root. Particles are positioned by
// their center and overlays by their top-left corner.
//
// All methods must be called on the update goroutine.
type Surface struct {
	scene  *Scene
	layer  *Node
	glyphs *glyphSet
	elems  map[*Node]*element
	order  []*Node // creation order, for deterministic animation updates
}

// element tracks the base style and running animations of one node.
type element struct {
	node    *Node
	base    hearts.Style
	primary *KeyframePlayer
	layers  []*KeyframePlayer
}

var _ hearts.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing into s. The particle layer is added
// to the root right away.
func NewSurface(s *Scene) *Surface {
	sf := &Surface{
		scene:  s,
		layer:  NewContainer("hearts"),
		glyphs: newGlyphSet(),
		elems:  make(map[*Node]*element),
	}
	sf.layer.ZIndex = LayerZIndex
	sf.layer.OnUpdate = sf.update
	s.Root().AddChild(sf.layer)
	return sf
}

// Layer returns the container holding every element.
func (sf *Surface) Layer() *Node {
	return sf.layer
}

// RegisterGlyph makes particles with the given glyph draw img instead of a
// built-in shape.
func (sf *Surface) RegisterGlyph(glyph string, img *ebiten.Image) {
	sf.glyphs.register(glyph, img)
}

// Create implements hearts.Surface.
func (sf *Surface) Create(style hearts.Style) hearts.Element {
	var n *Node
	switch style.Kind {
	case hearts.KindOverlay:
		n = NewRect("overlay", style.Width, style.Height, style.Color)
	default:
		n = NewSprite("heart", sf.glyphs.image(style.Glyph))
		n.Color = style.Color
		n.PivotX, n.PivotY = GlyphResolution/2, GlyphResolution/2
	}
	n.ZIndex = style.ZIndex
	el := &element{node: n, base: style}
	sf.elems[n] = el
	sf.order = append(sf.order, n)
	sf.apply(el, hearts.Keyframe{Scale: 1, Alpha: style.Alpha})
	return n
}

// Insert implements hearts.Surface.
func (sf *Surface) Insert(e hearts.Element) {
	n := e.(*Node)
	if n.IsDisposed() {
		return
	}
	sf.layer.AddChild(n)
}

// Remove implements hearts.Surface. The node is disposed, which also stops
// its animations without completion.
func (sf *Surface) Remove(e hearts.Element) {
	n := e.(*Node)
	delete(sf.elems, n)
	n.Dispose()
}

// Attached implements hearts.Surface.
func (sf *Surface) Attached(e hearts.Element) bool {
	n := e.(*Node)
	return !n.IsDisposed() && n.Parent != nil
}

// Animate implements hearts.Surface. A layered animation is composed over
// the primary one; any other animation replaces the primary.
func (sf *Surface) Animate(e hearts.Element, anim hearts.Animation, done func()) {
	el, ok := sf.elems[e.(*Node)]
	if !ok {
		return
	}
	p := NewKeyframePlayer(el.node, anim, done)
	if anim.Layered {
		el.layers = append(el.layers, p)
	} else {
		el.primary = p
	}
	sf.apply(el, sf.pose(el))
	if p.Done && done != nil {
		// Nothing to play; completion is still asynchronous.
		sf.scene.timeline.After(0, done)
	}
}

// Viewport implements hearts.Surface.
func (sf *Surface) Viewport() hearts.Rect {
	w, h := sf.scene.Size()
	return hearts.Rect{Width: w, Height: h}
}

// Len returns the number of live elements.
func (sf *Surface) Len() int {
	return len(sf.elems)
}

// update advances every animation by dt and applies the poses. Completion
// funcs run after all elements are posed, since they usually remove
// elements.
func (sf *Surface) update(dt float64) {
	var finished []*KeyframePlayer
	live := sf.order[:0]
	for _, n := range sf.order {
		el, ok := sf.elems[n]
		if !ok {
			continue
		}
		if n.IsDisposed() {
			// Disposed by the host; its animations end without completion.
			delete(sf.elems, n)
			continue
		}
		live = append(live, n)
		if el.primary != nil && el.primary.advance(float32(dt)) {
			finished = append(finished, el.primary)
		}
		layers := el.layers[:0]
		for _, l := range el.layers {
			if l.advance(float32(dt)) {
				finished = append(finished, l)
			}
			if !l.Done {
				layers = append(layers, l)
			}
		}
		el.layers = layers
		sf.apply(el, sf.pose(el))
	}
	clear(sf.order[len(live):])
	sf.order = live

	for _, p := range finished {
		p.complete()
	}
}

// pose composes the primary pose with every layer.
func (sf *Surface) pose(el *element) hearts.Keyframe {
	k := hearts.Keyframe{Scale: 1, Alpha: el.base.Alpha}
	if el.primary != nil {
		k = el.primary.Pose()
	}
	for _, l := range el.layers {
		k = hearts.Compose(k, l.Pose())
	}
	return k
}

// apply poses the node from its base style.
func (sf *Surface) apply(el *element, k hearts.Keyframe) {
	st := k.Apply(el.base)
	n := el.node
	w, h := n.Size()
	if w > 0 && h > 0 {
		n.ScaleX, n.ScaleY = st.Width/w, st.Height/h
	}
	n.X, n.Y = st.X, st.Y
	n.Rotation = st.Rotation * math.Pi / 180
	n.Alpha = clamp01(st.Alpha)
	n.MarkDirty()
}

// Target returns an EventTarget for n. Event bounds are n's screen bounds.
func (sf *Surface) Target(n *Node) hearts.EventTarget {
	return nodeTarget{n: n}
}

// RootTarget returns an EventTarget that sees every pointer event in the
// scene, for pointer-follow emission.
func (sf *Surface) RootTarget() hearts.EventTarget {
	return nodeTarget{n: sf.scene.Root()}
}

type nodeTarget struct {
	n *Node
}

// eventNames maps hearts event names to scene event types.
var eventNames = map[string]EventType{
	hearts.EventClick:     EventClick,
	hearts.EventMouseOver: EventPointerEnter,
	hearts.EventMouseMove: EventPointerMove,
}

// On implements hearts.EventTarget. Unknown event names register nothing.
func (t nodeTarget) On(event string, fn func(hearts.Event)) (off func()) {
	et, ok := eventNames[event]
	if !ok {
		return func() {}
	}
	h := t.n.Listen(et, func(ctx PointerContext) {
		fn(hearts.NewEvent(event, ctx.GlobalX, ctx.GlobalY, t.n.WorldBounds(), ctx.StopPropagation))
	})
	return h.Remove
}
