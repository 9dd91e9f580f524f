package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data. Node is the node the pointer
// hit; Current is the node whose listeners are running, which differs from
// Node while the event bubbles.
type PointerContext struct {
	Node      *Node
	Current   *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers

	stopped *bool
}

// StopPropagation keeps the event from bubbling to the remaining ancestors.
func (c PointerContext) StopPropagation() {
	if c.stopped != nil {
		*c.stopped = true
	}
}

// nodeIDCounter is a plain counter (no atomic, scenes are single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for
// containers and sprites.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	ZIndex int

	UserData any

	// Sprite fields. A sprite without an Image is a Width x Height rectangle
	// filled with Color.
	Image         *ebiten.Image
	Width, Height float64
	Color         Color
	BlendMode     BlendMode

	HitShape HitShape

	// Per-node callbacks (nil by default). They run after the listeners
	// registered with Listen.
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// OnUpdate runs once per Scene.Step with the frame time in seconds.
	OnUpdate func(dt float64)

	listeners *handlerRegistry

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = Color{R: 1, G: 1, B: 1, A: 1}
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws img.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle sprite.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Listen registers fn for events of type ev on this node. Listeners run in
// registration order, before the matching On* field.
func (n *Node) Listen(ev EventType, fn func(PointerContext)) CallbackHandle {
	if n.listeners == nil {
		n.listeners = &handlerRegistry{}
	}
	return n.listeners.add(ev, fn)
}

// callback returns the On* field for ev.
func (n *Node) callback(ev EventType) func(PointerContext) {
	switch ev {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Image = nil
	n.UserData = nil
	n.listeners = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Size returns the node's unscaled dimensions: its image bounds, or
// Width x Height for rectangles and containers.
func (n *Node) Size() (w, h float64) {
	if n.Image != nil {
		b := n.Image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	return n.Width, n.Height
}

// WorldBounds returns the axis-aligned box covering the node on screen, as of
// the last transform update.
func (n *Node) WorldBounds() Rect {
	w, h := n.Size()
	if w == 0 && h == 0 {
		return Rect{}
	}
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = n.LocalToWorld(0, 0)
	xs[1], ys[1] = n.LocalToWorld(w, 0)
	xs[2], ys[2] = n.LocalToWorld(0, h)
	xs[3], ys[3] = n.LocalToWorld(w, h)
	minX, minY, maxX, maxY := xs[0], ys[0], xs[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = min(minX, xs[i])
		maxX = max(maxX, xs[i])
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
