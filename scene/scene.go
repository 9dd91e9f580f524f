package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hearts"
)

const defaultCommandCap = 256

// Scene owns the node tree, the input state and a hearts.Timeline that is
// advanced once per frame, so deferred particle work runs on the update
// goroutine.
type Scene struct {
	root     *Node
	timeline *hearts.Timeline
	debug    bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	width, height float64
	frame         uint64

	commands []drawCommand

	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene of the given logical size with a pre-created,
// interactable root container.
func NewScene(width, height float64) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		timeline:      hearts.NewTimeline(),
		width:         width,
		height:        height,
		ScreenshotDir: "screenshots",
		commands:      make([]drawCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Timeline returns the frame-driven scheduler the scene advances in Step.
func (s *Scene) Timeline() *hearts.Timeline {
	return s.timeline
}

// Size returns the logical screen size.
func (s *Scene) Size() (w, h float64) {
	return s.width, s.height
}

// SetSize sets the logical screen size, normally from ebiten's Layout.
func (s *Scene) SetSize(w, h float64) {
	s.width, s.height = w, h
}

// Frame returns the number of steps taken.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Update steps the scene by one tick at the current TPS.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by dt seconds: it runs the test script, node
// OnUpdate callbacks, input and then the timeline.
func (s *Scene) Step(dt float64) {
	s.frame++
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	runUpdates(s.root, dt)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput()
	s.timeline.Advance(time.Duration(dt * float64(time.Second)))
}

// runUpdates calls OnUpdate on n and its descendants. The child list is
// copied first because callbacks may detach nodes.
func runUpdates(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if len(n.children) == 0 || n.disposed {
		return
	}
	children := append([]*Node(nil), n.children...)
	for _, c := range children {
		if c.Parent == n {
			runUpdates(c, dt)
		}
	}
}

// Draw renders the tree onto screen in ZIndex order, then captures any
// queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.ClearColor.A > 0 {
		screen.Fill(toRGBA(s.ClearColor))
	}
	s.commands = s.commands[:0]
	s.traverse(s.root, identityTransform, 1.0, false)
	s.submit(screen)
	s.flushScreenshots(screen)

	if s.debug {
		s.debugLog(debugStats{
			frameTime: time.Since(t0),
			nodes:     countNodes(s.root),
			draws:     len(s.commands),
			pending:   s.timeline.Pending(),
		})
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// use panics, large child counts are reported and per-frame stats are logged
// to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so node
// operations, which lack a Scene pointer, can check it.
var globalDebug bool
