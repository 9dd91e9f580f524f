package term

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/hearts"
)

// Cell metrics in surface pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Alpha thresholds for particle cells.
const (
	hiddenAlpha = 0.05
	dimAlpha    = 0.5
)

// fallbackRune replaces glyphs a single cell cannot hold.
const fallbackRune = '♥'

// element is one created style plus its running animations.
type element struct {
	base     hearts.Style
	primary  *track
	layers   []*track
	attached bool
	removed  bool
	seq      int
}

// track is one animation playing on an element.
type track struct {
	anim    hearts.Animation
	elapsed time.Duration
	done    func()
	over    bool
}

// Surface implements hearts.Surface on a tcell screen. Methods must be
// called from the goroutine that runs Update and Draw.
type Surface struct {
	screen  tcell.Screen
	elems   []*element
	pending []func()
	seq     int
	input   inputState
}

var _ hearts.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing on screen. The screen must already
// be initialized.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Screen returns the underlying screen.
func (sf *Surface) Screen() tcell.Screen {
	return sf.screen
}

// Create implements hearts.Surface.
func (sf *Surface) Create(style hearts.Style) hearts.Element {
	sf.seq++
	return &element{base: style, seq: sf.seq}
}

// Insert implements hearts.Surface.
func (sf *Surface) Insert(e hearts.Element) {
	el := e.(*element)
	if el.attached || el.removed {
		return
	}
	el.attached = true
	sf.elems = append(sf.elems, el)
}

// Remove implements hearts.Surface. Running animations end without
// completion.
func (sf *Surface) Remove(e hearts.Element) {
	el := e.(*element)
	el.removed = true
	el.primary, el.layers = nil, nil
	if !el.attached {
		return
	}
	el.attached = false
	sf.elems = slices.DeleteFunc(sf.elems, func(x *element) bool { return x == el })
}

// Attached implements hearts.Surface.
func (sf *Surface) Attached(e hearts.Element) bool {
	return e.(*element).attached
}

// Animate implements hearts.Surface. Animations on removed elements are
// ignored. Completion is reported from Update, never from Animate itself.
func (sf *Surface) Animate(e hearts.Element, anim hearts.Animation, done func()) {
	el := e.(*element)
	if el.removed {
		return
	}
	tr := &track{anim: anim, done: done}
	if anim.Layered {
		el.layers = append(el.layers, tr)
	} else {
		el.primary = tr
	}
	if len(anim.Keyframes) < 2 || anim.Duration <= 0 {
		tr.over = true
		if done != nil {
			sf.pending = append(sf.pending, done)
		}
	}
}

// Viewport implements hearts.Surface: the screen size in surface pixels.
func (sf *Surface) Viewport() hearts.Rect {
	w, h := sf.screen.Size()
	return hearts.Rect{Width: float64(w * CellWidth), Height: float64(h * CellHeight)}
}

// Len returns the number of attached elements.
func (sf *Surface) Len() int {
	return len(sf.elems)
}

// Update advances every animation by dt and then runs the completion funcs
// that fell due.
func (sf *Surface) Update(dt time.Duration) {
	done := sf.pending
	sf.pending = nil
	for _, el := range sf.elems {
		if fn := el.primary.advance(dt); fn != nil {
			done = append(done, fn)
		}
		for _, l := range el.layers {
			if fn := l.advance(dt); fn != nil {
				done = append(done, fn)
			}
		}
		el.layers = slices.DeleteFunc(el.layers, func(t *track) bool { return t.over })
	}
	for _, fn := range done {
		fn()
	}
}

// advance moves t forward and returns its completion func if it finished
// in this call.
func (t *track) advance(dt time.Duration) func() {
	if t == nil || t.over {
		return nil
	}
	t.elapsed += dt
	if t.elapsed < t.anim.Total() {
		return nil
	}
	t.over = true
	fn := t.done
	t.done = nil
	return fn
}

func (t *track) pose() hearts.Keyframe {
	k, _ := t.anim.Sample(t.elapsed)
	return k
}

// pose composes the element's primary pose with its layers. A finished
// primary holds its last keyframe.
func (el *element) pose() hearts.Keyframe {
	k := hearts.Keyframe{Scale: 1, Alpha: el.base.Alpha}
	if el.primary != nil {
		k = el.primary.pose()
	}
	for _, l := range el.layers {
		k = hearts.Compose(k, l.pose())
	}
	return k
}

// Draw clears the screen, paints every element in ZIndex order and shows
// the result.
func (sf *Surface) Draw() {
	sf.screen.Clear()
	order := slices.Clone(sf.elems)
	slices.SortStableFunc(order, func(a, b *element) int {
		return cmp.Or(cmp.Compare(a.base.ZIndex, b.base.ZIndex), cmp.Compare(a.seq, b.seq))
	})
	for _, el := range order {
		st := el.pose().Apply(el.base)
		switch st.Kind {
		case hearts.KindOverlay:
			sf.drawOverlay(st)
		default:
			sf.drawParticle(st)
		}
	}
	sf.screen.Show()
}

func (sf *Surface) drawParticle(st hearts.Style) {
	if st.Alpha < hiddenAlpha {
		return
	}
	col, row := cellAt(st.X, st.Y)
	w, h := sf.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(rgb(toColorful(st.Color)))
	if st.Alpha < dimAlpha {
		style = style.Dim(true)
	}
	sf.screen.SetContent(col, row, glyphRune(st.Glyph), nil, style)
}

// drawOverlay tints the background of every covered cell, keeping what is
// already drawn there. The tint is blended over black by alpha.
func (sf *Surface) drawOverlay(st hearts.Style) {
	a := min(1, max(0, st.Alpha))
	if a == 0 {
		return
	}
	bg := rgb(colorful.Color{}.BlendRgb(toColorful(st.Color), a))
	w, h := sf.screen.Size()
	c0, r0 := cellAt(st.X, st.Y)
	c1, r1 := cellAt(st.X+st.Width-1, st.Y+st.Height-1)
	for row := max(r0, 0); row <= min(r1, h-1); row++ {
		for col := max(c0, 0); col <= min(c1, w-1); col++ {
			mainc, combc, style, _ := sf.screen.GetContent(col, row)
			sf.screen.SetContent(col, row, mainc, combc, style.Background(bg))
		}
	}
}

// cellAt returns the cell containing surface point (x, y).
func cellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// glyphRune returns the first rune of glyph if it fits one cell.
func glyphRune(glyph string) rune {
	for _, r := range glyph {
		if runewidth.RuneWidth(r) == 1 {
			return r
		}
		break
	}
	return fallbackRune
}

func toColorful(c hearts.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
