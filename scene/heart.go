package scene

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// GlyphResolution is the pixel size glyph images are rasterized at. Sprites
// scale it to the particle size.
const GlyphResolution = 64

// supersample is the per-axis sample count used to antialias masks.
const supersample = 4

// insideHeart reports whether (x, y) lies inside the heart curve
// (x² + y² - 1)³ - x²y³ <= 0, which spans roughly x in [-1.14, 1.14] and
// y in [-1, 1.25] with the point at the bottom.
func insideHeart(x, y float64) bool {
	a := x*x + y*y - 1
	return a*a*a-x*x*y*y*y <= 0
}

// heartMask rasterizes a heart into a size x size alpha mask.
func heartMask(size int) *image.Alpha {
	return rasterize(size, func(u, v float64) bool {
		// u, v in [0, 1), v down. Flip v so the point faces down.
		return insideHeart((u*2-1)*1.25, 1.3-v*2.55)
	})
}

// twinHeartMask rasterizes two overlapping smaller hearts.
func twinHeartMask(size int) *image.Alpha {
	return rasterize(size, func(u, v float64) bool {
		big := insideHeart((u-0.4)*2/0.7*1.25, (0.45-v)*2/0.7*1.3)
		small := insideHeart((u-0.72)*2/0.45*1.25, (0.7-v)*2/0.45*1.3)
		return big || small
	})
}

func rasterize(size int, inside func(u, v float64) bool) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	step := 1.0 / float64(size*supersample)
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			hits := 0
			for sy := 0; sy < supersample; sy++ {
				for sx := 0; sx < supersample; sx++ {
					u := float64(px*supersample+sx)*step + step/2
					v := float64(py*supersample+sy)*step + step/2
					if inside(u, v) {
						hits++
					}
				}
			}
			img.SetAlpha(px, py, color.Alpha{A: uint8(hits * 255 / (supersample * supersample))})
		}
	}
	return img
}

// glyphSet maps glyph strings to images, rasterizing built-in shapes on
// first use.
type glyphSet struct {
	mu     sync.Mutex
	images map[string]*ebiten.Image
}

func newGlyphSet() *glyphSet {
	return &glyphSet{images: make(map[string]*ebiten.Image)}
}

// builtinMask returns the mask for a known glyph. Unknown glyphs draw as a
// plain heart.
func builtinMask(glyph string) *image.Alpha {
	switch glyph {
	case "💕":
		return twinHeartMask(GlyphResolution)
	default:
		return heartMask(GlyphResolution)
	}
}

func (g *glyphSet) register(glyph string, img *ebiten.Image) {
	g.mu.Lock()
	g.images[glyph] = img
	g.mu.Unlock()
}

func (g *glyphSet) image(glyph string) *ebiten.Image {
	g.mu.Lock()
	defer g.mu.Unlock()
	if img, ok := g.images[glyph]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(builtinMask(glyph))
	g.images[glyph] = img
	return img
}
