package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a node showing FPS, TPS and, when count is not nil,
// the number it returns (typically the live particle count). The text
// refreshes about twice a second.
func NewFPSWidget(count func() int) *Node {
	img := ebiten.NewImage(120, 48)
	node := NewSprite("fps_widget", img)
	node.ZIndex = LayerZIndex + 1

	var since float64
	node.OnUpdate = func(dt float64) {
		since += dt
		if since < 0.5 {
			return
		}
		since = 0

		img.Fill(color.RGBA{0, 0, 0, 128})
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if count != nil {
			msg += fmt.Sprintf("\nHearts: %d", count())
		}
		ebitenutil.DebugPrint(img, msg)
	}
	return node
}
