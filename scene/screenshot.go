package scene

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Files are
// written to ScreenshotDir as <frame>_<label>.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes every queued capture of screen. Failures are
// reported on stderr and do not stop the frame.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[hearts] screenshot: %v\n", err)
		return
	}
	img := readStraightAlpha(screen)
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%06d_%s.png", s.frame, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[hearts] screenshot: %v\n", err)
		}
	}
}

// readStraightAlpha copies screen's premultiplied pixels into an NRGBA
// image.
func readStraightAlpha(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	unpremultiply(img.Pix)
	return img
}

// unpremultiply converts RGBA bytes from premultiplied to straight alpha in
// place.
func unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			pix[i+c] = uint8(min(int(pix[i+c])*255/a, 255))
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
