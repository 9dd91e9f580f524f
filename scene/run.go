package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// stderr receives warnings; replaced in tests.
var stderr io.Writer = os.Stderr

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background fills the screen each frame when its alpha is non-zero.
	Background Color
	// ShowFPS adds an FPS widget in the top-left corner.
	ShowFPS bool
	// Count, when set with ShowFPS, adds a count line to the widget.
	Count func() int
	// ExitWhenScriptDone ends the game once the attached test runner is done.
	ExitWhenScriptDone bool
}

// errScriptDone ends the game loop without reporting an error.
var errScriptDone = errors.New("test script done")

type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		return errScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives s until the window closes.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "hearts"
	}
	if cfg.Background.A > 0 {
		s.ClearColor = cfg.Background
	}
	if cfg.ShowFPS {
		s.Root().AddChild(NewFPSWidget(cfg.Count))
	}
	s.SetSize(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&game{scene: s, cfg: cfg})
	if err != nil && !errors.Is(err, errScriptDone) {
		return fmt.Errorf("run scene: %w", err)
	}
	return nil
}
