package scene

import (
	"image/color"
	"testing"
)

func TestTraverseOrderAndCulling(t *testing.T) {
	s := NewScene(800, 600)
	a := NewRect("a", 10, 10, Color{R: 1, A: 1})
	b := NewRect("b", 10, 10, Color{G: 1, A: 1})
	hidden := NewRect("hidden", 10, 10, Color{A: 1})
	hidden.Visible = false
	faded := NewRect("faded", 10, 10, Color{A: 1})
	faded.Alpha = 0
	empty := NewRect("empty", 0, 10, Color{A: 1})
	for _, n := range []*Node{a, b, hidden, faded, empty} {
		s.Root().AddChild(n)
	}
	a.SetZIndex(2)

	s.traverse(s.Root(), identityTransform, 1, false)
	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	if s.commands[0].color.G != 1 || s.commands[1].color.R != 1 {
		t.Error("expected b before a by ZIndex")
	}
}

func TestRectCommandScalesWhitePixel(t *testing.T) {
	n := NewRect("r", 40, 20, Color{A: 1})
	n.X, n.Y = 5, 6
	n.Alpha = 0.5
	updateWorldTransform(n, identityTransform, 1, false)

	cmd, ok := spriteCommand(n)
	if !ok {
		t.Fatal("expected a command")
	}
	assertMatrix(t, "rect transform", cmd.transform, [6]float64{40, 0, 0, 20, 5, 6})
	assertNear(t, "alpha", cmd.color.A, 0.5)
	if cmd.image != WhitePixel() {
		t.Error("rect should draw the white pixel")
	}
}

func TestToRGBA(t *testing.T) {
	got := toRGBA(Color{R: 1, G: 0.5, B: 0, A: 0.5})
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if toRGBA(Color{R: 2, A: -1}) != (color.RGBA{}) {
		t.Error("out-of-range channels should clamp")
	}
}
