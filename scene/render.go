package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCommand is one sprite draw emitted during traversal, in paint order.
type drawCommand struct {
	transform [6]float64
	image     *ebiten.Image
	color     Color // straight alpha, already multiplied by world alpha
	blend     BlendMode
}

// traverse walks the tree depth-first, refreshing world transforms and
// emitting a command for each visible, renderable sprite. Children are
// visited in ZIndex order.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.Type == NodeTypeSprite && n.worldAlpha > 0 {
		if cmd, ok := spriteCommand(n); ok {
			s.commands = append(s.commands, cmd)
		}
	}

	for _, child := range sortedChildren(n) {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// spriteCommand builds the draw for a sprite. Rectangles draw the white
// pixel scaled to Width x Height.
func spriteCommand(n *Node) (drawCommand, bool) {
	cmd := drawCommand{
		transform: n.worldTransform,
		image:     n.Image,
		color:     Color{R: n.Color.R, G: n.Color.G, B: n.Color.B, A: n.Color.A * n.worldAlpha},
		blend:     n.BlendMode,
	}
	if cmd.image == nil {
		if n.Width <= 0 || n.Height <= 0 {
			return drawCommand{}, false
		}
		cmd.image = WhitePixel()
		cmd.transform = multiplyAffine(n.worldTransform, [6]float64{n.Width, 0, 0, n.Height, 0, 0})
	}
	return cmd, true
}

// submit draws every command onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		op.GeoM.Reset()
		op.GeoM.SetElement(0, 0, cmd.transform[0])
		op.GeoM.SetElement(1, 0, cmd.transform[1])
		op.GeoM.SetElement(0, 1, cmd.transform[2])
		op.GeoM.SetElement(1, 1, cmd.transform[3])
		op.GeoM.SetElement(0, 2, cmd.transform[4])
		op.GeoM.SetElement(1, 2, cmd.transform[5])
		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
		op.Blend = cmd.blend.EbitenBlend()
		target.DrawImage(cmd.image, &op)
	}
}

// sortedChildren returns n's children in ZIndex order, rebuilding the cached
// order when it is stale.
func sortedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order with a
// stable insertion sort, which is O(n) for the usual nearly sorted case.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// toRGBA converts c to a premultiplied color for image.Fill.
func toRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
