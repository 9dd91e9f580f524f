package scene

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform returns the node's local affine matrix
// [a, b, c, d, tx, ty], composed as
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	sx, sy := n.ScaleX, n.ScaleY

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or identity when m is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes worldTransform and worldAlpha for n and its
// subtree. A recomputed parent forces its children to recompute.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the node's PivotX and PivotY and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces the transform to be recomputed on the next update.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
