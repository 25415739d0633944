package touchkit

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
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

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translateAffine(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

func scaleAffine(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}

func rotateAffine(r float64) [6]float64 {
	sin, cos := math.Sincos(r)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// poseTransform maps a layout box of the given size, whose untransformed
// top-left sits at origin, into viewport space under p. Scale and rotation
// apply about the box center:
//
//	Translate(origin + p.XY + size/2) * Rotate * Scale * Translate(-size/2)
func poseTransform(origin Vec2, size Size, p Pose) [6]float64 {
	cx, cy := size.Width/2, size.Height/2
	m := translateAffine(origin.X+p.X+cx, origin.Y+p.Y+cy)
	m = multiplyAffine(m, rotateAffine(p.Rotation))
	m = multiplyAffine(m, scaleAffine(p.Scale, p.Scale))
	return multiplyAffine(m, translateAffine(-cx, -cy))
}

// elementTransform returns the viewport-space transform of e's layout box
// using the persisted pose, or the shown pose when shown is true.
func elementTransform(e *Element, shown bool) [6]float64 {
	p := e.Pose
	if shown {
		p = e.shown
	}
	if e.Kind == KindBackground && e.Background == BackgroundContain {
		return poseTransform(e.Offset, e.Size, IdentityPose())
	}
	return poseTransform(e.Offset, e.Size, p)
}

// worldToLocal converts a viewport point to e's unscaled layout-box space.
func worldToLocal(e *Element, x, y float64) (float64, float64) {
	return transformPoint(invertAffine(elementTransform(e, true)), x, y)
}

// boxCenter returns the viewport-space center of e, which scale and
// rotation leave fixed.
func boxCenter(e *Element) Vec2 {
	p := e.Pose
	if e.Kind == KindBackground && e.Background == BackgroundContain {
		p = IdentityPose()
	}
	return Vec2{
		X: e.Offset.X + p.X + e.Size.Width/2,
		Y: e.Offset.Y + p.Y + e.Size.Height/2,
	}
}
