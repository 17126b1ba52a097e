package viewport

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Affine matrices are stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

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

// orthoViewMatrix maps flattened world coordinates to screen coordinates for
// a camera centered on (x, y) at the given zoom, inside a w×h surface.
// World Y points up and screen Y points down.
//
//	sx = w/2 + zoom*(fx - x)
//	sy = h/2 - zoom*(fy - y)
func orthoViewMatrix(x, y, zoom, w, h float64) [6]float64 {
	return [6]float64{
		zoom, 0,
		0, -zoom,
		w/2 - zoom*x,
		h/2 + zoom*y,
	}
}
