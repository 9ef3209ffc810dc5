package stencilvg

import "math"

// Mat2x2 is the linear (non-translating) part of an AffineTransform (§3, §4.A).
type Mat2x2 struct {
	A, B float64 // first row
	C, D float64 // second row
}

// IdentityMat2x2 is the 2x2 identity matrix.
func IdentityMat2x2() Mat2x2 {
	return Mat2x2{A: 1, B: 0, C: 0, D: 1}
}

// Apply transforms a vector by the linear part only (no translation).
func (m Mat2x2) Apply(v Vec2) Vec2 {
	return Vec2{X: m.A*v.X + m.B*v.Y, Y: m.C*v.X + m.D*v.Y}
}

// Mul returns m*other (apply other first, then m).
func (m Mat2x2) Mul(other Mat2x2) Mat2x2 {
	return Mat2x2{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Det returns the determinant of the matrix.
func (m Mat2x2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse of m, or the identity if m is singular
// (|det| below 1e-12).
func (m Mat2x2) Invert() Mat2x2 {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return IdentityMat2x2()
	}
	inv := 1.0 / det
	return Mat2x2{
		A: m.D * inv, B: -m.B * inv,
		C: -m.C * inv, D: m.A * inv,
	}
}

// AffineTransform is a 2x2 linear map plus a translation (§3): apply(p) =
// M·p + T. Composition is right-to-left, matching standard transform-stack
// semantics: Combine(A,B) applies B first, then A.
type AffineTransform struct {
	M Mat2x2
	T Vec2
}

// Identity returns the identity affine transform.
func Identity() AffineTransform {
	return AffineTransform{M: IdentityMat2x2()}
}

// Translate returns a pure translation transform.
func Translate(x, y float64) AffineTransform {
	return AffineTransform{M: IdentityMat2x2(), T: Vec2{X: x, Y: y}}
}

// Scale returns a pure (possibly anisotropic) scale transform about the origin.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{M: Mat2x2{A: sx, B: 0, C: 0, D: sy}}
}

// Rotate returns a rotation transform about the origin, angle in radians.
func Rotate(angle float64) AffineTransform {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return AffineTransform{M: Mat2x2{A: cos, B: -sin, C: sin, D: cos}}
}

// Apply transforms a point: M·p + T.
func (a AffineTransform) Apply(p Vec2) Vec2 {
	return a.M.Apply(p).Add(a.T)
}

// ApplyVector transforms a direction vector by the linear part only,
// ignoring translation.
func (a AffineTransform) ApplyVector(v Vec2) Vec2 {
	return a.M.Apply(v)
}

// Combine composes two affine transforms so that, for any point p,
// Combine(a, b).Apply(p) == a.Apply(b.Apply(p)).
func Combine(a, b AffineTransform) AffineTransform {
	return AffineTransform{
		M: a.M.Mul(b.M),
		T: a.Apply(b.T),
	}
}

// Invert returns the inverse transform, or the identity if the linear
// part is singular.
func (a AffineTransform) Invert() AffineTransform {
	mInv := a.M.Invert()
	return AffineTransform{
		M: mInv,
		T: mInv.Apply(a.T).Neg(),
	}
}

// IsIdentity reports whether a is exactly the identity transform.
func (a AffineTransform) IsIdentity() bool {
	return a.M == IdentityMat2x2() && a.T == (Vec2{})
}

// Decompose extracts (translation, scale, skew, rotation) from an affine
// transform (§4.A). It must handle singular matrices gracefully: a zero
// matrix decomposes to all-zero scale/skew/rotation rather than dividing
// by zero or returning NaN.
func Decompose(a AffineTransform) (translation, scale Vec2, skew, rotation float64) {
	translation = a.T

	m := a.M
	scaleX := math.Hypot(m.A, m.C)
	if scaleX == 0 {
		return translation, Vec2{}, 0, 0
	}

	// Normalize the first column to isolate rotation.
	a1, c1 := m.A/scaleX, m.C/scaleX
	rotation = math.Atan2(c1, a1)

	// Gram-Schmidt: remove the component of the second column along the
	// first, unit column; what remains is the skew-scaled second axis.
	dot := a1*m.B + c1*m.D
	bPerp := m.B - dot*a1
	dPerp := m.D - dot*c1
	scaleY := math.Hypot(bPerp, dPerp)

	if scaleY == 0 {
		return translation, Vec2{X: scaleX, Y: 0}, 0, rotation
	}
	skew = math.Atan2(dot, scaleY)

	return translation, Vec2{X: scaleX, Y: scaleY}, skew, rotation
}

// Mat4 is a 4x4 matrix in row-major order, used only for the projection
// matrix (§3, §4.H). The core never needs general 3D transforms; Mat4
// exists solely so Context can hold a projection and combine it with the
// active AffineTransform into the renderMatrix stored on a RenderCache.
type Mat4 [16]float64

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns a standard top-left-origin orthographic projection mapping
// [0,width]x[0,height] to clip space [-1,1]x[-1,1] with Y flipped, matching
// the coordinate convention used throughout this module (Y increases down).
func Ortho(width, height float64) Mat4 {
	if width == 0 || height == 0 {
		return IdentityMat4()
	}
	return Mat4{
		2 / width, 0, 0, -1,
		0, -2 / height, 0, 1,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m*other (row-major, apply other first).
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// FromAffine embeds a 2D affine transform into a 4x4 matrix suitable for
// Mul with a projection matrix.
func FromAffine(a AffineTransform) Mat4 {
	return Mat4{
		a.M.A, a.M.B, 0, a.T.X,
		a.M.C, a.M.D, 0, a.T.Y,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
