package stencilvg

import (
	"math"
	"testing"
)

func approxMat2(a, b Mat2x2, eps float64) bool {
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps &&
		math.Abs(a.C-b.C) < eps && math.Abs(a.D-b.D) < eps
}

func approxVec(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestAffineCombineMatchesSequentialApply(t *testing.T) {
	a := Combine(Translate(10, 5), Rotate(math.Pi/4))
	b := Scale(2, 3)
	combined := Combine(a, b)

	pts := []Vec2{{X: 1, Y: 0}, {X: -3, Y: 7}, {X: 0, Y: 0}, {X: 12.5, Y: -4.25}}
	for _, p := range pts {
		got := combined.Apply(p)
		want := a.Apply(b.Apply(p))
		if !approxVec(got, want, 1e-9) {
			t.Errorf("Combine(a,b).Apply(%+v) = %+v, want %+v", p, got, want)
		}
	}
}

func TestAffineInvertRoundTrips(t *testing.T) {
	a := Combine(Translate(3, -2), Combine(Rotate(0.7), Scale(2, 0.5)))
	inv := a.Invert()
	p := Vec2{X: 17, Y: -4}
	roundTrip := inv.Apply(a.Apply(p))
	if !approxVec(roundTrip, p, 1e-6) {
		t.Errorf("Invert round trip: got %+v, want %+v", roundTrip, p)
	}
}

func TestAffineInvertSingularReturnsIdentity(t *testing.T) {
	singular := AffineTransform{M: Mat2x2{A: 0, B: 0, C: 0, D: 0}}
	inv := singular.Invert()
	if inv.M != IdentityMat2x2() {
		t.Errorf("Invert of a singular matrix should fall back to identity, got %+v", inv.M)
	}
}

func TestDecomposeIdentity(t *testing.T) {
	translation, scale, skew, rotation := Decompose(Identity())
	if translation != (Vec2{}) || scale != (Vec2{X: 1, Y: 1}) || skew != 0 || rotation != 0 {
		t.Errorf("Decompose(identity) = (%+v, %+v, %v, %v)", translation, scale, skew, rotation)
	}
}

func TestDecomposeZeroMatrixDoesNotPanic(t *testing.T) {
	zero := AffineTransform{M: Mat2x2{}}
	translation, scale, skew, rotation := Decompose(zero)
	if scale != (Vec2{}) || skew != 0 {
		t.Errorf("Decompose of a zero matrix should yield zero scale/skew, got scale=%+v skew=%v", scale, skew)
	}
	_ = translation
	_ = rotation
}

func TestDecomposeScaleRoundTrip(t *testing.T) {
	a := Scale(3, 7)
	_, scale, _, _ := Decompose(a)
	if math.Abs(scale.X-3) > 1e-9 || math.Abs(scale.Y-7) > 1e-9 {
		t.Errorf("Decompose scale: got %+v, want (3,7)", scale)
	}
}

func TestOrthoMapsCornersToClipSpace(t *testing.T) {
	m := Ortho(200, 100)
	top := FromAffine(Identity())
	combined := m.Mul(top)
	origin := apply4(combined, Vec2{X: 0, Y: 0})
	if math.Abs(origin.X-(-1)) > 1e-9 || math.Abs(origin.Y-1) > 1e-9 {
		t.Errorf("Ortho should map (0,0) to (-1,1), got %+v", origin)
	}
	farCorner := apply4(combined, Vec2{X: 200, Y: 100})
	if math.Abs(farCorner.X-1) > 1e-9 || math.Abs(farCorner.Y-(-1)) > 1e-9 {
		t.Errorf("Ortho should map (w,h) to (1,-1), got %+v", farCorner)
	}
}

// apply4 applies a Mat4 built from FromAffine/Ortho composition to a 2D
// point, mirroring how a vertex shader would consume it.
func apply4(m Mat4, p Vec2) Vec2 {
	x := m[0]*p.X + m[1]*p.Y + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[7]
	return Vec2{X: x, Y: y}
}
