package gradientfan

import (
	"math"
	"testing"
)

func TestBuildRampEndpoints(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: Color{R: 1, A: 1}},
		{Offset: 1, Color: Color{B: 1, A: 1}},
	}
	ramp := BuildRamp(stops)
	if len(ramp) != RampSize {
		t.Fatalf("expected %d samples, got %d", RampSize, len(ramp))
	}
	if ramp[0] != stops[0].Color {
		t.Errorf("first sample should equal the first stop, got %+v", ramp[0])
	}
	last := ramp[len(ramp)-1]
	if math.Abs(last.B-1) > 1e-9 || math.Abs(last.R) > 1e-9 {
		t.Errorf("last sample should approach the last stop, got %+v", last)
	}
}

func TestBuildRampSingleStopIsConstant(t *testing.T) {
	ramp := BuildRamp([]Stop{{Offset: 0, Color: Color{G: 1, A: 1}}})
	for i, c := range ramp {
		if c.G != 1 {
			t.Fatalf("sample %d should be constant green, got %+v", i, c)
			break
		}
	}
}

func TestLinearFanMidpointHalfway(t *testing.T) {
	bounds := Rect{MinX: 0, MinY: -10, MaxX: 100, MaxY: 10}
	verts := LinearFan(bounds, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 0})
	for _, v := range verts {
		want := v.Pos.X / 100
		if math.Abs(v.Tc-want) > 1e-9 {
			t.Errorf("vertex %+v: tc=%v, want %v", v.Pos, v.Tc, want)
		}
	}
}

func TestRadialFanCenterTcZero(t *testing.T) {
	// The bounds lie wholly inside the ellipse (corner distance ~42.4 <
	// 50), so every ring vertex sits at or inside the tc=1 boundary; ring
	// vertices beyond the ellipse get tc > 1.
	bounds := Rect{MinX: -30, MinY: -30, MaxX: 30, MaxY: 30}
	verts, degenerate := RadialFan(bounds, Vec2{0, 0}, Vec2{50, 0}, Vec2{0, 50}, Vec2{0, 0})
	if degenerate {
		t.Fatal("a 50-unit-radius ellipse should not be degenerate")
	}
	if verts[0].Tc != 0 {
		t.Errorf("center (focal) vertex must have tc=0, got %v", verts[0].Tc)
	}
	for _, v := range verts[1:] {
		if v.Tc < -1e-3 || v.Tc > 1+1e-3 {
			t.Errorf("ring vertex %+v has tc=%v out of [0,1]", v.Pos, v.Tc)
		}
	}
}

func TestRadialFanDegenerateWhenAxesCollapse(t *testing.T) {
	bounds := Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}
	_, degenerate := RadialFan(bounds, Vec2{0, 0}, Vec2{0.01, 0}, Vec2{0, 0.01}, Vec2{0, 0})
	if !degenerate {
		t.Error("near-zero axis vectors should be reported as a degenerate ellipse")
	}
}

func TestRadialFanRingStepsUniformlyByAngle(t *testing.T) {
	// Off-center focal point: the ring must still advance by a constant
	// angle step in unit-circle space around the focal point, not by a
	// constant fraction of the bounding rectangle's perimeter.
	bounds := Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100}
	a := Vec2{X: 80, Y: 0}
	b := Vec2{X: 0, Y: 80}
	focal := Vec2{X: 40, Y: 0}
	verts, degenerate := RadialFan(bounds, Vec2{0, 0}, a, b, focal)
	if degenerate {
		t.Fatal("expected a non-degenerate ellipse")
	}
	ring := verts[1:]
	if len(ring) != 64 {
		t.Fatalf("expected 64 ring vertices (2*pi/64 step), got %d", len(ring))
	}

	toUnit := func(p Vec2) Vec2 {
		det := a.X*b.Y - b.X*a.Y
		d := p
		return Vec2{
			X: (b.Y*d.X - b.X*d.Y) / det,
			Y: (-a.Y*d.X + a.X*d.Y) / det,
		}
	}
	focalPrime := toUnit(focal)

	const want = 2 * math.Pi / 64
	for i := 1; i < len(ring); i++ {
		u0 := toUnit(ring[i-1].Pos).sub(focalPrime)
		u1 := toUnit(ring[i].Pos).sub(focalPrime)
		a0 := math.Atan2(u0.Y, u0.X)
		a1 := math.Atan2(u1.Y, u1.X)
		delta := a1 - a0
		for delta < 0 {
			delta += 2 * math.Pi
		}
		if math.Abs(delta-want) > 1e-6 {
			t.Errorf("ring step %d: angular delta %v, want %v", i, delta, want)
		}
	}
}

func TestRayCircleParamOutsideCircleYieldsSmallParam(t *testing.T) {
	tParam := rayCircleParam(Vec2{0, 0}, Vec2{2, 0})
	if math.Abs(tParam-0.5) > 1e-9 {
		t.Errorf("ray from origin with direction (2,0) should hit the unit circle at t=0.5, got %v", tParam)
	}
}
