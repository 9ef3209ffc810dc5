package stroke

import (
	"math"
	"testing"
)

func boundsOf(points []Vec2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

func TestContourZeroWidthProducesNoGeometry(t *testing.T) {
	points := []Vec2{{0, 0}, {10, 0}}
	tris, _ := Contour(points, false, Style{Width: 0}, DashState{})
	if tris != nil {
		t.Errorf("expected no geometry for zero width, got %d points", len(tris))
	}
}

func TestContourSingleEdgeBoundsMatchHalfWidth(t *testing.T) {
	style := Style{Width: 10, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
	points := []Vec2{{0, 0}, {100, 0}}
	tris, _ := Contour(points, false, style, DashState{OnDash: true, RemainingLen: math.Inf(1)})
	if len(tris) == 0 {
		t.Fatal("expected stroke triangles for a straight open edge")
	}
	minX, minY, maxX, maxY := boundsOf(tris)
	if math.Abs(minX-0) > 1e-9 || math.Abs(maxX-100) > 1e-9 {
		t.Errorf("unexpected X bounds: [%v, %v]", minX, maxX)
	}
	if math.Abs(minY-(-5)) > 1e-9 || math.Abs(maxY-5) > 1e-9 {
		t.Errorf("unexpected Y bounds (expected +/-halfWidth=5): [%v, %v]", minY, maxY)
	}
}

func TestContourMiterJoinExceedsLimitFallsBackToBevel(t *testing.T) {
	// A very sharp turn (nearly reversing direction) should exceed any
	// reasonable miter limit and fall back to a bevel rather than
	// producing an unbounded spike.
	style := Style{Width: 2, Cap: CapButt, Join: JoinMiter, MiterLimit: 1.05}
	points := []Vec2{{0, 0}, {10, 0}, {0.1, 0.1}}
	tris, _ := Contour(points, false, style, DashState{OnDash: true, RemainingLen: math.Inf(1)})
	_, _, maxX, _ := boundsOf(tris)
	if maxX > 11 {
		t.Errorf("miter fallback should bound geometry near the polyline, got maxX=%v", maxX)
	}
}

func TestContourClosedHasNoCaps(t *testing.T) {
	style := Style{Width: 4, Cap: CapSquare, Join: JoinBevel, MiterLimit: 4}
	points := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	open, _ := Contour(points, false, style, DashState{OnDash: true, RemainingLen: math.Inf(1)})
	closed, _ := Contour(points, true, style, DashState{OnDash: true, RemainingLen: math.Inf(1)})
	// The closed contour has one more edge (the closing edge) and no cap
	// geometry, so it isn't simply "open plus caps"; both should at least
	// produce non-empty geometry.
	if len(open) == 0 || len(closed) == 0 {
		t.Fatal("expected non-empty geometry for both open and closed contours")
	}
}

func TestEmitJoinMiterExtendsPastHalfWidth(t *testing.T) {
	// A right-angle turn: halfWidth=1, theta=90 degrees, so the miter
	// tip should sit at distance halfWidth/sin(theta/2) = sqrt(2) from
	// the join point, not collapse onto it.
	out := emitJoin(nil, Vec2{0, 0}, Vec2{0, -1}, Vec2{1, 0}, JoinMiter, 4, 1)
	if len(out) == 0 {
		t.Fatal("expected miter join geometry")
	}
	best := 0.0
	for _, v := range out {
		if d := v.length(); d > best {
			best = d
		}
	}
	want := math.Sqrt2
	if math.Abs(best-want) > 1e-6 {
		t.Errorf("farthest miter join vertex is at distance %v from the join point, want %v (halfWidth/sin(theta/2))", best, want)
	}
}

func TestEmitJoinColinearProducesNothing(t *testing.T) {
	out := emitJoin(nil, Vec2{0, 0}, Vec2{0, 5}, Vec2{0, 5}, JoinBevel, 4, 5)
	if len(out) != 0 {
		t.Errorf("colinear perpendiculars should not emit join geometry, got %d points", len(out))
	}
}
