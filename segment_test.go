package stencilvg

import "testing"

func TestNewSegmentIsCorner(t *testing.T) {
	s := NewSegment(Vec2{X: 1, Y: 2})
	if !s.IsCorner() {
		t.Error("a segment built by NewSegment should be a corner")
	}
	s.HandleOut = Vec2{X: 5, Y: 5}
	if s.IsCorner() {
		t.Error("a segment with a displaced handle should not be a corner")
	}
}

func TestCubicIntoUsesOutgoingThenIncomingHandle(t *testing.T) {
	a := Segment{Position: Vec2{X: 0, Y: 0}, HandleOut: Vec2{X: 1, Y: 0}}
	b := Segment{Position: Vec2{X: 10, Y: 0}, HandleIn: Vec2{X: 9, Y: 0}}
	p0, h0, h1, p1 := cubicInto(a, b)
	if p0 != a.Position || h0 != a.HandleOut || h1 != b.HandleIn || p1 != b.Position {
		t.Errorf("cubicInto: got (%v, %v, %v, %v)", p0, h0, h1, p1)
	}
}
