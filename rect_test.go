package stencilvg

import "testing"

func TestRectUnionAndAddPoint(t *testing.T) {
	r := EmptyRect()
	r = r.AddPoint(Vec2{X: 1, Y: 2}).AddPoint(Vec2{X: -1, Y: 5})
	if r.Min != (Vec2{X: -1, Y: 2}) || r.Max != (Vec2{X: 1, Y: 5}) {
		t.Errorf("unexpected rect after AddPoint: %+v", r)
	}
	other := NewRect(Vec2{X: 10, Y: 10}, Vec2{X: 20, Y: 0})
	union := r.Union(other)
	if union.Min != (Vec2{X: -1, Y: 0}) || union.Max != (Vec2{X: 20, Y: 10}) {
		t.Errorf("unexpected union: %+v", union)
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 10, Y: 10}}
	got := r.Expand(5)
	want := Rect{Min: Vec2{X: -5, Y: -5}, Max: Vec2{X: 15, Y: 15}}
	if got != want {
		t.Errorf("Expand: got %+v, want %+v", got, want)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if !EmptyRect().IsEmpty() {
		t.Error("EmptyRect() should report IsEmpty()")
	}
	if (Rect{Max: Vec2{X: 1, Y: 1}}).IsEmpty() {
		t.Error("a rect with positive extent should not report IsEmpty()")
	}
}

func TestRectCornersWinding(t *testing.T) {
	r := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 10, Y: 20}}
	corners := r.Corners()
	want := [4]Vec2{{X: 10, Y: 0}, {X: 10, Y: 20}, {X: 0, Y: 20}, {X: 0, Y: 0}}
	if corners != want {
		t.Errorf("Corners: got %+v, want %+v", corners, want)
	}
}
