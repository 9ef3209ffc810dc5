package stencilvg

import "math"

// Rect is an axis-aligned rectangle, Min the top-left corner and Max the
// bottom-right corner. Used throughout for fill/stroke bounds (§3, §4.E)
// and paint bounding quads (§4.D).
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a rectangle from two corner points, normalized so
// Min <= Max on both axes.
func NewRect(p1, p2 Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Vec2{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// EmptyRect returns a rectangle with inverted bounds, suitable as the
// starting accumulator for a sequence of Union calls.
func EmptyRect() Rect {
	return Rect{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Width returns the rectangle's width.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the rectangle's height.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// IsEmpty reports whether the rectangle has negative extent (Max below
// Min) on either axis; a zero-extent rectangle is not empty.
func (r Rect) IsEmpty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Vec2{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Vec2{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// AddPoint expands r to include p.
func (r Rect) AddPoint(p Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Expand grows the rectangle by amount on every side.
func (r Rect) Expand(amount float64) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - amount, Y: r.Min.Y - amount},
		Max: Vec2{X: r.Max.X + amount, Y: r.Max.Y + amount},
	}
}

// Contains reports whether p lies within the rectangle, inclusive of edges.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corners returns the four corners in the order maxX-minY, maxX-maxY,
// minX-maxY, minX-minY, matching the winding the radial gradient fan (§4.D)
// walks the paint bounds in.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Min.Y},
	}
}

// ApproxEqual reports whether r and other match within epsilon on every edge.
func (r Rect) ApproxEqual(other Rect, epsilon float64) bool {
	return r.Min.Approx(other.Min, epsilon) && r.Max.Approx(other.Max, epsilon)
}
