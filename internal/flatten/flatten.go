// Package flatten implements adaptive recursive subdivision of cubic
// Bézier curves into polylines, using an explicit stack rather than
// native recursion so subdivision depth is bounded without relying on
// call-stack growth.
//
// Vec2 and Cubic are local types (not the root package's) to avoid an
// import cycle — the root package imports this one, mirroring how the
// teacher's internal/stroke package keeps its own Point/Vec2 duplicates
// for the same reason.
package flatten

import "math"

// Vec2 is a 2D point.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) sub(w Vec2) Vec2    { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) lerp(w Vec2, t float64) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Cubic is a cubic Bézier span: P0/P1 on-curve, H0/H1 control handles.
type Cubic struct {
	P0, H0, H1, P1 Vec2
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func emptyRect() Rect {
	return Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (r Rect) addPoint(p Vec2) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X), MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X), MaxY: math.Max(r.MaxY, p.Y),
	}
}

// maxDepth bounds the explicit subdivision stack (§4.B); on exhaustion
// the current sub-curve is emitted as-is rather than subdividing further.
const maxDepth = 16

// Vertex is one output point of a flattened contour plus its joint flag
// (glossary: Joint / joint flag).
type Vertex struct {
	Pos   Vec2
	Joint bool
}

// isFlat applies the §4.B flatness heuristic: with u = 3·h0 − 2·p0 − p1
// and v = 3·h1 − 2·p1 − p0, the curve is flat enough when
// max(u.x², v.x²) + max(u.y², v.y²) < 10·tau². A linear span (handles
// coincide with endpoints) always short-circuits as flat.
func isFlat(c Cubic, tauSq float64) bool {
	if c.H0 == c.P0 && c.H1 == c.P1 {
		return true
	}
	ux := 3*c.H0.X - 2*c.P0.X - c.P1.X
	uy := 3*c.H0.Y - 2*c.P0.Y - c.P1.Y
	vx := 3*c.H1.X - 2*c.P1.X - c.P0.X
	vy := 3*c.H1.Y - 2*c.P1.Y - c.P0.Y
	return math.Max(ux*ux, vx*vx)+math.Max(uy*uy, vy*vy) < 10*tauSq
}

// subdivide splits c at t=0.5 via de Casteljau.
func subdivide(c Cubic) (left, right Cubic) {
	p01 := c.P0.lerp(c.H0, 0.5)
	p12 := c.H0.lerp(c.H1, 0.5)
	p23 := c.H1.lerp(c.P1, 0.5)
	p012 := p01.lerp(p12, 0.5)
	p123 := p12.lerp(p23, 0.5)
	mid := p012.lerp(p123, 0.5)
	return Cubic{P0: c.P0, H0: p01, H1: p012, P1: mid},
		Cubic{P0: mid, H0: p123, H1: p23, P1: c.P1}
}

type frame struct {
	c     Cubic
	depth int
}

// flattenOne emits the endpoints of c's flat subdivisions, in left-to-right
// curve order, appending to out. The starting point P0 is not emitted —
// callers seed the polyline with the contour's first vertex and rely on
// each span's emitted points to continue it.
func flattenOne(c Cubic, tauSq float64, out []Vec2) []Vec2 {
	stack := []frame{{c: c, depth: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth >= maxDepth || isFlat(top.c, tauSq) {
			out = append(out, top.c.P1)
			continue
		}
		left, right := subdivide(top.c)
		// Push right first so left pops next: stack order preserves
		// left-to-right emission despite LIFO popping.
		stack = append(stack, frame{right, top.depth + 1}, frame{left, top.depth + 1})
	}
	return out
}

// Contour flattens a sequence of cubic spans representing one contour
// (consecutive spans share endpoints: span[i].P1 == span[i+1].P0) into a
// polyline with per-vertex joint flags and its bounding box. isOpen
// indicates whether the contour is open; when true, the final emitted
// vertex of the final span is forced to Joint=false, matching the
// contract that joint flags only mark internal transitions, not a
// contour's open end (§4.B).
func Contour(spans []Cubic, tolerance float64, isOpen bool) ([]Vertex, Rect) {
	if len(spans) == 0 {
		return nil, emptyRect()
	}
	tauSq := tolerance * tolerance

	vertices := make([]Vertex, 0, len(spans)*4)
	vertices = append(vertices, Vertex{Pos: spans[0].P0, Joint: false})
	bounds := emptyRect().addPoint(spans[0].P0)

	for i, span := range spans {
		points := flattenOne(span, tauSq, nil)
		for j, p := range points {
			isSpanEnd := j == len(points)-1
			joint := isSpanEnd
			if isOpen && i == len(spans)-1 && isSpanEnd {
				joint = false
			}
			vertices = append(vertices, Vertex{Pos: p, Joint: joint})
			bounds = bounds.addPoint(p)
		}
	}
	return vertices, bounds
}
