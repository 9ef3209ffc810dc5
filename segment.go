package stencilvg

// Segment is one control point of a contour's implied cubic spline:
// handleIn and handleOut are absolute control point positions (not
// relative offsets), and position is the on-curve anchor (§3). Between
// consecutive segments s_i, s_{i+1} the implied cubic has control points
// (s_i.Position, s_i.HandleOut, s_{i+1}.HandleIn, s_{i+1}.Position).
type Segment struct {
	HandleIn  Vec2
	Position  Vec2
	HandleOut Vec2
}

// NewSegment builds a segment whose handles coincide with its position,
// i.e. a corner point with no incoming/outgoing curvature.
func NewSegment(p Vec2) Segment {
	return Segment{HandleIn: p, Position: p, HandleOut: p}
}

// IsCorner reports whether this segment's handles coincide with its
// position, meaning the adjoining cubic is linear on this end.
func (s Segment) IsCorner() bool {
	return s.HandleIn == s.Position && s.HandleOut == s.Position
}

// cubicInto returns the four control points of the cubic Bézier implied
// by s (the segment at the start of the span) and next (the segment at
// its end).
func cubicInto(s, next Segment) (p0, h0, h1, p1 Vec2) {
	return s.Position, s.HandleOut, next.HandleIn, next.Position
}
