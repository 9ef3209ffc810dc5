// Package stroke tessellates a flattened polyline into a stroke triangle
// soup: per-edge quads, joins (miter/round/bevel), caps (butt/square/
// round), and dashing. Vec2 is a local duplicate of the root package's
// vector type to avoid an import cycle, following the same pattern the
// teacher's internal/stroke package uses.
package stroke

import "math"

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) add(w Vec2) Vec2    { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) sub(w Vec2) Vec2    { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) length() float64    { return math.Hypot(v.X, v.Y) }
func (v Vec2) normalize() Vec2 {
	l := v.length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}
func (v Vec2) dot(w Vec2) float64   { return v.X*w.X + v.Y*w.Y }
func (v Vec2) cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }
func (v Vec2) lerp(w Vec2, t float64) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// perp rotates d (assumed a unit vector) 90 degrees and scales by halfWidth:
// perp = (d.y, -d.x) * halfWidth (§4.C).
func perp(d Vec2, halfWidth float64) Vec2 {
	return Vec2{d.Y * halfWidth, -d.X * halfWidth}
}

// edgeTangent inverts perp: given an edge's (unnormalized) perpendicular
// offset, returns the unit vector along the edge itself. The outer-edge
// lines a miter join intersects run parallel to their source edges, not
// along the perpendiculars used to build outPrev/outCur.
func edgeTangent(p Vec2) Vec2 {
	return Vec2{-p.Y, p.X}.normalize()
}

// LineCap selects how open-contour stroke ends are drawn.
type LineCap int

const (
	CapButt LineCap = iota
	CapSquare
	CapRound
)

// LineJoin selects how two stroke edges meet at a vertex.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// roundStep is the angular step used by round joins and caps (§4.C).
const roundStep = math.Pi / 16

// Style carries the subset of the public Style relevant to tessellation.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	// DashArray is the effective (even-length) dash pattern, or nil for a
	// solid stroke.
	DashArray []float64
}

// DashState is the "where in the pattern a contour begins" cursor,
// threaded by the caller across contours of one style so a multi-contour
// dashed stroke continues its phase instead of resetting (§3).
type DashState struct {
	Index        int
	OnDash       bool
	RemainingLen float64
}

// Contour tessellates one flattened contour's stroke. points is the
// flattened polyline (already transformed). Every interior polyline
// vertex gets a join; the flattener's joint flags are not passed in and
// play no part in tessellation. dashState is the incoming dash cursor; the returned
// state is the cursor after this contour, for the caller to thread into
// the next one.
func Contour(points []Vec2, closed bool, style Style, dashState DashState) (triangles []Vec2, next DashState) {
	if len(points) < 2 || style.Width <= 0 {
		return nil, dashState
	}
	halfWidth := style.Width / 2
	if len(style.DashArray) == 0 {
		return strokeSolid(points, closed, style, halfWidth), dashState
	}
	return strokeDashed(points, closed, style, halfWidth, dashState)
}

func emitQuad(out []Vec2, a, b, c, d Vec2) []Vec2 {
	return append(out, a, b, c, a, c, d)
}

func emitTriangle(out []Vec2, a, b, c Vec2) []Vec2 {
	return append(out, a, b, c)
}

// edgeCount returns the number of consecutive point pairs of an n-point
// polyline, including the closing edge when closed.
func edgeCount(n int, closed bool) int {
	if closed {
		return n
	}
	return n - 1
}

func edgeAt(points []Vec2, i int, closed bool) (p0, p1 Vec2) {
	n := len(points)
	p0 = points[i%n]
	p1 = points[(i+1)%n]
	return
}

func strokeSolid(points []Vec2, closed bool, style Style, halfWidth float64) []Vec2 {
	n := edgeCount(len(points), closed)
	if n <= 0 {
		return nil
	}
	var out []Vec2

	dirs := make([]Vec2, n)
	perps := make([]Vec2, n)
	for i := 0; i < n; i++ {
		p0, p1 := edgeAt(points, i, closed)
		d := p1.sub(p0).normalize()
		dirs[i] = d
		perps[i] = perp(d, halfWidth)
	}

	for i := 0; i < n; i++ {
		p0, p1 := edgeAt(points, i, closed)
		pr := perps[i]
		out = emitQuad(out, p1.add(pr), p0.add(pr), p0.sub(pr), p1.sub(pr))
	}

	joinStart := 1
	if closed {
		joinStart = 0
	}
	for i := joinStart; i < n; i++ {
		prevIdx := (i - 1 + n) % n
		p0, _ := edgeAt(points, i, closed)
		out = emitJoin(out, p0, perps[prevIdx], perps[i], style.Join, style.MiterLimit, halfWidth)
	}

	if !closed {
		startDir := dirs[0].mul(-1)
		out = emitCap(out, points[0], startDir, perps[0], style.Cap, halfWidth)
		endDir := dirs[n-1]
		out = emitCap(out, points[len(points)-1], endDir, perps[n-1], style.Cap, halfWidth)
	}

	return out
}

// emitJoin appends the join geometry at vertex p between the edge whose
// perpendicular is prevPerp (ending at p) and the edge whose perpendicular
// is curPerp (starting at p) (§4.C).
func emitJoin(out []Vec2, p Vec2, prevPerp, curPerp Vec2, join LineJoin, miterLimit, halfWidth float64) []Vec2 {
	cross := curPerp.cross(prevPerp)
	if math.Abs(cross) < 1e-12 {
		return out // colinear, nothing to fill
	}

	leftPrev := p.add(prevPerp)
	rightPrev := p.sub(prevPerp)
	le := p.add(curPerp)
	re := p.sub(curPerp)

	switch join {
	case JoinBevel:
		side := re
		if cross < 0 {
			side = le
		}
		return emitTriangle(out, leftPrev, side, rightPrev)
	case JoinRound:
		outsidePrev, outsideCur := rightPrev, re
		if cross < 0 {
			outsidePrev, outsideCur = leftPrev, le
		}
		return emitFan(out, p, outsidePrev, outsideCur, halfWidth)
	default: // JoinMiter
		cosTheta := clamp01(prevPerp.normalize().dot(curPerp.normalize()))
		theta := math.Acos(cosTheta)
		if theta < 1e-9 {
			return out
		}
		// theta is the turning angle; the miter ratio uses the angle
		// between the two edges, pi - theta.
		miterLength := 1.0 / math.Sin((math.Pi-theta)/2)
		if miterLength >= miterLimit {
			side := re
			if cross < 0 {
				side = le
			}
			return emitTriangle(out, leftPrev, side, rightPrev)
		}
		outPrev, outCur := rightPrev, re
		if cross < 0 {
			outPrev, outCur = leftPrev, le
		}
		intersection, ok := lineIntersect(outPrev, edgeTangent(prevPerp), outCur, edgeTangent(curPerp))
		if !ok {
			side := re
			if cross < 0 {
				side = le
			}
			return emitTriangle(out, leftPrev, side, rightPrev)
		}
		return emitQuad(out, p, outPrev, intersection, outCur)
	}
}

// emitFan sweeps a round join or cap arc from "from" to "to" around
// center, stepping by roundStep (§4.C).
func emitFan(out []Vec2, center, from, to Vec2, radius float64) []Vec2 {
	v0 := from.sub(center)
	v1 := to.sub(center)
	startAngle := math.Atan2(v0.Y, v0.X)
	endAngle := math.Atan2(v1.Y, v1.X)

	delta := endAngle - startAngle
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}

	steps := int(math.Ceil(math.Abs(delta) / roundStep))
	if steps < 1 {
		steps = 1
	}
	stepAngle := delta / float64(steps)

	last := from
	angle := startAngle
	for i := 1; i <= steps; i++ {
		angle += stepAngle
		var cur Vec2
		if i == steps {
			cur = to
		} else {
			cur = center.add(Vec2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
		}
		out = emitTriangle(out, center, last, cur)
		last = cur
	}
	return out
}

func emitCap(out []Vec2, p Vec2, entryDir Vec2, edgePerp Vec2, cap LineCap, halfWidth float64) []Vec2 {
	switch cap {
	case CapButt:
		return out
	case CapSquare:
		offset := entryDir.mul(halfWidth)
		a := p.add(edgePerp)
		b := a.add(offset)
		d := p.sub(edgePerp)
		c := d.add(offset)
		return emitQuad(out, a, b, c, d)
	default: // CapRound
		return emitFan(out, p, p.add(edgePerp), p.sub(edgePerp), halfWidth)
	}
}

func lineIntersect(p0, d0, p1, d1 Vec2) (Vec2, bool) {
	denom := d0.cross(d1)
	if math.Abs(denom) < 1e-12 {
		return Vec2{}, false
	}
	diff := p1.sub(p0)
	t := diff.cross(d1) / denom
	return p0.add(d0.mul(t)), true
}

func clamp01(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
