// Package gradientfan builds the CPU-side geometry gradient paints need:
// a 1D color ramp texture and the vertex fans that sample it (§4.D).
// Vec2/Rect/Color are local duplicates of the root package's types to
// avoid an import cycle.
package gradientfan

import "math"

type Vec2 struct{ X, Y float64 }

func (v Vec2) add(w Vec2) Vec2    { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) sub(w Vec2) Vec2    { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }
func (v Vec2) cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}
func (v Vec2) lengthSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) length() float64   { return math.Sqrt(v.lengthSq()) }
func (v Vec2) normalize() Vec2 {
	l := v.length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}
func (v Vec2) lerp(w Vec2, t float64) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Corners returns the four corners in the order the radial fan walks
// them: maxX-minY, maxX-maxY, minX-maxY, minX-minY (§4.D).
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
		{r.MinX, r.MaxY},
		{r.MinX, r.MinY},
	}
}

// Color is an RGBA color with components in [0, 1].
type Color struct{ R, G, B, A float64 }

func (c Color) lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Stop is one finalized gradient color stop.
type Stop struct {
	Offset float64
	Color  Color
}

// RampSize is the number of samples in the 1D ramp texture (§4.D).
const RampSize = 1024

// BuildRamp samples stops (already finalized: sorted, deduped, with
// endpoints at 0 and 1) into a fixed-size ramp texture.
func BuildRamp(stops []Stop) []Color {
	ramp := make([]Color, RampSize)
	if len(stops) == 0 {
		return ramp
	}
	if len(stops) == 1 {
		for i := range ramp {
			ramp[i] = stops[0].Color
		}
		return ramp
	}
	seg := 0
	for i := 0; i < RampSize; i++ {
		t := float64(i) / float64(RampSize-1)
		for seg < len(stops)-2 && t > stops[seg+1].Offset {
			seg++
		}
		a, b := stops[seg], stops[seg+1]
		span := b.Offset - a.Offset
		local := 0.0
		if span > 0 {
			local = (t - a.Offset) / span
		}
		ramp[i] = a.Color.lerp(b.Color, clamp01(local))
	}
	return ramp
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vertex is one gradient-fan vertex: a render position and a 1D texture
// coordinate sampling the ramp.
type Vertex struct {
	Pos Vec2
	Tc  float64
}

// LinearFan builds the 4-vertex bounding-quad fan for a linear gradient
// (§4.D). Per-vertex tc is the unnormalized projection of the vertex onto
// origin->destination: tc = (p-origin)·direction / |direction|².
func LinearFan(bounds Rect, origin, destination Vec2) []Vertex {
	direction := destination.sub(origin)
	denom := direction.lengthSq()
	corners := bounds.Corners()
	vertices := make([]Vertex, 0, 4)
	for _, c := range corners {
		tc := 0.0
		if denom > 0 {
			tc = c.sub(origin).dot(direction) / denom
		}
		vertices = append(vertices, Vertex{Pos: c, Tc: tc})
	}
	return vertices
}

// RadialFan builds the triangle fan for a radial gradient (§4.D). origin,
// a and b describe the ellipse transform (E: unit-circle -> ellipse,
// E(u) = origin + a·u.x + b·u.y); focal is the focal point in the same
// space as origin/a/b. The caller is responsible for composing the paint
// transform and (when not using a non-scaling stroke) the context
// transform into origin/a/b/focal before calling this function, so this
// package never has to reason about transform spaces itself.
func RadialFan(bounds Rect, origin, a, b, focal Vec2) (vertices []Vertex, degenerate bool) {
	if a.lengthSq() < 0.1 || b.lengthSq() < 0.1 || math.Abs(a.cross(b)) < 0.1 {
		return degenerateFan(bounds), true
	}
	det := a.X*b.Y - b.X*a.Y
	if det == 0 {
		return degenerateFan(bounds), true
	}
	invDet := 1 / det

	toUnit := func(p Vec2) Vec2 {
		d := p.sub(origin)
		return Vec2{
			X: (b.Y*d.X - b.X*d.Y) * invDet,
			Y: (-a.Y*d.X + a.X*d.Y) * invDet,
		}
	}
	toWorld := func(u Vec2) Vec2 {
		return origin.add(a.mul(u.X)).add(b.mul(u.Y))
	}

	focalPrime := toUnit(focal)
	if focalPrime.length() > 0.999 {
		focalPrime = focalPrime.normalize().mul(0.999)
	}
	focalWorld := toWorld(focalPrime)

	const radialSlices = 64 // step = 2*pi/64 around the unit circle (§4.D)
	vertices = append(vertices, Vertex{Pos: focalWorld, Tc: 0})
	for s := 0; s < radialSlices; s++ {
		phi := 2 * math.Pi * float64(s) / float64(radialSlices)
		dirUnit := Vec2{X: math.Cos(phi), Y: math.Sin(phi)}
		dirWorld := a.mul(dirUnit.X).add(b.mul(dirUnit.Y))
		edgePoint := rayRectExit(focalWorld, dirWorld, bounds)
		u := toUnit(edgePoint)
		rayDir := u.sub(focalPrime)
		tCircle := rayCircleParam(focalPrime, rayDir)
		tc := 1.0
		if tCircle > 1e-6 {
			tc = 1.0 / tCircle
		}
		vertices = append(vertices, Vertex{Pos: edgePoint, Tc: tc})
	}
	return vertices, false
}

// rayRectExit finds where the ray from p in direction d leaves bounds,
// by intersecting with whichever pair of edges d points toward and
// keeping the closer valid crossing (a slab test). Used to walk the
// radial fan's outer ring by uniform angle (§4.D) rather than by
// uniform step along the bounding rectangle's perimeter, matching
// _tpGLGradientRadialGeometry's per-slice ray cast.
func rayRectExit(p, d Vec2, bounds Rect) Vec2 {
	best := math.Inf(1)
	if d.X > 0 {
		if t := (bounds.MaxX - p.X) / d.X; t > 0 && t < best {
			if y := p.Y + t*d.Y; y >= bounds.MinY && y <= bounds.MaxY {
				best = t
			}
		}
	} else if d.X < 0 {
		if t := (bounds.MinX - p.X) / d.X; t > 0 && t < best {
			if y := p.Y + t*d.Y; y >= bounds.MinY && y <= bounds.MaxY {
				best = t
			}
		}
	}
	if d.Y > 0 {
		if t := (bounds.MaxY - p.Y) / d.Y; t > 0 && t < best {
			if x := p.X + t*d.X; x >= bounds.MinX && x <= bounds.MaxX {
				best = t
			}
		}
	} else if d.Y < 0 {
		if t := (bounds.MinY - p.Y) / d.Y; t > 0 && t < best {
			if x := p.X + t*d.X; x >= bounds.MinX && x <= bounds.MaxX {
				best = t
			}
		}
	}
	if math.IsInf(best, 1) {
		return p
	}
	return p.add(d.mul(best))
}

// rayCircleParam solves |f + t·d|² = 1 for the largest positive t, the
// parameter at which a ray from focal point f in direction d reaches the
// unit circle.
func rayCircleParam(f, d Vec2) float64 {
	a := d.dot(d)
	if a == 0 {
		return 1
	}
	b := 2 * f.dot(d)
	c := f.dot(f) - 1
	roots := solveQuadratic(a, b, c)
	best := 0.0
	found := false
	for _, r := range roots {
		if r > 1e-9 && (!found || r > best) {
			best = r
			found = true
		}
	}
	if !found {
		return 1
	}
	return best
}

// degenerateFan emits the bounds quad with tc=1 at every vertex, per the
// degenerate-ellipse rule (§4.D): |a|²<0.1, |b|²<0.1, or |cross(a,b)|<0.1.
func degenerateFan(bounds Rect) []Vertex {
	corners := bounds.Corners()
	center := Vec2{X: (bounds.MinX + bounds.MaxX) / 2, Y: (bounds.MinY + bounds.MaxY) / 2}
	vertices := make([]Vertex, 0, 6)
	vertices = append(vertices, Vertex{Pos: center, Tc: 1})
	for _, c := range corners {
		vertices = append(vertices, Vertex{Pos: c, Tc: 1})
	}
	vertices = append(vertices, Vertex{Pos: corners[0], Tc: 1})
	return vertices
}
