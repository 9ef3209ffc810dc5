package stencilvg

import "math"

// kappaCircle is the standard cubic-Bézier control-handle length for
// approximating a quarter circle: 4/3·(√2 − 1).
const kappaCircle = 0.5522847498307936

// MoveTo starts a new contour at p and makes it current.
func (p *Path) MoveTo(pt Vec2) {
	clearError()
	p.AddContour([]Segment{NewSegment(pt)}, false)
}

// LineTo appends a straight segment from the current point to pt. It
// fails with BuilderMisuse if no MoveTo has been issued on the current contour.
func (p *Path) LineTo(pt Vec2) bool {
	clearError()
	c := p.current()
	if c == nil || len(c.Segments) == 0 {
		return setError(BuilderMisuse, "LineTo called before MoveTo")
	}
	c.Segments = append(c.Segments, NewSegment(pt))
	c.markDirty()
	p.geometryDirty = true
	return true
}

// CubicCurveTo appends a cubic Bézier span from the current point to p,
// with h0 as the outgoing handle of the current point and h1 as the
// incoming handle of p.
func (p *Path) CubicCurveTo(h0, h1, pt Vec2) bool {
	clearError()
	c := p.current()
	if c == nil || len(c.Segments) == 0 {
		return setError(BuilderMisuse, "CubicCurveTo called before MoveTo")
	}
	last := len(c.Segments) - 1
	c.Segments[last].HandleOut = h0
	c.Segments = append(c.Segments, Segment{HandleIn: h1, Position: pt, HandleOut: pt})
	c.markDirty()
	p.geometryDirty = true
	return true
}

// QuadraticCurveTo appends a quadratic Bézier span from the current point
// to p with control point h, converted to an exact cubic by elevation
// (§6): h0 = p0 + 2/3·(h−p0), h1 = p + 2/3·(h−p).
func (p *Path) QuadraticCurveTo(h, pt Vec2) bool {
	clearError()
	c := p.current()
	if c == nil || len(c.Segments) == 0 {
		return setError(BuilderMisuse, "QuadraticCurveTo called before MoveTo")
	}
	p0 := c.Segments[len(c.Segments)-1].Position
	h0 := p0.Add(h.Sub(p0).Mul(2.0 / 3.0))
	h1 := pt.Add(h.Sub(pt).Mul(2.0 / 3.0))
	return p.CubicCurveTo(h0, h1, pt)
}

// Close marks the current contour as closed.
func (p *Path) Close() bool {
	clearError()
	c := p.current()
	if c == nil || len(c.Segments) == 0 {
		return setError(BuilderMisuse, "Close called before MoveTo")
	}
	c.Closed = true
	c.markDirty()
	p.geometryDirty = true
	return true
}

// ArcTo appends an SVG endpoint-parameterized elliptical arc from the
// current point to (x, y), approximated by up to four cubic Bézier
// segments each spanning at most 90° (§6).
func (p *Path) ArcTo(rx, ry, rotDegrees float64, largeArcFlag, sweepFlag bool, x, y float64) bool {
	clearError()
	c := p.current()
	if c == nil || len(c.Segments) == 0 {
		return setError(BuilderMisuse, "ArcTo called before MoveTo")
	}
	p0 := c.Segments[len(c.Segments)-1].Position
	p1 := Vec2{X: x, Y: y}

	if rx == 0 || ry == 0 {
		return p.LineTo(p1)
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotDegrees * math.Pi / 180

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx2, dy2 := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	sign := 1.0
	if largeArcFlag == sweepFlag {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = sign * math.Sqrt(num/den)
	}
	cxp := coef * (rx * y1p / ry)
	cyp := coef * (-ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		a := math.Acos(clamp(dot/lenProd, -1, 1))
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)

	if !sweepFlag && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweepFlag && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	segCount := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if segCount < 1 {
		segCount = 1
	}
	delta := dtheta / float64(segCount)
	t := theta1

	for i := 0; i < segCount; i++ {
		t2 := t + delta
		kappa := 4.0 / 3.0 * math.Tan(delta/4)

		cosT, sinT := math.Cos(t), math.Sin(t)
		cosT2, sinT2 := math.Cos(t2), math.Sin(t2)

		startX := cx + rx*cosT*cosPhi - ry*sinT*sinPhi
		startY := cy + rx*cosT*sinPhi + ry*sinT*cosPhi
		endX := cx + rx*cosT2*cosPhi - ry*sinT2*sinPhi
		endY := cy + rx*cosT2*sinPhi + ry*sinT2*cosPhi

		dStartX := -rx*sinT*cosPhi - ry*cosT*sinPhi
		dStartY := -rx*sinT*sinPhi + ry*cosT*cosPhi
		dEndX := -rx*sinT2*cosPhi - ry*cosT2*sinPhi
		dEndY := -rx*sinT2*sinPhi + ry*cosT2*cosPhi

		h0 := Vec2{X: startX + kappa*dStartX, Y: startY + kappa*dStartY}
		h1 := Vec2{X: endX - kappa*dEndX, Y: endY - kappa*dEndY}
		end := Vec2{X: endX, Y: endY}

		if !p.CubicCurveTo(h0, h1, end) {
			return false
		}
		t = t2
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddRect adds a closed rectangular contour with corners (x,y) and
// (x+w, y+h), wound clockwise starting at the top-left.
func (p *Path) AddRect(x, y, w, h float64) {
	clearError()
	p.AddContour([]Segment{
		NewSegment(Vec2{X: x, Y: y}),
		NewSegment(Vec2{X: x + w, Y: y}),
		NewSegment(Vec2{X: x + w, Y: y + h}),
		NewSegment(Vec2{X: x, Y: y + h}),
	}, true)
}

// AddEllipse adds a closed elliptical contour centered at (cx, cy) with
// the given radii, built from four cubic segments with the standard
// circle-approximation handle length κ = 0.5522847498 (§6).
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	clearError()
	kx, ky := rx*kappaCircle, ry*kappaCircle
	segs := []Segment{
		{HandleIn: Vec2{X: cx - kx, Y: cy - ry}, Position: Vec2{X: cx, Y: cy - ry}, HandleOut: Vec2{X: cx + kx, Y: cy - ry}},
		{HandleIn: Vec2{X: cx + rx, Y: cy - ky}, Position: Vec2{X: cx + rx, Y: cy}, HandleOut: Vec2{X: cx + rx, Y: cy + ky}},
		{HandleIn: Vec2{X: cx + kx, Y: cy + ry}, Position: Vec2{X: cx, Y: cy + ry}, HandleOut: Vec2{X: cx - kx, Y: cy + ry}},
		{HandleIn: Vec2{X: cx - rx, Y: cy + ky}, Position: Vec2{X: cx - rx, Y: cy}, HandleOut: Vec2{X: cx - rx, Y: cy - ky}},
	}
	p.AddContour(segs, true)
}

// AddCircle adds a closed circular contour centered at (cx, cy) with
// radius r.
func (p *Path) AddCircle(cx, cy, r float64) {
	p.AddEllipse(cx, cy, r, r)
}
