package stencilvg

import (
	"github.com/gogpu/stencilvg/internal/flatten"
	"github.com/gogpu/stencilvg/internal/gradientfan"
	"github.com/gogpu/stencilvg/internal/stroke"
)

// ContourSpan records where one contour's fill and stroke geometry lives
// within a RenderCache's flat vertex buffer (§3).
type ContourSpan struct {
	FillOffset, FillCount     int
	StrokeOffset, StrokeCount int
	Closed                    bool
}

// GradientVertex is one vertex of a gradient fan: a render position and a
// 1D texture coordinate into the gradient's ramp.
type GradientVertex struct {
	Pos Vec2
	Tc  float64
}

// RenderCache is the single write-once-per-draw object a Path (or a
// free-standing cache) builds to hand a drawable snapshot to a backend
// (§3, §4.E). Vertices holds, per contour, the fill polyline vertices
// followed by that contour's stroke triangles, and after all contours a
// single bounds quad at BoundsVertexOffset. Joint has one entry per fill
// polyline vertex, in order.
type RenderCache struct {
	Contours []ContourSpan
	Vertices []Vec2
	Joint    []bool

	GradientFanFill   []GradientVertex
	GradientFanStroke []GradientVertex

	FillBounds, StrokeBounds Rect
	BoundsVertexOffset       int

	Style        Style
	RenderMatrix Mat4

	// Caching-policy bookkeeping for a path's internal cache (§4.E).
	built                   bool
	lastTransformScale      float64
	lastScaleStroke         bool
	lastFillGradientID      int64
	lastFillGradientDirty   bool
	lastStrokeGradientID    int64
	lastStrokeGradientDirty bool
}

// NewRenderCache returns an empty, unbuilt render cache.
func NewRenderCache() *RenderCache {
	return &RenderCache{}
}

// CompatibleWith reports whether this cache's stored render matrix
// matches mat by value, which is how the original source decides a
// free-standing cache can be redrawn from a different frame without
// rebuilding (§3 SUPPLEMENTED FEATURES).
func (rc *RenderCache) CompatibleWith(mat Mat4) bool {
	return rc.RenderMatrix == mat
}

// dirtyFlags is the per-aspect dirty computation of §4.E.
type dirtyFlags struct {
	geometryDirty        bool
	strokeDirty           bool
	fillGradientDirty     bool
	strokeGradientDirty   bool
	markAllContoursDirty  bool
}

func (rc *RenderCache) computeDirty(path *Path, style Style, transformScale float64) dirtyFlags {
	var d dirtyFlags
	if !rc.built {
		d.geometryDirty = true
		d.strokeDirty = true
		d.fillGradientDirty = true
		d.strokeGradientDirty = true
		d.markAllContoursDirty = true
		return d
	}

	transformChanged := rc.lastTransformScale != transformScale
	if transformChanged {
		d.geometryDirty = true
		if absFloat(rc.lastTransformScale-transformScale) > 1e-3 || style.ScaleStroke != rc.lastScaleStroke {
			d.markAllContoursDirty = true
		}
	}
	if style.ScaleStroke != rc.lastScaleStroke && style.HasStroke() {
		d.markAllContoursDirty = true
		d.geometryDirty = true
		d.strokeDirty = true
	}
	if !strokeAffectingEqual(rc.Style, style) {
		d.strokeDirty = true
	}
	if path.IsGeometryDirty() {
		d.geometryDirty = true
	}

	if style.Fill.Kind == PaintGradient {
		g := style.Fill.Gradient
		if rc.lastFillGradientID != g.ID() || g.IsDirty() {
			d.fillGradientDirty = true
		}
	} else if rc.Style.Fill.Kind == PaintGradient {
		d.fillGradientDirty = true
	}
	if style.Stroke.Kind == PaintGradient {
		g := style.Stroke.Gradient
		if rc.lastStrokeGradientID != g.ID() || g.IsDirty() {
			d.strokeGradientDirty = true
		}
	} else if rc.Style.Stroke.Kind == PaintGradient {
		d.strokeGradientDirty = true
	}

	return d
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// closingEpsilon is the tolerance used to decide whether a closed
// contour needs an implicit closing cubic (§3).
const closingEpsilon = 1e-6

// buildCubicSpans converts a contour's segments (already in the cache's
// render space) into the cubic spans the flattener consumes, appending
// the implicit closing span when the contour is closed and its endpoints
// differ (§3, §9).
func buildCubicSpans(c *Contour, transform AffineTransform) []flatten.Cubic {
	if !c.HasGeometry() {
		return nil
	}
	spans := make([]flatten.Cubic, 0, len(c.Segments))
	tf := func(v Vec2) flatten.Vec2 {
		p := transform.Apply(v)
		return flatten.Vec2{X: p.X, Y: p.Y}
	}
	for i := 0; i < len(c.Segments)-1; i++ {
		p0, h0, h1, p1 := cubicInto(c.Segments[i], c.Segments[i+1])
		spans = append(spans, flatten.Cubic{P0: tf(p0), H0: tf(h0), H1: tf(h1), P1: tf(p1)})
	}
	if c.NeedsClosingCubic(closingEpsilon) {
		last := c.Segments[len(c.Segments)-1]
		first := c.Segments[0]
		p0, h0, h1, p1 := cubicInto(last, first)
		spans = append(spans, flatten.Cubic{P0: tf(p0), H0: tf(h0), H1: tf(h1), P1: tf(p1)})
	}
	return spans
}

// flattenTolerance returns τ per §4.B: 0.15/transformScale when the style
// scales its stroke with the transform, else a fixed 0.15.
func flattenTolerance(style Style, transformScale float64) float64 {
	if style.ScaleStroke && transformScale > 1e-9 {
		return 0.15 / transformScale
	}
	return 0.15
}

// Build performs a full rebuild of the cache from path's current
// contours and style, in the given render-space transform. Per §6,
// cachePath always performs a full rebuild (it "skips dirty checks");
// drawPath's incremental-reuse path also funnels into Build today — this
// module always rebuilds the full cache rather than reusing per-contour
// spans, a deliberate scope reduction from the per-contour reuse the
// policy describes (recorded in DESIGN.md).
func (rc *RenderCache) Build(path *Path, style Style, transform AffineTransform, renderMatrix Mat4, transformScale float64) {
	rc.Contours = rc.Contours[:0]
	rc.Vertices = rc.Vertices[:0]
	rc.Joint = rc.Joint[:0]
	rc.GradientFanFill = nil
	rc.GradientFanStroke = nil

	fillBounds := EmptyRect()
	strokeBounds := EmptyRect()

	tol := flattenTolerance(style, transformScale)
	halfWidth := style.StrokeWidth / 2
	strokeStyle := stroke.Style{
		Width:      style.StrokeWidth,
		Cap:        stroke.LineCap(style.StrokeCap),
		Join:       stroke.LineJoin(style.StrokeJoin),
		MiterLimit: style.MiterLimit,
	}
	if style.Dash.IsDashed() {
		strokeStyle.DashArray = style.Dash.effectiveArray()
	}
	dashState := stroke.DashState{OnDash: true}
	if style.Dash.IsDashed() {
		start := StartDashState(style.Dash)
		dashState = stroke.DashState{Index: start.Index, OnDash: start.OnDash, RemainingLen: start.RemainingLen}
	}

	for _, c := range path.contours {
		if !c.HasGeometry() {
			rc.Contours = append(rc.Contours, ContourSpan{Closed: c.Closed})
			continue
		}
		spans := buildCubicSpans(c, transform)
		verts, bounds := flatten.Contour(spans, tol, !c.Closed)

		fillOffset := len(rc.Vertices)
		for _, v := range verts {
			p := Vec2{X: v.Pos.X, Y: v.Pos.Y}
			rc.Vertices = append(rc.Vertices, p)
			rc.Joint = append(rc.Joint, v.Joint)
			fillBounds = fillBounds.AddPoint(p)
		}
		fillCount := len(verts)
		_ = bounds

		strokeOffset := len(rc.Vertices)
		strokeCount := 0
		if style.HasStroke() {
			points := make([]stroke.Vec2, len(verts))
			for i, v := range verts {
				points[i] = stroke.Vec2{X: v.Pos.X, Y: v.Pos.Y}
			}
			tris, next := stroke.Contour(points, c.Closed, strokeStyle, dashState)
			dashState = next
			for i := 0; i < len(tris); i++ {
				p := Vec2{X: tris[i].X, Y: tris[i].Y}
				rc.Vertices = append(rc.Vertices, p)
				strokeBounds = strokeBounds.AddPoint(p)
			}
			strokeCount = len(tris)
		}

		rc.Contours = append(rc.Contours, ContourSpan{
			FillOffset: fillOffset, FillCount: fillCount,
			StrokeOffset: strokeOffset, StrokeCount: strokeCount,
			Closed: c.Closed,
		})
	}

	if fillBounds.IsEmpty() {
		fillBounds = Rect{}
	}
	if strokeBounds.IsEmpty() {
		if style.HasStroke() {
			strokeBounds = fillBounds.Expand(strokeBoundsExpansion(style, halfWidth))
		} else {
			strokeBounds = fillBounds
		}
	}

	rc.BoundsVertexOffset = len(rc.Vertices)
	bq := fillBounds
	if style.HasStroke() {
		bq = fillBounds.Union(strokeBounds)
	}
	rc.Vertices = append(rc.Vertices,
		Vec2{X: bq.Max.X, Y: bq.Min.Y},
		Vec2{X: bq.Max.X, Y: bq.Max.Y},
		Vec2{X: bq.Min.X, Y: bq.Max.Y},
		Vec2{X: bq.Min.X, Y: bq.Min.Y},
	)

	if style.Fill.Kind == PaintGradient {
		rc.GradientFanFill = buildGradientFan(style.Fill.Gradient, bq)
		rc.lastFillGradientID = style.Fill.Gradient.ID()
	}
	if style.Stroke.Kind == PaintGradient {
		rc.GradientFanStroke = buildGradientFan(style.Stroke.Gradient, bq)
		rc.lastStrokeGradientID = style.Stroke.Gradient.ID()
	}

	rc.FillBounds = fillBounds
	rc.StrokeBounds = strokeBounds
	rc.Style = style.Clone()
	rc.RenderMatrix = renderMatrix
	rc.lastTransformScale = transformScale
	rc.lastScaleStroke = style.ScaleStroke
	rc.built = true

	path.clearDirty()
}

// strokeBoundsExpansion returns the per-side expansion of fillBounds a
// stroke of the given style produces (§8 testable property): half the
// stroke width, or the miter-limit-scaled half-width for miter joins.
func strokeBoundsExpansion(style Style, halfWidth float64) float64 {
	if style.StrokeJoin == JoinMiter {
		limited := style.MiterLimit * halfWidth
		if limited > halfWidth {
			return limited
		}
	}
	return halfWidth
}

func buildGradientFan(g *Gradient, bounds Rect) []GradientVertex {
	fanBounds := gradientfan.Rect{MinX: bounds.Min.X, MinY: bounds.Min.Y, MaxX: bounds.Max.X, MaxY: bounds.Max.Y}
	var verts []gradientfan.Vertex
	switch g.Type {
	case GradientLinear:
		verts = gradientfan.LinearFan(fanBounds,
			gradientfan.Vec2{X: g.Origin.X, Y: g.Origin.Y},
			gradientfan.Vec2{X: g.Destination.X, Y: g.Destination.Y})
	case GradientRadial:
		a := g.Destination.Sub(g.Origin)
		b := a.Perp().Mul(g.Ratio)
		focal := g.Origin.Add(g.FocalPointOffset)
		verts, _ = gradientfan.RadialFan(fanBounds,
			gradientfan.Vec2{X: g.Origin.X, Y: g.Origin.Y},
			gradientfan.Vec2{X: a.X, Y: a.Y},
			gradientfan.Vec2{X: b.X, Y: b.Y},
			gradientfan.Vec2{X: focal.X, Y: focal.Y})
	}
	out := make([]GradientVertex, len(verts))
	for i, v := range verts {
		out[i] = GradientVertex{Pos: Vec2{X: v.Pos.X, Y: v.Pos.Y}, Tc: v.Tc}
	}
	return out
}

// Ramp renders a gradient's 1024-sample color ramp (§4.D) and clears the
// gradient's dirty flag. It resamples the stops on every call; no ramp is
// cached between calls.
func Ramp(g *Gradient) []Color {
	stops := g.FinalizedStops()
	gfStops := make([]gradientfan.Stop, len(stops))
	for i, s := range stops {
		gfStops[i] = gradientfan.Stop{Offset: s.Offset, Color: gradientfan.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A}}
	}
	ramp := gradientfan.BuildRamp(gfStops)
	out := make([]Color, len(ramp))
	for i, c := range ramp {
		out[i] = Color{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	g.clearDirty()
	return out
}
