package stencilvg

// LineCap determines how an open contour's stroke ends are drawn (§4.C).
type LineCap int

const (
	CapButt LineCap = iota
	CapSquare
	CapRound
)

// LineJoin determines how two stroke segments meet at a vertex (§4.C).
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// FillRule selects the stencil algorithm used to rasterize a fill (§4.G).
type FillRule int

const (
	FillRuleEvenOdd FillRule = iota
	FillRuleNonZero
)

// Style bundles fill/stroke paint and stroke parameters for a draw call (§3).
type Style struct {
	Fill   Paint
	Stroke Paint

	StrokeWidth float64
	StrokeCap   LineCap
	StrokeJoin  LineJoin
	FillRule    FillRule
	MiterLimit  float64

	Dash Dash

	// ScaleStroke selects the flattening tolerance (§4.A, §4.B) and takes
	// part in the render cache's dirty checks. RenderCache.Build always
	// transforms the path before stroking it, so StrokeWidth is in
	// transformed units and does not scale with the transform, whether
	// or not ScaleStroke is set.
	ScaleStroke bool
}

// DefaultStyle returns a style with a solid black fill, no stroke, even-odd
// fill rule, and a 1-unit miter-limited stroke width (unused unless Stroke
// is set to a non-None paint).
func DefaultStyle() Style {
	return Style{
		Fill:        ColorPaint(Black),
		Stroke:      NonePaint(),
		StrokeWidth: 1,
		StrokeCap:   CapButt,
		StrokeJoin:  JoinMiter,
		FillRule:    FillRuleEvenOdd,
		MiterLimit:  4,
		ScaleStroke: true,
	}
}

// Clone deep-copies the style, including its dash array.
func (s Style) Clone() Style {
	clone := s
	clone.Dash = s.Dash.Clone()
	return clone
}

// HasStroke reports whether this style draws a stroke at all.
func (s Style) HasStroke() bool {
	return s.Stroke.Kind != PaintNone && s.StrokeWidth > 0
}

// HasFill reports whether this style draws a fill at all.
func (s Style) HasFill() bool {
	return s.Fill.Kind != PaintNone
}

// strokeAffectingEqual reports whether two styles are equal in every
// field that affects stroke tessellation, used by the render cache's
// strokeDirty rule (§4.E).
func strokeAffectingEqual(a, b Style) bool {
	return a.StrokeWidth == b.StrokeWidth &&
		a.StrokeCap == b.StrokeCap &&
		a.StrokeJoin == b.StrokeJoin &&
		a.MiterLimit == b.MiterLimit &&
		a.ScaleStroke == b.ScaleStroke &&
		dashArraysEqual(a.Dash, b.Dash)
}

func dashArraysEqual(a, b Dash) bool {
	if a.Offset != b.Offset || len(a.Array) != len(b.Array) {
		return false
	}
	for i := range a.Array {
		if a.Array[i] != b.Array[i] {
			return false
		}
	}
	return true
}
