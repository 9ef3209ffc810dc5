package stencilvg

// PaintKind tags the variant held by a Paint (§3, §9: union payloads
// become tagged sum types rather than C-style unions).
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintGradient
)

// Paint is a tagged union of {None, Color, Gradient} (§3).
type Paint struct {
	Kind     PaintKind
	Color    Color
	Gradient *Gradient
}

// NonePaint returns a paint that draws nothing.
func NonePaint() Paint { return Paint{Kind: PaintNone} }

// ColorPaint returns a solid-color paint.
func ColorPaint(c Color) Paint { return Paint{Kind: PaintColor, Color: c} }

// GradientPaint returns a paint backed by a gradient.
func GradientPaint(g *Gradient) Paint { return Paint{Kind: PaintGradient, Gradient: g} }
