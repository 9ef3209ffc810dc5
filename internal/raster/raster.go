// Package raster defines the stencil-buffer bit allocation shared by every
// path drawn in a frame, and the pipeline-selection logic that picks
// stencil ops from a fill rule and clip state (§4.G).
package raster

// Stencil plane bit allocation. An 8-bit stencil buffer is shared by every
// path drawn in a frame; bits 0-4 hold fill-raster coverage (at least 2
// bits are required for non-zero increment/decrement-wrap accumulation to
// avoid wrapping before a cover pass resets it), bits 5 and 6 are the two
// clip planes swapped by the clipping stack, and bit 7 holds stroke
// coverage so a fill and its stroke never contend for the same bits.
const (
	FillRasterMask  uint8 = 0b0001_1111 // bits 0-4
	ClipOneMask     uint8 = 0b0010_0000 // bit 5
	ClipTwoMask     uint8 = 0b0100_0000 // bit 6
	StrokeRasterMask uint8 = 0b1000_0000 // bit 7
)

// StencilOp mirrors the small set of stencil operations §4.G requires,
// independent of any concrete GPU API's enum (kept here so backend/wgpu
// and any future backend share one vocabulary).
type StencilOp int

const (
	OpKeep StencilOp = iota
	OpZero
	OpReplace
	OpInvert
	OpIncrementWrap
	OpDecrementWrap
)

// CompareFunc mirrors the stencil comparison functions §4.G requires.
type CompareFunc int

const (
	CompareAlways CompareFunc = iota
	CompareEqual
	CompareNotEqual
)

// ClipPlane identifies which of the two clip bits currently holds the
// active clip mask (§3 ClippingStack.currentClipPlane).
type ClipPlane int

const (
	ClipPlaneOne ClipPlane = iota
	ClipPlaneTwo
)

func (p ClipPlane) mask() uint8 {
	if p == ClipPlaneOne {
		return ClipOneMask
	}
	return ClipTwoMask
}

// Other returns the clip plane not currently active.
func (p ClipPlane) Other() ClipPlane {
	if p == ClipPlaneOne {
		return ClipPlaneTwo
	}
	return ClipPlaneOne
}

func (p ClipPlane) Mask() uint8 { return p.mask() }

// FillRule selects which stencil ops the fill pass uses.
type FillRule int

const (
	FillRuleEvenOdd FillRule = iota
	FillRuleNonZero
)

// FillPassConfig is the stencil configuration for one fill-raster pass:
// front/back face stencil ops (only differ under non-zero with culling
// disabled so both faces accumulate), the comparison function and
// reference/mask used when clipping predicates the draw.
type FillPassConfig struct {
	FrontOp      StencilOp
	BackOp       StencilOp
	CullBackFace bool // false for every pass FillPass builds; non-zero relies on two-sided ops, not culling

	CompareFunc CompareFunc
	CompareMask uint8
	CompareRef  uint8

	// WriteMask restricts FrontOp/BackOp to the bits of the stencil byte
	// this pass is allowed to modify, so a fill-raster write, a
	// stroke-raster write, and a clip-mask write never stomp on each
	// other's bits even though they all share one 8-bit stencil buffer.
	WriteMask uint8
}

// FillPass returns the stencil configuration for a fill pass under the
// given fill rule, predicated on the given clip plane when clipDepth > 0
// (§4.G "Draw predication").
func FillPass(rule FillRule, clipDepth int, activeClip ClipPlane) FillPassConfig {
	cfg := FillPassConfig{CompareFunc: CompareAlways, WriteMask: FillRasterMask}
	switch rule {
	case FillRuleEvenOdd:
		cfg.FrontOp, cfg.BackOp = OpInvert, OpInvert
	case FillRuleNonZero:
		cfg.FrontOp, cfg.BackOp = OpIncrementWrap, OpDecrementWrap
		cfg.CullBackFace = false
	}
	if clipDepth > 0 {
		cfg.CompareFunc = CompareEqual
		cfg.CompareRef = 0
		cfg.CompareMask = activeClip.Other().Mask()
	}
	return cfg
}

// CoverPassConfig is the stencil configuration for a cover pass: test the
// raster plane for non-zero coverage, then zero (fill) or invert (stroke)
// the bits it consumed.
type CoverPassConfig struct {
	CompareFunc CompareFunc
	CompareMask uint8
	PassOp      StencilOp
	WriteMask   uint8
}

// FillCoverPass returns the cover-pass configuration for a fill: test
// FILL_RASTER != 0, zero it as it draws.
func FillCoverPass() CoverPassConfig {
	return CoverPassConfig{CompareFunc: CompareNotEqual, CompareMask: FillRasterMask, PassOp: OpZero, WriteMask: FillRasterMask}
}

// StrokeFillPass returns the stencil configuration for the stroke-raster
// write pass: a plain REPLACE, predicated on the active clip plane when
// clipping is active.
func StrokeFillPass(clipDepth int, activeClip ClipPlane) FillPassConfig {
	cfg := FillPassConfig{FrontOp: OpReplace, BackOp: OpReplace, CompareFunc: CompareAlways, WriteMask: StrokeRasterMask}
	if clipDepth > 0 {
		cfg.CompareFunc = CompareEqual
		cfg.CompareRef = 0
		cfg.CompareMask = activeClip.Other().Mask()
	}
	return cfg
}

// ClipMaskPass returns the stencil configuration for writing a clip path
// into target: INVERT on both faces for even-odd, increment/decrement-wrap
// for non-zero, restricted to target's bit so the write never touches the
// fill-raster, stroke-raster, or other clip plane's bits (§4.G).
func ClipMaskPass(rule FillRule, target ClipPlane) FillPassConfig {
	cfg := FillPassConfig{CompareFunc: CompareAlways, WriteMask: target.Mask()}
	switch rule {
	case FillRuleNonZero:
		cfg.FrontOp, cfg.BackOp = OpIncrementWrap, OpDecrementWrap
	default:
		cfg.FrontOp, cfg.BackOp = OpInvert, OpInvert
	}
	return cfg
}

// StrokeCoverPass returns the cover-pass configuration for a stroke: test
// STROKE_RASTER != 0, invert (zero) it as it draws.
func StrokeCoverPass() CoverPassConfig {
	return CoverPassConfig{CompareFunc: CompareNotEqual, CompareMask: StrokeRasterMask, PassOp: OpInvert, WriteMask: StrokeRasterMask}
}
