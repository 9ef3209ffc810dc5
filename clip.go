package stencilvg

import (
	"fmt"

	"github.com/gogpu/stencilvg/internal/raster"
)

// MaxClipDepth bounds the clipping stack (§3, §4.G); pushing past it is a
// fatal misuse rather than a silently dropped clip.
const MaxClipDepth = 64

// ClipEndAction tells a caller what GPU work endClipping requires: flip
// the active clip plane back with no redraw, rebuild both clip planes by
// replaying every still-active clip mask, or simply clear both planes
// because no clip remains active (§4.G).
type ClipEndAction int

const (
	ClipEndFlip ClipEndAction = iota
	ClipEndRebuild
	ClipEndClearAll
)

// ClipEndResult is the outcome of endClipping: which action to take, and
// (for ClipEndRebuild) the ordered list of render caches to replay via
// generateClippingMask.
type ClipEndResult struct {
	Action        ClipEndAction
	RebuildCaches []*RenderCache
}

// ClippingStack implements the two-plane clip mask stack of §4.G: at
// most MaxClipDepth nested clips share two physical stencil planes by
// swapping which one holds the "currently active" mask, only falling
// back to a full rebuild when a pop can't simply swap back.
type ClippingStack struct {
	slots            [MaxClipDepth]*RenderCache
	depth            int
	currentClipPlane raster.ClipPlane
	canSwap          bool
}

// NewClippingStack returns an empty clipping stack with plane one active.
func NewClippingStack() *ClippingStack {
	return &ClippingStack{currentClipPlane: raster.ClipPlaneOne}
}

// Depth returns the number of clips currently pushed.
func (cs *ClippingStack) Depth() int { return cs.depth }

// CurrentClipPlane returns the stencil plane the next BeginClipping
// writes into; while a clip is active its mask lives in the other plane
// (see ActiveMask).
func (cs *ClippingStack) CurrentClipPlane() raster.ClipPlane { return cs.currentClipPlane }

// CanSwap reports whether the next endClipping can pop by simply
// flipping the clip plane rather than rebuilding.
func (cs *ClippingStack) CanSwap() bool { return cs.canSwap }

// ActiveMask returns the stencil compare mask a fill-raster draw should
// use when clip depth > 0, per the draw-predication rule in §4.G:
// STENCIL_FUNC = EQUAL, ref = 0, mask = otherClipPlane.
func (cs *ClippingStack) ActiveMask() uint8 {
	return cs.currentClipPlane.Other().Mask()
}

// BeginClipping pushes cache (the pointer itself, not a copy; Context
// passes a clone) onto the stack and returns
// the stencil plane the caller must clear to ~0 and then fill-raster
// the clip path into (§4.G step 1-3). It panics on overflow, matching
// the source's documented treatment of stack overflow as a fatal misuse
// (§9: "implementations must treat it as a fatal misuse").
func (cs *ClippingStack) BeginClipping(cache *RenderCache) raster.ClipPlane {
	if cs.depth >= MaxClipDepth {
		panic(fmt.Sprintf("stencilvg: clipping stack overflow (depth %d >= %d)", cs.depth, MaxClipDepth))
	}
	target := cs.currentClipPlane
	cs.slots[cs.depth] = cache
	cs.depth++
	cs.currentClipPlane = cs.currentClipPlane.Other()
	cs.canSwap = true
	return target
}

// EndClipping pops the most recent clip (§4.G). When the pop can reuse
// the plane swap from the matching BeginClipping, no redraw is needed;
// otherwise the caller must clear both clip planes and replay every
// remaining clip mask in push order.
func (cs *ClippingStack) EndClipping() ClipEndResult {
	if cs.depth == 0 {
		return ClipEndResult{Action: ClipEndClearAll}
	}
	cs.depth--
	cs.slots[cs.depth] = nil

	if cs.depth == 0 {
		cs.currentClipPlane = raster.ClipPlaneOne
		cs.canSwap = false
		return ClipEndResult{Action: ClipEndClearAll}
	}

	if cs.canSwap {
		cs.currentClipPlane = cs.currentClipPlane.Other()
		cs.canSwap = false
		return ClipEndResult{Action: ClipEndFlip}
	}

	// The replay writes slot i into ClipPlaneOne when i is even, so the
	// next push goes to ClipPlaneOne exactly when the depth is even.
	cs.currentClipPlane = raster.ClipPlaneOne
	if cs.depth%2 == 1 {
		cs.currentClipPlane = raster.ClipPlaneTwo
	}

	caches := make([]*RenderCache, cs.depth)
	copy(caches, cs.slots[:cs.depth])
	return ClipEndResult{Action: ClipEndRebuild, RebuildCaches: caches}
}

// ResetClipping clears the stack entirely, matching resetClipping's
// "clear CLIP_*, reset state" contract.
func (cs *ClippingStack) ResetClipping() {
	for i := 0; i < cs.depth; i++ {
		cs.slots[i] = nil
	}
	cs.depth = 0
	cs.currentClipPlane = raster.ClipPlaneOne
	cs.canSwap = false
}
