package stencilvg

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/stencilvg/backend"
	"github.com/gogpu/stencilvg/internal/raster"
)

// ContextOption configures a Context during creation (§6, following the
// teacher's functional-options pattern in options.go).
type ContextOption func(*contextOptions)

type contextOptions struct {
	backend  backend.Backend
	maxClip  int
}

func defaultOptions() contextOptions {
	return contextOptions{maxClip: MaxClipDepth}
}

// WithBackend sets the rasterization backend a Context drives. Required:
// NewContext fails with BackendInitFailure if no backend is supplied.
func WithBackend(b backend.Backend) ContextOption {
	return func(o *contextOptions) { o.backend = b }
}

// WithClipDepth caps the clipping stack's depth below the package default
// of [MaxClipDepth]. Values above MaxClipDepth are clamped down to it.
func WithClipDepth(depth int) ContextOption {
	return func(o *contextOptions) {
		if depth > 0 && depth <= MaxClipDepth {
			o.maxClip = depth
		}
	}
}

// WithLogger installs l as the package-wide logger for the lifetime of
// the process, equivalent to calling [SetLogger] before constructing the
// Context.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		SetLogger(l)
	}
}

// Context drives one frame-sequenced drawing session against a
// rasterization backend (§6): transform/projection state, the internal
// per-path render cache, and the clipping stack.
type Context struct {
	backend backend.Backend

	projection Mat4
	transform  AffineTransform

	clipping    *ClippingStack
	maxClipDepth int

	frameOpen bool
}

// NewContext creates a Context bound to the backend supplied via
// [WithBackend] (required), initializing its shader programs and GPU
// resources. Returns (nil, false) with BackendInitFailure recorded on
// init failure.
func NewContext(opts ...ContextOption) (*Context, bool) {
	clearError()
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		return nil, setError(BackendInitFailure, "NewContext: no backend supplied (use WithBackend)")
	}
	if err := o.backend.Init(); err != nil {
		return nil, setError(BackendInitFailure, "backend init: %v", err)
	}
	ctx := &Context{
		backend:      o.backend,
		projection:   IdentityMat4(),
		transform:    Identity(),
		clipping:     NewClippingStack(),
		maxClipDepth: o.maxClip,
	}
	Logger().Info("context created")
	return ctx, true
}

// Close releases the backend's GPU resources. The Context must not be
// used afterward.
func (ctx *Context) Close() {
	ctx.backend.Close()
}

// BeginFrame backs up backend pipeline state and opens a new frame (§6).
// Draw calls are only valid between BeginFrame and EndFrame.
func (ctx *Context) BeginFrame(viewportWidth, viewportHeight float32) {
	clearError()
	ctx.backend.SaveState()
	ctx.backend.SetViewport(viewportWidth, viewportHeight)
	ctx.frameOpen = true
	Logger().Debug("beginFrame", "width", viewportWidth, "height", viewportHeight)
}

// EndFrame restores backend pipeline state, regardless of any mid-frame
// error (§7: "framebuffer state is always restored by endFrame").
func (ctx *Context) EndFrame() {
	ctx.backend.RestoreState()
	ctx.frameOpen = false
	Logger().Debug("endFrame")
}

// SetProjection installs the view/projection matrix used to derive each
// draw's render matrix.
func (ctx *Context) SetProjection(m Mat4) {
	ctx.projection = m
}

// SetTransform installs the current model transform.
func (ctx *Context) SetTransform(a AffineTransform) {
	ctx.transform = a
}

// ResetTransform resets the model transform to identity.
func (ctx *Context) ResetTransform() {
	ctx.transform = Identity()
}

// renderMatrix returns the combined projection*transform matrix a cache
// build is keyed against, and the transform's uniform scale factor used
// by the flattening-tolerance and scale-stroke rules of §4.B.
func (ctx *Context) renderMatrix() (Mat4, float64) {
	rm := ctx.projection.Mul(FromAffine(ctx.transform))
	_, scale, _, _ := Decompose(ctx.transform)
	s := scale.X
	if scale.Y > s {
		s = scale.Y
	}
	return rm, s
}

// pathCache lazily allocates and returns path's internal render cache.
func pathCache(path *Path) *RenderCache {
	if path.cache == nil {
		path.cache = NewRenderCache()
	}
	return path.cache
}

// DrawPath draws path with style using its internal cache, rebuilding
// only the aspects [RenderCache.computeDirty] reports dirty; this module
// always performs a full rebuild when anything is dirty rather than
// reusing unaffected per-contour spans (documented on
// [RenderCache.Build] and in DESIGN.md).
func (ctx *Context) DrawPath(path *Path, style Style) bool {
	clearError()
	rc := pathCache(path)
	rm, scale := ctx.renderMatrix()
	dirty := rc.computeDirty(path, style, scale)
	if dirty.geometryDirty || dirty.strokeDirty || dirty.fillGradientDirty || dirty.strokeGradientDirty || !rc.CompatibleWith(rm) {
		rc.Build(path, style, ctx.transform, rm, scale)
	}
	return ctx.DrawRenderCache(rc)
}

// CachePath explicitly (re)builds cache from path and style, always
// performing a full rebuild regardless of dirty state (§6: "skips dirty
// checks — always full rebuild").
func (ctx *Context) CachePath(path *Path, style Style, cache *RenderCache) {
	clearError()
	rm, scale := ctx.renderMatrix()
	cache.Build(path, style, ctx.transform, rm, scale)
}

// DrawRenderCache replays a previously built cache: a stencil write per
// contour followed by one cover draw for the fill, then the same for the
// stroke, predicated against the active clip plane when clipping is
// nested (§4.G).
func (ctx *Context) DrawRenderCache(rc *RenderCache) bool {
	clearError()
	if !ctx.frameOpen {
		return setError(InvalidHandle, "DrawRenderCache called outside a frame")
	}
	clipDepth := ctx.clipping.Depth()
	activeClip := ctx.clipping.CurrentClipPlane()

	if rc.Style.HasFill() {
		ctx.drawFill(rc, clipDepth, activeClip)
	}
	if rc.Style.HasStroke() {
		ctx.drawStroke(rc, clipDepth, activeClip)
	}
	return true
}

func (ctx *Context) bindPaint(p Paint) {
	switch p.Kind {
	case PaintColor:
		ctx.backend.BindProgram(backend.ProgramSolid, [4]float32{
			float32(p.Color.R), float32(p.Color.G), float32(p.Color.B), float32(p.Color.A),
		})
	case PaintGradient:
		ramp := Ramp(p.Gradient)
		rgba := make([]float32, len(ramp)*4)
		for i, c := range ramp {
			rgba[i*4+0] = float32(c.R)
			rgba[i*4+1] = float32(c.G)
			rgba[i*4+2] = float32(c.B)
			rgba[i*4+3] = float32(c.A)
		}
		if err := ctx.backend.UploadRampTexture(rgba); err != nil {
			setError(AllocationFailure, "upload ramp texture: %v", err)
			return
		}
		ctx.backend.BindProgram(backend.ProgramTextured, [4]float32{})
	}
}

func (ctx *Context) drawFill(rc *RenderCache, clipDepth int, activeClip raster.ClipPlane) {
	cfg := raster.FillPass(raster.FillRule(rc.Style.FillRule), clipDepth, activeClip)
	for _, span := range rc.Contours {
		if span.FillCount < 3 {
			continue
		}
		verts := flatVec2Slice(rc.Vertices[span.FillOffset : span.FillOffset+span.FillCount])
		n, err := ctx.backend.UploadVertices(verts)
		if err != nil {
			setError(AllocationFailure, "upload fill vertices: %v", err)
			return
		}
		ctx.backend.SetFillStencilState(cfg)
		ctx.backend.SetColorWrite(false)
		ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
	}

	ctx.bindPaint(rc.Style.Fill)
	cover := raster.FillCoverPass()
	ctx.backend.SetCoverStencilState(cover)
	ctx.backend.SetColorWrite(true)
	ctx.backend.SetStencilReference(0)
	if rc.Style.Fill.Kind == PaintGradient && len(rc.GradientFanFill) > 0 {
		verts := gradientVertexSlice(rc.GradientFanFill)
		n, err := ctx.backend.UploadVertices(verts)
		if err == nil {
			ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
		}
		return
	}
	quad := flatVec2Slice(rc.Vertices[rc.BoundsVertexOffset : rc.BoundsVertexOffset+4])
	n, err := ctx.backend.UploadVertices(quad)
	if err != nil {
		setError(AllocationFailure, "upload fill cover quad: %v", err)
		return
	}
	ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
}

func (ctx *Context) drawStroke(rc *RenderCache, clipDepth int, activeClip raster.ClipPlane) {
	cfg := raster.StrokeFillPass(clipDepth, activeClip)
	for _, span := range rc.Contours {
		if span.StrokeCount < 3 {
			continue
		}
		verts := flatVec2Slice(rc.Vertices[span.StrokeOffset : span.StrokeOffset+span.StrokeCount])
		n, err := ctx.backend.UploadVertices(verts)
		if err != nil {
			setError(AllocationFailure, "upload stroke vertices: %v", err)
			return
		}
		ctx.backend.SetFillStencilState(cfg)
		ctx.backend.SetColorWrite(false)
		ctx.backend.DrawArrays(backend.Triangles, 0, n)
	}

	ctx.bindPaint(rc.Style.Stroke)
	cover := raster.StrokeCoverPass()
	ctx.backend.SetCoverStencilState(cover)
	ctx.backend.SetColorWrite(true)
	ctx.backend.SetStencilReference(0)
	if rc.Style.Stroke.Kind == PaintGradient && len(rc.GradientFanStroke) > 0 {
		verts := gradientVertexSlice(rc.GradientFanStroke)
		n, err := ctx.backend.UploadVertices(verts)
		if err == nil {
			ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
		}
		return
	}
	quad := flatVec2Slice(rc.Vertices[rc.BoundsVertexOffset : rc.BoundsVertexOffset+4])
	n, err := ctx.backend.UploadVertices(quad)
	if err != nil {
		setError(AllocationFailure, "upload stroke cover quad: %v", err)
		return
	}
	ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
}

func flatVec2Slice(vs []Vec2) []float32 {
	out := make([]float32, len(vs)*2)
	for i, v := range vs {
		out[i*2+0] = float32(v.X)
		out[i*2+1] = float32(v.Y)
	}
	return out
}

func gradientVertexSlice(vs []GradientVertex) []float32 {
	out := make([]float32, len(vs)*3)
	for i, v := range vs {
		out[i*3+0] = float32(v.Pos.X)
		out[i*3+1] = float32(v.Pos.Y)
		out[i*3+2] = float32(v.Tc)
	}
	return out
}

// BeginClipping pushes path's rendered fill as a new clip plane (§4.G).
// The path is cached (full rebuild) with the given fill rule and style
// defaults, then a deep copy of its cache is pushed onto the clipping
// stack.
func (ctx *Context) BeginClipping(path *Path, fillRule FillRule) bool {
	clearError()
	style := DefaultStyle()
	style.FillRule = fillRule
	rc := NewRenderCache()
	ctx.CachePath(path, style, rc)
	return ctx.BeginClippingFromRenderCache(rc)
}

// BeginClippingFromRenderCache pushes a deep copy of cache as a new clip
// plane without rebuilding it.
func (ctx *Context) BeginClippingFromRenderCache(cache *RenderCache) bool {
	clearError()
	if ctx.clipping.Depth() >= ctx.maxClipDepth {
		return setError(InvalidHandle, "clipping stack overflow (depth %d >= %d)", ctx.clipping.Depth(), ctx.maxClipDepth)
	}
	clone := cloneRenderCache(cache)
	target := ctx.clipping.BeginClipping(clone)

	cfg := raster.ClipMaskPass(raster.FillRule(cache.Style.FillRule), target)
	for _, span := range clone.Contours {
		if span.FillCount < 3 {
			continue
		}
		verts := flatVec2Slice(clone.Vertices[span.FillOffset : span.FillOffset+span.FillCount])
		n, err := ctx.backend.UploadVertices(verts)
		if err != nil {
			setError(AllocationFailure, "upload clip vertices: %v", err)
			return false
		}
		ctx.backend.SetFillStencilState(cfg)
		ctx.backend.SetColorWrite(false)
		ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
	}
	return true
}

// EndClipping pops the innermost clip plane. Per §4.G, this either flips
// the active plane back (cheap), triggers a full clip-mask replay across
// the remaining stack, or clears both clip planes when the stack empties.
func (ctx *Context) EndClipping() {
	clearError()
	result := ctx.clipping.EndClipping()
	switch result.Action {
	case ClipEndRebuild:
		ctx.replayClipStack(result.RebuildCaches)
	case ClipEndClearAll, ClipEndFlip:
		// Nothing further to record: a flip only changes which plane
		// ActiveMask() reports next, and clearing leaves both planes
		// zero until the next BeginClipping writes one.
	}
	Logger().Debug("endClipping", "action", fmt.Sprint(result.Action), "depth", ctx.clipping.Depth())
}

// ResetClipping clears the clipping stack unconditionally.
func (ctx *Context) ResetClipping() {
	ctx.clipping.ResetClipping()
}

// replayClipStack re-emits every clip mask in caches in order, used when
// EndClipping can't cheaply flip back to a previously-written plane.
func (ctx *Context) replayClipStack(caches []*RenderCache) {
	for i, cache := range caches {
		target := raster.ClipPlaneOne
		if i%2 == 1 {
			target = raster.ClipPlaneTwo
		}
		cfg := raster.ClipMaskPass(raster.FillRule(cache.Style.FillRule), target)
		for _, span := range cache.Contours {
			if span.FillCount < 3 {
				continue
			}
			verts := flatVec2Slice(cache.Vertices[span.FillOffset : span.FillOffset+span.FillCount])
			n, err := ctx.backend.UploadVertices(verts)
			if err != nil {
				setError(AllocationFailure, "replay clip vertices: %v", err)
				return
			}
			ctx.backend.SetFillStencilState(cfg)
			ctx.backend.SetColorWrite(false)
			ctx.backend.DrawArrays(backend.TriangleFan, 0, n)
		}
	}
}

// cloneRenderCache deep-copies a render cache so a later mutation of the
// caller's path/cache never affects a pushed clip plane (§5 mutation
// discipline).
func cloneRenderCache(rc *RenderCache) *RenderCache {
	clone := &RenderCache{
		Contours:                append([]ContourSpan(nil), rc.Contours...),
		Vertices:                append([]Vec2(nil), rc.Vertices...),
		Joint:                   append([]bool(nil), rc.Joint...),
		GradientFanFill:         append([]GradientVertex(nil), rc.GradientFanFill...),
		GradientFanStroke:       append([]GradientVertex(nil), rc.GradientFanStroke...),
		FillBounds:              rc.FillBounds,
		StrokeBounds:            rc.StrokeBounds,
		BoundsVertexOffset:      rc.BoundsVertexOffset,
		Style:                   rc.Style.Clone(),
		RenderMatrix:            rc.RenderMatrix,
		built:                   rc.built,
		lastTransformScale:      rc.lastTransformScale,
		lastScaleStroke:         rc.lastScaleStroke,
		lastFillGradientID:      rc.lastFillGradientID,
		lastStrokeGradientID:    rc.lastStrokeGradientID,
	}
	return clone
}
