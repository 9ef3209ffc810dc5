// Package backend defines the thin rasterization-backend capability set
// a Context drives (§6): two shader programs, a growable vertex buffer,
// a 1D gradient ramp texture, and stencil-test configuration. Concrete
// implementations live in subpackages (backend/wgpu).
package backend

import (
	"github.com/gogpu/stencilvg/internal/raster"
)

// DrawMode selects the primitive topology of a DrawArrays call (§6).
type DrawMode int

const (
	Triangles DrawMode = iota
	TriangleFan
	TriangleStrip
)

// Program selects which of the two shader programs a draw call binds.
type Program int

const (
	// ProgramSolid draws with a single uniform color (the "meshColor"
	// uniform in the source vocabulary).
	ProgramSolid Program = iota
	// ProgramTextured samples the bound 1D ramp texture by the vertex's
	// texture coordinate, for gradient fills/strokes.
	ProgramTextured
)

// Backend is the abstract GPU-facing surface core requires (§6). A
// Context never touches a graphics API directly; every draw call and
// every piece of stencil-test state flows through this interface.
type Backend interface {
	// Init compiles the two shader programs and prepares GPU resources.
	// Implementations return a BackendInitFailure-flavored error wrapped
	// by the caller into the package's error-reporting convention.
	Init() error

	// SetViewport tells the backend the render target size in pixels,
	// used to project vertex positions to clip space in both programs'
	// vertex shaders.
	SetViewport(width, height float32)

	// Close releases every GPU resource the backend owns.
	Close()

	// UploadVertices uploads a span of vertex data (interleaved x, y and,
	// for the textured program, a trailing tc per vertex) starting at
	// buffer offset 0, growing (and orphaning, per §6) the underlying
	// buffer when it isn't large enough. It returns the vertex count
	// available for a subsequent DrawArrays.
	UploadVertices(data []float32) (vertexCount int, err error)

	// UploadRampTexture uploads a gradient's 1024-sample ramp as the
	// backend's 1D texture, with linear filtering and clamp-to-edge.
	UploadRampTexture(rgba []float32) error

	// BindProgram selects the solid or textured program and, for the
	// solid program, sets its uniform color.
	BindProgram(p Program, solidColor [4]float32)

	// SetFillStencilState configures the stencil test for a fill-raster
	// write pass (§4.G).
	SetFillStencilState(cfg raster.FillPassConfig)

	// SetCoverStencilState configures the stencil test for a cover pass
	// (§4.G).
	SetCoverStencilState(cfg raster.CoverPassConfig)

	// SetColorWrite enables or disables color writes for the current
	// pass (disabled during stencil-raster writes, enabled for cover).
	SetColorWrite(enabled bool)

	// SetStencilReference sets the stencil comparison reference value.
	SetStencilReference(ref uint8)

	// DrawArrays issues a draw call over the currently bound vertex
	// buffer.
	DrawArrays(mode DrawMode, first, count int)

	// SaveState / RestoreState back up and restore every piece of GPU
	// pipeline state a frame bracket must not leak across: blend, depth,
	// stencil, cull, front-face winding, bound program, bound buffers
	// (§6 beginFrame/endFrame contract).
	SaveState()
	RestoreState()
}
