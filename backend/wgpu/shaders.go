// Package wgpu implements stencilvg/backend.Backend on top of
// github.com/gogpu/wgpu/hal, following the stencil-then-cover pipeline
// layout the teacher's internal/gpu package uses for path rendering
// (stencil_pipeline.go, stencil_renderer.go), generalized from a single
// fixed fill/cover pair into the four-pass fill+stroke pipeline set
// SPEC_FULL.md's rasterizer section describes, and from one fixed-color
// shader into a solid/textured-ramp pair.
package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed solid.wgsl
var solidShaderSource string

//go:embed ramp.wgsl
var rampShaderSource string

// vertexStrideSolid is the byte stride of a solid-program vertex:
// float32x2 position.
const vertexStrideSolid = 8

// vertexStrideTextured is the byte stride of a textured-program vertex:
// float32x2 position + float32 tc.
const vertexStrideTextured = 12

// validateShaders cross-compiles both embedded WGSL programs through
// naga at backend-init time, catching a malformed shader before any GPU
// resource is created rather than at first draw.
func validateShaders() error {
	if _, err := naga.Compile(solidShaderSource); err != nil {
		return fmt.Errorf("validate solid.wgsl: %w", err)
	}
	if _, err := naga.Compile(rampShaderSource); err != nil {
		return fmt.Errorf("validate ramp.wgsl: %w", err)
	}
	return nil
}
