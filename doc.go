// Package stencilvg implements the CPU-side core of a stencil-buffer vector
// graphics rasterizer: path and style state, adaptive curve flattening,
// stroke tessellation, gradient fan construction, and a stencil-based
// clipping and fill pipeline driven through a pluggable GPU backend.
//
// # Overview
//
// A [Path] holds one or more [Contour]s built from a turtle-style API
// ([Path.MoveTo], [Path.LineTo], [Path.CubicCurveTo], [Path.ArcTo], ...).
// Drawing a path with a [Style] flattens its contours into polylines,
// optionally tessellates a stroke, optionally builds a gradient fan, and
// assembles the result into a [RenderCache] that a [backend.Backend]
// consumes through a [Context].
//
// # Coordinate system
//
// Origin (0,0) is top-left; X increases right, Y increases down, matching
// the orthographic projection built by [Ortho].
//
// # Backends
//
// This package never talks to a GPU directly. It depends only on the
// [github.com/gogpu/stencilvg/backend.Backend] capability interface;
// backend/wgpu provides the one shipped implementation.
package stencilvg
