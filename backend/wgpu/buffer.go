package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// growableVertexBuffer is a vertex buffer that grows by doubling and
// orphans (recreates) its GPU storage on expansion rather than resizing
// in place, following the buffer-orphaning streaming pattern the source
// vocabulary calls for in §6 ("growable upload with orphaning on size
// expansion").
type growableVertexBuffer struct {
	device   hal.Device
	queue    hal.Queue
	buf      hal.Buffer
	capacity uint64
}

func newGrowableVertexBuffer(device hal.Device, queue hal.Queue) *growableVertexBuffer {
	return &growableVertexBuffer{device: device, queue: queue}
}

// upload writes data to the buffer, orphaning (destroying and recreating
// with doubled capacity) when the existing buffer is too small.
func (b *growableVertexBuffer) upload(data []byte) error {
	needed := uint64(len(data))
	if needed > b.capacity {
		newCap := b.capacity
		if newCap == 0 {
			newCap = 4096
		}
		for newCap < needed {
			newCap *= 2
		}
		if b.buf != nil {
			b.device.DestroyBuffer(b.buf)
		}
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "stencilvg_vertices", Size: newCap,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("grow vertex buffer to %d bytes: %w", newCap, err)
		}
		b.buf = buf
		b.capacity = newCap
	}
	if len(data) == 0 {
		return nil
	}
	if err := b.queue.WriteBuffer(b.buf, 0, data); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	return nil
}

func (b *growableVertexBuffer) destroy() {
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
		b.capacity = 0
	}
}

// rampTexture wraps the backend's 1D gradient ramp texture, sampler, and
// the view used to bind it in the textured program's bind group.
type rampTexture struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
}

const rampSamples = 1024

func newRampTexture(device hal.Device) (*rampTexture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "stencilvg_ramp",
		Size:          gputypes.Extent3D{Width: rampSamples, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension1D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create ramp texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "stencilvg_ramp_view", Format: gputypes.TextureFormatRGBA8Unorm,
		Dimension: gputypes.TextureViewDimension1D,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create ramp texture view: %w", err)
	}
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "stencilvg_ramp_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
	})
	if err != nil {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create ramp sampler: %w", err)
	}
	return &rampTexture{device: device, texture: tex, view: view, sampler: sampler}, nil
}

// upload writes rgba (4 float32 components per sample, 0..1 range) into
// the ramp texture as RGBA8Unorm.
func (r *rampTexture) upload(queue hal.Queue, rgba []float32) error {
	pixels := make([]byte, rampSamples*4)
	for i := 0; i < rampSamples && i*4+3 < len(rgba); i++ {
		pixels[i*4+0] = floatToUnorm8(rgba[i*4+0])
		pixels[i*4+1] = floatToUnorm8(rgba[i*4+1])
		pixels[i*4+2] = floatToUnorm8(rgba[i*4+2])
		pixels[i*4+3] = floatToUnorm8(rgba[i*4+3])
	}
	return queue.WriteTexture(
		hal.ImageCopyTexture{Texture: r.texture},
		pixels,
		hal.ImageDataLayout{Offset: 0, BytesPerRow: rampSamples * 4, RowsPerImage: 1},
		gputypes.Extent3D{Width: rampSamples, Height: 1, DepthOrArrayLayers: 1},
	)
}

func floatToUnorm8(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(math.Round(float64(v) * 255))
}

func (r *rampTexture) destroy() {
	r.device.DestroySampler(r.sampler)
	r.device.DestroyTextureView(r.view)
	r.device.DestroyTexture(r.texture)
}

// encodeUniform packs the shared viewport header (and, for the solid
// program, a trailing color) into the byte layout both WGSL programs
// expect: vec2 viewport + vec2 padding [+ vec4 color].
func encodeUniform(viewportW, viewportH float32, color *[4]float32) []byte {
	size := 16
	if color != nil {
		size += 16
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(viewportW))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(viewportH))
	if color != nil {
		for i, c := range color {
			binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], math.Float32bits(c))
		}
	}
	return buf
}
