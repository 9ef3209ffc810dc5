package stencilvg

import (
	"sort"
	"sync/atomic"
)

// GradientType selects a gradient's geometry (§3, §4.D).
type GradientType int

const (
	GradientLinear GradientType = iota
	GradientRadial
)

// GradientStop is one color stop in a gradient's ramp (§3).
type GradientStop struct {
	Offset float64
	Color  Color
}

// gradientIDCounter is the monotonic id source backing Gradient.ID.
// The original source's equivalent counter is explicitly noted (§9, §5)
// as not thread-safe; this implementation makes it atomic for
// multi-producer safety as the design note requires.
var gradientIDCounter atomic.Int64

// Gradient is a linear or radial gradient paint (§3). Origin/Destination
// define the gradient axis for both types; Ratio and FocalPointOffset are
// meaningful only for radial gradients.
type Gradient struct {
	id int64

	Type        GradientType
	Origin      Vec2
	Destination Vec2

	// Radial-only fields.
	Ratio            float64 // minor/major axis ratio
	FocalPointOffset Vec2    // relative to Origin

	stops []GradientStop
	dirty bool
}

// NewLinearGradient creates a linear gradient from origin to destination.
func NewLinearGradient(origin, destination Vec2) *Gradient {
	return &Gradient{
		id:          gradientIDCounter.Add(1),
		Type:        GradientLinear,
		Origin:      origin,
		Destination: destination,
		dirty:       true,
	}
}

// NewRadialGradient creates a radial gradient whose major semi-axis runs
// from origin to destination, with the given minor/major axis ratio and
// focal point offset relative to origin.
func NewRadialGradient(origin, destination Vec2, ratio float64, focalOffset Vec2) *Gradient {
	return &Gradient{
		id:               gradientIDCounter.Add(1),
		Type:             GradientRadial,
		Origin:           origin,
		Destination:      destination,
		Ratio:            ratio,
		FocalPointOffset: focalOffset,
		dirty:            true,
	}
}

// ID returns the gradient's monotonically assigned identity, used for
// cache invalidation (§3, §4.E).
func (g *Gradient) ID() int64 { return g.id }

// AddStop appends a color stop and marks the gradient dirty so its ramp
// texture is regenerated on next use.
func (g *Gradient) AddStop(offset float64, c Color) {
	g.stops = append(g.stops, GradientStop{Offset: offset, Color: c})
	g.dirty = true
}

// Stops returns the raw, unfinalized stop list.
func (g *Gradient) Stops() []GradientStop { return g.stops }

// IsDirty reports whether the gradient's ramp needs regeneration.
func (g *Gradient) IsDirty() bool { return g.dirty }

// clearDirty marks the gradient's ramp as up to date.
func (g *Gradient) clearDirty() { g.dirty = false }

// FinalizedStops returns the stop list with duplicates (identical offset)
// dropped, sorted ascending by offset, and endpoints synthesized at 0 and
// 1 if missing by copying the nearest existing color (§3).
func (g *Gradient) FinalizedStops() []GradientStop {
	if len(g.stops) == 0 {
		return nil
	}

	sorted := make([]GradientStop, len(g.stops))
	copy(sorted, g.stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	deduped := sorted[:0:0]
	for i, s := range sorted {
		if i > 0 && s.Offset == sorted[i-1].Offset {
			deduped[len(deduped)-1] = s // last writer for a duplicate offset wins
			continue
		}
		deduped = append(deduped, s)
	}

	if deduped[0].Offset > 0 {
		deduped = append([]GradientStop{{Offset: 0, Color: deduped[0].Color}}, deduped...)
	}
	if last := deduped[len(deduped)-1]; last.Offset < 1 {
		deduped = append(deduped, GradientStop{Offset: 1, Color: last.Color})
	}
	return deduped
}
