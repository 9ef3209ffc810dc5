package stencilvg

// Contour is a maximal connected run of cubic Bézier segments, open or
// closed (§3, glossary). A contour with fewer than two segments
// contributes no fill or stroke geometry — callers may still build one
// incrementally, but the flattener and stroker treat it as empty.
type Contour struct {
	Segments []Segment
	Closed   bool

	dirty bool // set on any segment mutation; cleared once the cache rebuilds this contour
}

// NewContour builds a contour from a segment slice, taking ownership of it.
func NewContour(segments []Segment, closed bool) *Contour {
	return &Contour{Segments: segments, Closed: closed, dirty: true}
}

// Clone deep-copies the contour.
func (c *Contour) Clone() *Contour {
	segments := make([]Segment, len(c.Segments))
	copy(segments, c.Segments)
	return &Contour{Segments: segments, Closed: c.Closed, dirty: c.dirty}
}

// IsDirty reports whether this contour has been mutated since its cached
// geometry was last rebuilt.
func (c *Contour) IsDirty() bool { return c.dirty }

// markDirty flags the contour (and, via the caller, its owning path) for
// geometry rebuild.
func (c *Contour) markDirty() { c.dirty = true }

// clearDirty resets the dirty bit after a cache rebuild consumes it.
func (c *Contour) clearDirty() { c.dirty = false }

// HasGeometry reports whether the contour has enough segments to produce
// fill or stroke output (§3 invariant: fewer than two segments ⇒ no geometry).
func (c *Contour) HasGeometry() bool { return len(c.Segments) >= 2 }

// NeedsClosingCubic reports whether a closed contour's implicit closing
// span (last segment back to first) should be emitted — only when the
// endpoints differ by more than a small epsilon (§3), and never for a
// contour with fewer than two segments (§9 design note: no close curve
// for under-sized contours, resolving the source's uninitialized-read
// edge case).
func (c *Contour) NeedsClosingCubic(epsilon float64) bool {
	if !c.Closed || len(c.Segments) < 2 {
		return false
	}
	last := c.Segments[len(c.Segments)-1]
	first := c.Segments[0]
	return !last.Position.Approx(first.Position, epsilon)
}

// Path is an ordered sequence of contours plus a "current contour" index
// used by the turtle-style builder API (§3, §6). Mutating any segment or
// contour marks that contour dirty and the path's aggregate geometry dirty.
type Path struct {
	contours             []*Contour
	currentContourIndex  int
	geometryDirty        bool
	cache                *RenderCache // lazily built internal cache, §3 lifecycle
}

// NewPath returns an empty path with no current contour.
func NewPath() *Path {
	return &Path{currentContourIndex: -1, geometryDirty: true}
}

// Contours returns the path's contours in order. The returned slice
// aliases internal storage; callers must not retain it across mutations.
func (p *Path) Contours() []*Contour { return p.contours }

// ContourCount returns the number of contours in the path.
func (p *Path) ContourCount() int { return len(p.contours) }

// Contour returns the contour at index i, or nil if out of range.
func (p *Path) Contour(i int) *Contour {
	if i < 0 || i >= len(p.contours) {
		return nil
	}
	return p.contours[i]
}

// IsGeometryDirty reports whether any contour (or the contour list
// itself) changed since the last cache rebuild.
func (p *Path) IsGeometryDirty() bool {
	if p.geometryDirty {
		return true
	}
	for _, c := range p.contours {
		if c.dirty {
			return true
		}
	}
	return false
}

// clearDirty clears the path-level and every contour-level dirty bit,
// called by the render cache once it finishes a full rebuild.
func (p *Path) clearDirty() {
	p.geometryDirty = false
	for _, c := range p.contours {
		c.clearDirty()
	}
}

// current returns the contour the turtle API is appending to, or nil if
// none has been started (no moveTo yet, or the path is empty).
func (p *Path) current() *Contour {
	if p.currentContourIndex < 0 || p.currentContourIndex >= len(p.contours) {
		return nil
	}
	return p.contours[p.currentContourIndex]
}

// Clone deep-copies every contour. Builder state (current contour index)
// is preserved verbatim; the source notes a double-initialization bug in
// the equivalent C routine (§9) — this copies each contour exactly once.
func (p *Path) Clone() *Path {
	contours := make([]*Contour, len(p.contours))
	for i, c := range p.contours {
		contours[i] = c.Clone()
	}
	return &Path{
		contours:            contours,
		currentContourIndex: p.currentContourIndex,
		geometryDirty:       true,
	}
}

// AddContour appends a new contour built from segments (which the path
// takes ownership of) and makes it the current contour.
func (p *Path) AddContour(segments []Segment, closed bool) *Contour {
	c := NewContour(segments, closed)
	p.contours = append(p.contours, c)
	p.currentContourIndex = len(p.contours) - 1
	p.geometryDirty = true
	return c
}

// SetContour replaces the segments and closed flag of the contour at
// index i in place, so a subsequent read of contour i returns segments
// verbatim (§8 round-trip property).
func (p *Path) SetContour(i int, segments []Segment, closed bool) bool {
	c := p.Contour(i)
	if c == nil {
		return false
	}
	c.Segments = append([]Segment(nil), segments...)
	c.Closed = closed
	c.markDirty()
	p.geometryDirty = true
	return true
}

// RemoveContour deletes the contour at index i. Per the source behavior
// documented in §9, currentContourIndex is left untouched even when the
// removal invalidates it; callers must treat currentContourIndex as
// transient after a removal and issue a fresh moveTo before further
// turtle calls.
func (p *Path) RemoveContour(i int) bool {
	if i < 0 || i >= len(p.contours) {
		return false
	}
	p.contours = append(p.contours[:i], p.contours[i+1:]...)
	p.geometryDirty = true
	return true
}

// RemoveSegment deletes segment j from contour i.
func (p *Path) RemoveSegment(i, j int) bool {
	c := p.Contour(i)
	if c == nil || j < 0 || j >= len(c.Segments) {
		return false
	}
	c.Segments = append(c.Segments[:j], c.Segments[j+1:]...)
	c.markDirty()
	p.geometryDirty = true
	return true
}

// RemoveSegments deletes the half-open range [from, to) of segments from
// contour i.
func (p *Path) RemoveSegments(i, from, to int) bool {
	c := p.Contour(i)
	if c == nil || from < 0 || to > len(c.Segments) || from > to {
		return false
	}
	c.Segments = append(c.Segments[:from], c.Segments[to:]...)
	c.markDirty()
	p.geometryDirty = true
	return true
}

// Bounds returns the axis-aligned bounding box of every on-curve and
// handle point across all contours. Used by callers that need an
// approximate extent without flattening (the exact fill/stroke bounds
// come from the render cache once built).
func (p *Path) Bounds() Rect {
	r := EmptyRect()
	any := false
	for _, c := range p.contours {
		for _, s := range c.Segments {
			r = r.AddPoint(s.Position).AddPoint(s.HandleIn).AddPoint(s.HandleOut)
			any = true
		}
	}
	if !any {
		return Rect{}
	}
	return r
}
