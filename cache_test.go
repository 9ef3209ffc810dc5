package stencilvg

import (
	"math"
	"testing"
)

func rectPath() *Path {
	p := NewPath()
	p.AddRect(0, 0, 100, 50)
	return p
}

func TestRenderCacheBuildIsDeterministic(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	style.Stroke = ColorPaint(Black)
	style.StrokeWidth = 4

	rc1 := NewRenderCache()
	rc1.Build(p, style, Identity(), IdentityMat4(), 1)
	rc2 := NewRenderCache()
	rc2.Build(p, style, Identity(), IdentityMat4(), 1)

	if len(rc1.Vertices) != len(rc2.Vertices) {
		t.Fatalf("vertex count differs between identical builds: %d vs %d", len(rc1.Vertices), len(rc2.Vertices))
	}
	for i := range rc1.Vertices {
		if rc1.Vertices[i] != rc2.Vertices[i] {
			t.Fatalf("vertex %d differs: %+v vs %+v", i, rc1.Vertices[i], rc2.Vertices[i])
		}
	}
}

func TestRenderCacheCompatibleWith(t *testing.T) {
	rc := NewRenderCache()
	rc.Build(rectPath(), DefaultStyle(), Identity(), IdentityMat4(), 1)
	if !rc.CompatibleWith(IdentityMat4()) {
		t.Error("a cache built against IdentityMat4 should be compatible with it")
	}
	other := IdentityMat4()
	other[0] = 2
	if rc.CompatibleWith(other) {
		t.Error("a cache should not be compatible with a different render matrix")
	}
}

func TestComputeDirtyUnbuiltForcesEverything(t *testing.T) {
	rc := NewRenderCache()
	d := rc.computeDirty(rectPath(), DefaultStyle(), 1)
	if !d.geometryDirty || !d.strokeDirty || !d.fillGradientDirty || !d.strokeGradientDirty || !d.markAllContoursDirty {
		t.Errorf("an unbuilt cache should report every dirty flag set, got %+v", d)
	}
}

func TestComputeDirtyCleanAfterBuild(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	d := rc.computeDirty(p, style, 1)
	if d.geometryDirty || d.strokeDirty || d.fillGradientDirty || d.strokeGradientDirty || d.markAllContoursDirty {
		t.Errorf("an up-to-date cache with unchanged path/style should be fully clean, got %+v", d)
	}
}

func TestComputeDirtyTransformScaleChange(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	d := rc.computeDirty(p, style, 2)
	if !d.geometryDirty {
		t.Error("a changed transform scale should mark geometry dirty")
	}
}

func TestComputeDirtyStrokeStyleChange(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	style.StrokeWidth = 10
	style.Stroke = ColorPaint(Black)
	d := rc.computeDirty(p, style, 1)
	if !d.strokeDirty {
		t.Error("changing stroke-affecting style fields should mark strokeDirty")
	}
}

func TestComputeDirtyPathGeometryChange(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	p.LineTo(Vec2{X: 5, Y: 5})
	d := rc.computeDirty(p, style, 1)
	if !d.geometryDirty {
		t.Error("a mutated path should mark geometryDirty")
	}
}

func TestComputeDirtyGradientBecomesDirty(t *testing.T) {
	g := NewLinearGradient(Vec2{}, Vec2{X: 100})
	g.AddStop(0, RGB(1, 0, 0))
	g.AddStop(1, RGB(0, 0, 1))
	style := DefaultStyle()
	style.Fill = GradientPaint(g)

	p := rectPath()
	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	g.AddStop(0.5, RGB(0, 1, 0))
	d := rc.computeDirty(p, style, 1)
	if !d.fillGradientDirty {
		t.Error("re-dirtying the bound fill gradient should mark fillGradientDirty")
	}
}

func TestStrokeBoundsExpansionNonMiter(t *testing.T) {
	style := DefaultStyle()
	style.StrokeJoin = JoinRound
	style.MiterLimit = 10
	if got := strokeBoundsExpansion(style, 5); got != 5 {
		t.Errorf("non-miter expansion should equal halfWidth, got %v", got)
	}
}

func TestStrokeBoundsExpansionMiterExceedsHalfWidth(t *testing.T) {
	style := DefaultStyle()
	style.StrokeJoin = JoinMiter
	style.MiterLimit = 4
	if got := strokeBoundsExpansion(style, 5); got != 20 {
		t.Errorf("miter expansion should be miterLimit*halfWidth = 20, got %v", got)
	}
}

func TestRenderCacheStrokeBoundsExpandFillBounds(t *testing.T) {
	p := rectPath()
	style := DefaultStyle()
	style.Stroke = ColorPaint(Black)
	style.StrokeWidth = 10
	style.StrokeJoin = JoinRound

	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	if rc.StrokeBounds.Min.X > rc.FillBounds.Min.X || rc.StrokeBounds.Max.X < rc.FillBounds.Max.X {
		t.Errorf("stroke bounds %+v should enclose fill bounds %+v", rc.StrokeBounds, rc.FillBounds)
	}
}

func TestRenderCacheMiterJoinBoundsMatchApexExtension(t *testing.T) {
	// A symmetric V with a 90-degree apex at (50,0): the miter tip
	// extends straight up from the apex by halfWidth/sin(45) =
	// halfWidth*sqrt(2), with no x displacement by symmetry. This pins
	// down the actual emitted geometry, not just the analytic fallback
	// strokeBoundsExpansion uses when a contour produces no triangles.
	p := NewPath()
	p.MoveTo(Vec2{X: 0, Y: 50})
	p.LineTo(Vec2{X: 50, Y: 0})
	p.LineTo(Vec2{X: 100, Y: 50})

	style := DefaultStyle()
	style.Stroke = ColorPaint(Black)
	style.StrokeWidth = 10
	style.StrokeJoin = JoinMiter
	style.MiterLimit = 4

	rc := NewRenderCache()
	rc.Build(p, style, Identity(), IdentityMat4(), 1)

	halfWidth := style.StrokeWidth / 2
	wantMinY := 0 - halfWidth*math.Sqrt2
	if math.Abs(rc.StrokeBounds.Min.Y-wantMinY) > 1e-6 {
		t.Errorf("miter apex bound Min.Y = %v, want %v (halfWidth*sqrt(2) above the apex)", rc.StrokeBounds.Min.Y, wantMinY)
	}
}

func TestRenderCacheGradientFanBuiltForGradientFill(t *testing.T) {
	g := NewLinearGradient(Vec2{X: 0}, Vec2{X: 100})
	g.AddStop(0, RGB(1, 0, 0))
	g.AddStop(1, RGB(0, 0, 1))
	style := DefaultStyle()
	style.Fill = GradientPaint(g)

	rc := NewRenderCache()
	rc.Build(rectPath(), style, Identity(), IdentityMat4(), 1)

	if len(rc.GradientFanFill) == 0 {
		t.Fatal("a gradient fill should produce a non-empty gradient fan")
	}
	for _, v := range rc.GradientFanFill {
		if v.Tc < -1e-9 || v.Tc > 1+1e-9 {
			t.Errorf("gradient fan tc out of [0,1] range: %v", v.Tc)
		}
	}
}

func TestRampLengthAndEndpoints(t *testing.T) {
	g := NewLinearGradient(Vec2{}, Vec2{X: 1})
	g.AddStop(0, RGB(1, 0, 0))
	g.AddStop(1, RGB(0, 0, 1))
	ramp := Ramp(g)
	if len(ramp) == 0 {
		t.Fatal("Ramp should produce a non-empty sample set")
	}
	if ramp[0] != RGB(1, 0, 0) {
		t.Errorf("ramp[0] = %+v, want red", ramp[0])
	}
	if g.IsDirty() {
		t.Error("Ramp should clear the gradient's dirty flag")
	}
}

func TestRenderCacheEmptyContourPreservesClosedFlag(t *testing.T) {
	p := NewPath()
	p.MoveTo(Vec2{X: 0, Y: 0})
	p.Close()

	rc := NewRenderCache()
	rc.Build(p, DefaultStyle(), Identity(), IdentityMat4(), 1)
	if len(rc.Contours) != 1 || !rc.Contours[0].Closed {
		t.Errorf("an empty-geometry closed contour should still record Closed=true, got %+v", rc.Contours)
	}
}
