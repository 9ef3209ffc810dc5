package stencilvg

import (
	"testing"

	"github.com/gogpu/stencilvg/internal/raster"
)

func TestClippingStackBeginClippingFlipsPlane(t *testing.T) {
	cs := NewClippingStack()
	before := cs.CurrentClipPlane()
	target := cs.BeginClipping(NewRenderCache())
	if target != before {
		t.Errorf("BeginClipping should return the plane that was active before the push, got %v want %v", target, before)
	}
	if cs.CurrentClipPlane() == before {
		t.Error("BeginClipping should flip the active clip plane")
	}
	if cs.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", cs.Depth())
	}
	if !cs.CanSwap() {
		t.Error("a freshly pushed clip should be swappable on pop")
	}
}

func TestClippingStackEndClippingSingleLevelClearsAll(t *testing.T) {
	cs := NewClippingStack()
	cs.BeginClipping(NewRenderCache())
	result := cs.EndClipping()
	if result.Action != ClipEndClearAll {
		t.Errorf("popping the last clip should clear all, got %v", result.Action)
	}
	if cs.Depth() != 0 {
		t.Errorf("Depth() after popping to empty = %d, want 0", cs.Depth())
	}
	if cs.CurrentClipPlane() != raster.ClipPlaneOne {
		t.Errorf("clearing all should reset to ClipPlaneOne, got %v", cs.CurrentClipPlane())
	}
}

func TestClippingStackNestedEndClippingFlips(t *testing.T) {
	cs := NewClippingStack()
	cs.BeginClipping(NewRenderCache())
	cs.BeginClipping(NewRenderCache())
	result := cs.EndClipping()
	if result.Action != ClipEndFlip {
		t.Errorf("popping back to a swappable state should flip, got %v", result.Action)
	}
	if cs.Depth() != 1 {
		t.Errorf("Depth() after one pop from 2 = %d, want 1", cs.Depth())
	}
}

func TestClippingStackEndClippingEmptyReturnsClearAll(t *testing.T) {
	cs := NewClippingStack()
	result := cs.EndClipping()
	if result.Action != ClipEndClearAll {
		t.Errorf("EndClipping on an empty stack should report ClipEndClearAll, got %v", result.Action)
	}
}

func TestClippingStackRebuildAfterNonSwappablePop(t *testing.T) {
	cs := NewClippingStack()
	cs.BeginClipping(NewRenderCache())
	cs.BeginClipping(NewRenderCache())
	cs.EndClipping() // consumes canSwap via flip, depth now 1, canSwap=false
	cs.BeginClipping(NewRenderCache())
	cs.BeginClipping(NewRenderCache())
	// depth now 3; canSwap true from last BeginClipping, so first pop flips...
	r1 := cs.EndClipping()
	if r1.Action != ClipEndFlip {
		t.Fatalf("expected first pop to flip, got %v", r1.Action)
	}
	// ...leaving canSwap=false; the next pop (depth 2->1) must rebuild.
	r2 := cs.EndClipping()
	if r2.Action != ClipEndRebuild {
		t.Fatalf("expected second pop to rebuild, got %v", r2.Action)
	}
	if len(r2.RebuildCaches) != cs.Depth() {
		t.Errorf("RebuildCaches length = %d, want %d (current depth)", len(r2.RebuildCaches), cs.Depth())
	}
}

func TestClippingStackOverflowPanics(t *testing.T) {
	cs := NewClippingStack()
	defer func() {
		if recover() == nil {
			t.Error("pushing past MaxClipDepth should panic")
		}
	}()
	for i := 0; i <= MaxClipDepth; i++ {
		cs.BeginClipping(NewRenderCache())
	}
}

func TestClippingStackResetClipping(t *testing.T) {
	cs := NewClippingStack()
	cs.BeginClipping(NewRenderCache())
	cs.BeginClipping(NewRenderCache())
	cs.ResetClipping()
	if cs.Depth() != 0 || cs.CanSwap() || cs.CurrentClipPlane() != raster.ClipPlaneOne {
		t.Errorf("ResetClipping should fully clear the stack, got depth=%d canSwap=%v plane=%v", cs.Depth(), cs.CanSwap(), cs.CurrentClipPlane())
	}
}

func TestClippingStackActiveMaskIsOtherPlane(t *testing.T) {
	cs := NewClippingStack()
	cs.BeginClipping(NewRenderCache())
	want := cs.CurrentClipPlane().Other().Mask()
	if got := cs.ActiveMask(); got != want {
		t.Errorf("ActiveMask() = %v, want %v", got, want)
	}
}
