package flatten

import "testing"

func TestContourLinearSpan(t *testing.T) {
	spans := []Cubic{
		{P0: Vec2{0, 0}, H0: Vec2{0, 0}, H1: Vec2{10, 0}, P1: Vec2{10, 0}},
	}
	verts, bounds := Contour(spans, 0.1, true)
	if len(verts) != 2 {
		t.Fatalf("expected 2 vertices for a single linear span, got %d", len(verts))
	}
	if verts[0].Joint {
		t.Error("first vertex must never be a joint")
	}
	if verts[0].Pos != (Vec2{0, 0}) || verts[len(verts)-1].Pos != (Vec2{10, 0}) {
		t.Errorf("endpoints not preserved: %+v", verts)
	}
	if bounds.MinX != 0 || bounds.MaxX != 10 {
		t.Errorf("unexpected bounds: %+v", bounds)
	}
}

func TestContourOpenFinalVertexNotJoint(t *testing.T) {
	spans := []Cubic{
		{P0: Vec2{0, 0}, H0: Vec2{0, 10}, H1: Vec2{10, 10}, P1: Vec2{10, 0}},
		{P0: Vec2{10, 0}, H0: Vec2{10, -10}, H1: Vec2{20, -10}, P1: Vec2{20, 0}},
	}
	verts, _ := Contour(spans, 0.1, true)
	if verts[0].Joint {
		t.Error("joint[0] must be false")
	}
	if verts[len(verts)-1].Joint {
		t.Error("open contour's final vertex must not be marked a joint")
	}
	// The span boundary (first span's endpoint) should be a joint.
	foundInternalJoint := false
	for _, v := range verts[1 : len(verts)-1] {
		if v.Joint {
			foundInternalJoint = true
		}
	}
	if !foundInternalJoint {
		t.Error("expected at least one internal joint at the span boundary")
	}
}

func TestContourClosedFinalVertexCanBeJoint(t *testing.T) {
	spans := []Cubic{
		{P0: Vec2{0, 0}, H0: Vec2{0, 10}, H1: Vec2{10, 10}, P1: Vec2{10, 0}},
		{P0: Vec2{10, 0}, H0: Vec2{10, -10}, H1: Vec2{0, -10}, P1: Vec2{0, 0}},
	}
	verts, _ := Contour(spans, 0.1, false)
	if !verts[len(verts)-1].Joint {
		t.Error("closed contour's final vertex should be a joint (it ends a span)")
	}
}

func TestContourEmpty(t *testing.T) {
	verts, _ := Contour(nil, 0.1, true)
	if verts != nil {
		t.Errorf("expected nil vertices for an empty span list, got %v", verts)
	}
}

func TestIsFlatLinearShortCircuit(t *testing.T) {
	c := Cubic{P0: Vec2{0, 0}, H0: Vec2{0, 0}, H1: Vec2{1, 1}, P1: Vec2{1, 1}}
	if !isFlat(c, 1e-12) {
		t.Error("a span whose handles coincide with endpoints must always be flat")
	}
}

func TestFlattenFinerToleranceYieldsMoreVertices(t *testing.T) {
	spans := []Cubic{
		{P0: Vec2{0, 0}, H0: Vec2{0, 50}, H1: Vec2{50, 50}, P1: Vec2{50, 0}},
	}
	coarse, _ := Contour(spans, 5, true)
	fine, _ := Contour(spans, 0.01, true)
	if len(fine) <= len(coarse) {
		t.Errorf("expected finer tolerance to produce more vertices: coarse=%d fine=%d", len(coarse), len(fine))
	}
}
