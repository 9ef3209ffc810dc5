package stencilvg

import (
	"math"
	"testing"
)

func TestNewDashAllZeroYieldsSolid(t *testing.T) {
	d := NewDash(0, 0)
	if d.IsDashed() || len(d.Array) != 0 {
		t.Errorf("an all-zero dash pattern should behave as solid, got %+v", d)
	}
}

func TestNewDashNegativeLengthsAbsoluted(t *testing.T) {
	d := NewDash(-5, 3)
	if d.Array[0] != 5 || d.Array[1] != 3 {
		t.Errorf("negative dash lengths should be absoluted, got %+v", d.Array)
	}
}

func TestDashPatternLengthOddArrayDuplicated(t *testing.T) {
	d := NewDash(5, 3, 2)
	if got := d.PatternLength(); got != 20 {
		t.Errorf("odd-length pattern [5,3,2] duplicated should total 20, got %v", got)
	}
}

func TestDashNormalizedOffsetWraps(t *testing.T) {
	d := Dash{Array: []float64{10, 5}, Offset: -20}
	got := d.NormalizedOffset()
	if got < 0 || got >= 15 {
		t.Errorf("normalized offset must land in [0, 15), got %v", got)
	}
}

func TestStartDashStateAtZeroOffsetStartsOnDash(t *testing.T) {
	d := NewDash(10, 5)
	state := StartDashState(d)
	if !state.OnDash || state.Index != 0 || math.Abs(state.RemainingLen-10) > 1e-9 {
		t.Errorf("unexpected start state: %+v", state)
	}
}

func TestStartDashStateMidOffDash(t *testing.T) {
	d := Dash{Array: []float64{10, 5}, Offset: 12}
	state := StartDashState(d)
	if state.OnDash {
		t.Error("offset 12 into a [10-on,5-off] pattern should start off-dash")
	}
	if math.Abs(state.RemainingLen-3) > 1e-9 {
		t.Errorf("expected 3 units remaining in the off-dash run, got %v", state.RemainingLen)
	}
}

func TestDashCloneIsIndependent(t *testing.T) {
	d := NewDash(1, 2, 3)
	clone := d.Clone()
	clone.Array[0] = 99
	if d.Array[0] == 99 {
		t.Error("Clone must deep-copy the array")
	}
}

func TestDashScale(t *testing.T) {
	d := Dash{Array: []float64{2, 4}, Offset: 1}
	scaled := d.Scale(2)
	if scaled.Array[0] != 4 || scaled.Array[1] != 8 || scaled.Offset != 2 {
		t.Errorf("Scale(2): got %+v", scaled)
	}
}
