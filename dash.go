package stencilvg

import "math"

// Dash is a dash pattern for stroking: alternating "on" and "off" run
// lengths plus a phase offset (§3). An odd-length array is logically
// duplicated to make an even-length pattern, e.g. [5] behaves as [5, 5].
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash builds a dash pattern from alternating on/off lengths. Negative
// lengths are taken as their absolute value; an all-zero or empty pattern
// yields a Dash with a nil Array (equivalent to a solid stroke).
func NewDash(lengths ...float64) Dash {
	if len(lengths) == 0 {
		return Dash{}
	}
	anyPositive := false
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if normalized[i] > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return Dash{}
	}
	return Dash{Array: normalized}
}

// PatternLength returns the total length of one complete cycle, counting
// an odd-length array as duplicated.
func (d Dash) PatternLength() float64 {
	if len(d.Array) == 0 {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether the pattern is non-empty and has at least one
// positive length.
func (d Dash) IsDashed() bool {
	if len(d.Array) == 0 {
		return false
	}
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone deep-copies the dash pattern's array.
func (d Dash) Clone() Dash {
	if d.Array == nil {
		return Dash{Offset: d.Offset}
	}
	arr := make([]float64, len(d.Array))
	copy(arr, d.Array)
	return Dash{Array: arr, Offset: d.Offset}
}

// NormalizedOffset reduces Offset modulo the pattern length into [0, length).
func (d Dash) NormalizedOffset() float64 {
	length := d.PatternLength()
	if length <= 0 {
		return 0
	}
	off := math.Mod(d.Offset, length)
	if off < 0 {
		off += length
	}
	return off
}

// Scale multiplies every length and the offset by factor, used when a
// transform changes the effective scale of stroke-space coordinates.
func (d Dash) Scale(factor float64) Dash {
	if len(d.Array) == 0 || factor <= 0 {
		return d
	}
	arr := make([]float64, len(d.Array))
	for i, l := range d.Array {
		arr[i] = l * factor
	}
	return Dash{Array: arr, Offset: d.Offset * factor}
}

// effectiveArray returns Array duplicated to even length if needed; used
// internally by the stroker's dash-state cursor.
func (d Dash) effectiveArray() []float64 {
	if len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	out := make([]float64, len(d.Array)*2)
	copy(out, d.Array)
	copy(out[len(d.Array):], d.Array)
	return out
}

// DashState is the "where in the pattern a contour begins" cursor
// (glossary: Dash start state), threaded by the caller across contours of
// one Style so a multi-contour dashed stroke continues its dash phase
// instead of resetting per contour (§3 SUPPLEMENTED FEATURES, grounded on
// original_source/Tarp/Tarp.h's incremental dashOffset accumulation).
type DashState struct {
	Index          int
	OnDash         bool
	RemainingLen   float64
}

// StartDashState derives the initial dash state from a normalized offset:
// positive offsets advance forward through "on" dashes being consumed,
// negative offsets (already normalized into [0,length) by NormalizedOffset)
// start mid-dash. Even indices are "on" at offset 0.
func StartDashState(d Dash) DashState {
	arr := d.effectiveArray()
	if len(arr) == 0 {
		return DashState{OnDash: true, RemainingLen: math.Inf(1)}
	}
	remaining := d.NormalizedOffset()
	index := 0
	for {
		seg := arr[index%len(arr)]
		if remaining < seg {
			return DashState{
				Index:        index % len(arr),
				OnDash:       index%2 == 0,
				RemainingLen: seg - remaining,
			}
		}
		remaining -= seg
		index++
	}
}
