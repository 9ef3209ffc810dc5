package stroke

import "math"

// strokeDashed tessellates a dashed stroke by walking the polyline edge by
// edge, consuming the dash pattern as it goes (§4.C, glossary: Dash start
// state). Joints between edges only get a join when the traversal is
// currently mid-dash and the joint itself isn't a dash boundary; dash
// boundaries get a cap on the outgoing dash and a cap on the incoming one.
//
// For a closed contour the loop wraps back to points[0], and no start cap
// is emitted for the first edge. Caps are suppressed exactly at that seam
// point; when the last dash ends there and the contour started on a dash,
// a join to the first edge connects the two dashes instead.
func strokeDashed(points []Vec2, closed bool, style Style, halfWidth float64, state DashState) ([]Vec2, DashState) {
	arr := style.DashArray
	n := edgeCount(len(points), closed)
	if n <= 0 || len(arr) == 0 {
		return nil, state
	}
	if state.RemainingLen <= 0 {
		state.RemainingLen = arr[state.Index%len(arr)]
	}

	var out []Vec2
	var seam *Vec2
	if closed {
		p := points[0]
		seam = &p
	}

	var lastDir, lastPerp Vec2
	lastPoint := points[0]
	startOnDash := state.OnDash

	for i := 0; i < n; i++ {
		p0, p1 := edgeAt(points, i, closed)
		edgeLen := p1.sub(p0).length()
		if edgeLen == 0 {
			continue
		}
		d := p1.sub(p0).mul(1 / edgeLen)
		pr := perp(d, halfWidth)

		if i == 0 && !closed && state.OnDash {
			out = emitCap(out, p0, d.mul(-1), pr, style.Cap, halfWidth)
		}

		pos := p0
		remaining := edgeLen
		justTransitioned := false

		for remaining > 1e-9 {
			consume := math.Min(remaining, state.RemainingLen)
			segEnd := pos.add(d.mul(consume))

			if state.OnDash {
				out = emitQuad(out, segEnd.add(pr), pos.add(pr), pos.sub(pr), segEnd.sub(pr))
			}

			state.RemainingLen -= consume
			remaining -= consume
			pos = segEnd
			justTransitioned = false

			if state.RemainingLen <= 1e-9 {
				justTransitioned = true
				atSeam := seam != nil && approxEqual(pos, *seam, 1e-6)
				if state.OnDash && !atSeam {
					out = emitCap(out, pos, d, pr, style.Cap, halfWidth)
				}
				if state.OnDash && atSeam && startOnDash {
					f0, f1 := edgeAt(points, 0, closed)
					out = emitJoin(out, pos, pr, perp(f1.sub(f0).normalize(), halfWidth), style.Join, style.MiterLimit, halfWidth)
				}
				state.Index = (state.Index + 1) % len(arr)
				state.OnDash = !state.OnDash
				state.RemainingLen = arr[state.Index]
				if state.OnDash && !atSeam {
					out = emitCap(out, pos, d.mul(-1), pr, style.Cap, halfWidth)
				}
			}
		}

		if i+1 < n || closed {
			if state.OnDash && !justTransitioned {
				nextP0, nextP1 := edgeAt(points, i+1, closed)
				nextDir := nextP1.sub(nextP0).normalize()
				nextPerp := perp(nextDir, halfWidth)
				out = emitJoin(out, p1, pr, nextPerp, style.Join, style.MiterLimit, halfWidth)
			}
		}

		lastDir, lastPerp, lastPoint = d, pr, p1
	}

	if !closed && state.OnDash {
		out = emitCap(out, lastPoint, lastDir, lastPerp, style.Cap, halfWidth)
	}

	return out, state
}

func approxEqual(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
