package gradientfan

import "math"

// solveQuadratic finds the real roots of a·t² + b·t + c = 0, returned in
// ascending order. A small, numerically-robust subset of the root solver
// kept in the root package's former solver.go (itself adapted from
// kurbo's quadratic solver); only the quadratic case survives here since
// the radial gradient fan's ray/unit-circle intersection (§4.D) never
// needs a cubic.
func solveQuadratic(a, b, c float64) []float64 {
	if a == 0 || !isFinite(c/a) || !isFinite(b/a) {
		if b == 0 {
			if c == 0 {
				return []float64{0}
			}
			return nil
		}
		return []float64{-c / b}
	}

	sc0 := c / a
	sc1 := b / a
	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		root1 := -sc1
		root2 := sc0 / root1
		if !isFinite(root2) {
			return []float64{root1}
		}
		if root1 > root2 {
			return []float64{root2, root1}
		}
		return []float64{root1, root2}
	}
	if arg < 0 {
		return nil
	}
	if arg == 0 {
		return []float64{-0.5 * sc1}
	}
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
