package grid

import "math"

// quadRoots solves A*t^2 + B*t + C = 0 for real roots, returning them
// ordered tNear <= tFar. ok is false when there is no real solution (or,
// for a degenerate A==0 case, no solution at all).
func quadRoots(a, b, c float64) (tNear, tFar float64, ok bool) {
	if math.Abs(a) < 1e-30 {
		if math.Abs(b) < 1e-30 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return r1, r2, true
}
