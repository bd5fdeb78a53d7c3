package nr

import "math"

// LinGrid builds n evenly spaced points over [xmin, xmax].
func LinGrid(xmin, xmax float64, n int) Array {
	x := make(Array, n)
	if n == 1 {
		x[0] = xmin
		return x
	}
	step := (xmax - xmin) / float64(n-1)
	for i := range x {
		x[i] = xmin + float64(i)*step
	}
	return x
}

// LogGrid builds n logarithmically spaced points over [xmin, xmax].
// xmin must be strictly positive.
func LogGrid(xmin, xmax float64, n int) Array {
	if xmin <= 0 {
		panic("nr: LogGrid requires xmin > 0")
	}
	x := make(Array, n)
	if n == 1 {
		x[0] = xmin
		return x
	}
	ratio := xmax / xmin
	for i := range x {
		x[i] = xmin * math.Pow(ratio, float64(i)/float64(n-1))
	}
	return x
}

// PowGrid builds a (n+1)-point grid over [xmin, xmax] whose bin widths grow
// geometrically so that the last-to-first bin width ratio is r. When r is
// within 1e-3 of unity it falls back to a linear grid of n+1 points,
// matching the teacher-grounded bin-building convention of failing over to
// the simpler case rather than dividing by a near-zero log.
func PowGrid(xmin, xmax, r float64, n int) Array {
	if math.Abs(r-1) < 1e-3 {
		return LinGrid(xmin, xmax, n+1)
	}
	q := math.Pow(r, 1/float64(n-1))
	x := make(Array, n+1)
	denom := 1 - math.Pow(q, float64(n))
	for i := 0; i <= n; i++ {
		x[i] = xmin + (1-math.Pow(q, float64(i)))/denom*(xmax-xmin)
	}
	return x
}
