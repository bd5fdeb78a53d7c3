package nr

// CDF is a cumulative distribution built from a nonnegative discrete
// density p_0..p_N-1 over borders x_0..x_N (len(X) == len(P) == N+1).
//
// P[0] == 0 and P[N] == 1 after NewCDF normalizes; Sample maps a uniform
// deviate back to an abscissa by linear interpolation between neighboring
// borders, matching the scenario in spec section 8 (p=[1,2,3,4] -> P=
// [0,.1,.3,.6,1]).
type CDF struct {
	X Array
	P Array
}

// NewCDF builds a normalized CDF from borders x (len N+1) and bin weights p
// (len N, nonnegative).
func NewCDF(x, p Array) *CDF {
	n := len(p)
	P := make(Array, n+1)
	for i := 0; i < n; i++ {
		P[i+1] = P[i] + p[i]
	}
	total := P[n]
	if total > 0 {
		for i := range P {
			P[i] /= total
		}
	}
	return &CDF{X: x.Clone(), P: P}
}

// Sample inverts a uniform deviate u in [0,1) into an abscissa by locating
// the bracketing cumulative-probability bin and linearly interpolating
// between its x-borders.
func (c *CDF) Sample(u float64) float64 {
	j := Locate(c.P, u, PolicyClip)
	if j < 0 {
		j = 0
	}
	if j > len(c.X)-2 {
		j = len(c.X) - 2
	}
	dp := c.P[j+1] - c.P[j]
	if dp == 0 {
		return c.X[j]
	}
	t := (u - c.P[j]) / dp
	return c.X[j] + t*(c.X[j+1]-c.X[j])
}
