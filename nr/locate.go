package nr

// Policy selects how Locate handles a query outside the border domain.
type Policy int

const (
	// PolicyBasic returns -1 below x[0] and N above x[N] (an
	// out-of-range index rather than a clip or a failure signal).
	PolicyBasic Policy = iota
	// PolicyClip clamps out-of-range queries to the nearest edge bin.
	PolicyClip
	// PolicyFail returns -1 for any query outside [x[0], x[N]].
	PolicyFail
)

// Locate performs a binary search over strictly increasing borders x and
// returns j such that x[j] <= v < x[j+1].
//
// v == x[len(x)-1] returns len(x)-2 (the rightmost border sits inside the
// last bin, per the digest2-style half-open convention used for the
// solver's Mx-style bin lookups). Out-of-range behavior is controlled by
// policy; Locate never panics and never converts an out-of-range query into
// an error -- the caller reads a negative index instead, since this sits on
// the photon-traversal hot path where exceptions are not an option.
func Locate(x []float64, v float64, policy Policy) int {
	n := len(x)
	if n < 2 {
		return -1
	}
	switch policy {
	case PolicyClip:
		if v < x[0] {
			return 0
		}
		if v > x[n-2] {
			return n - 2
		}
	case PolicyFail:
		if v < x[0] || v > x[n-1] {
			return -1
		}
	default: // PolicyBasic
		if v < x[0] {
			return -1
		}
		if v > x[n-1] {
			return n - 1
		}
	}
	if v == x[n-1] {
		return n - 2
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if v < x[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
