package nr

import "math"

// Kind selects the interpolation law between two abscissa/ordinate pairs.
type Kind int

const (
	LinLin Kind = iota
	LogLin
	LogLog
)

// Interp1 interpolates y at x given bracketing points (x0,y0)-(x1,y1) under
// the chosen law. LogLog silently falls back to LogLin when either ordinate
// is non-positive, per the resampling contract.
func Interp1(kind Kind, x, x0, y0, x1, y1 float64) float64 {
	if kind == LogLog && (y0 <= 0 || y1 <= 0) {
		kind = LogLin
	}
	switch kind {
	case LogLin:
		t := math.Log(x/x0) / math.Log(x1/x0)
		return y0 + t*(y1-y0)
	case LogLog:
		t := math.Log(x/x0) / math.Log(x1/x0)
		return math.Exp(math.Log(y0) + t*(math.Log(y1)-math.Log(y0)))
	default: // LinLin
		t := (x - x0) / (x1 - x0)
		return y0 + t*(y1-y0)
	}
}

// Resample evaluates y at every point of xnew, given a source grid (xsrc,
// ysrc) assumed strictly increasing in xsrc.
//
// Per the contract: a query within 1e-5 relative tolerance of a source
// endpoint returns that endpoint's y exactly; a query outside the source
// range returns 0; otherwise the bracketing bin is located and Interp1 is
// applied with the caller-chosen law.
func Resample(kind Kind, xsrc, ysrc Array, xnew Array) Array {
	out := make(Array, len(xnew))
	n := len(xsrc)
	for k, x := range xnew {
		switch {
		case closeRel(x, xsrc[0]):
			out[k] = ysrc[0]
		case closeRel(x, xsrc[n-1]):
			out[k] = ysrc[n-1]
		case x < xsrc[0] || x > xsrc[n-1]:
			out[k] = 0
		default:
			j := Locate(xsrc, x, PolicyClip)
			if j > n-2 {
				j = n - 2
			}
			out[k] = Interp1(kind, x, xsrc[j], ysrc[j], xsrc[j+1], ysrc[j+1])
		}
	}
	return out
}

func closeRel(a, b float64) bool {
	if b == 0 {
		return a == 0
	}
	return math.Abs(a-b)/math.Abs(b) < 1e-5
}
