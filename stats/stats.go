// Package stats implements the goodness-of-fit statistics the section 8
// universal invariants need: does a Monte Carlo histogram of
// GeneratePosition draws converge to the geometry's analytic Density, and
// does a pass/fail classification of samples against a threshold agree
// with the analytic expectation. The chi-square test is adapted from the
// teacher's mcc package, which compares two classifications (in-class vs
// out-of-class) via a threshold and a correlation coefficient; here the
// classifications are "observed bin count" vs "expected bin count" and
// the binary case is kept as a Matthews-correlation-coefficient check for
// boundary (pass/fail) properties.
package stats

import "math"

// ChiSquare computes the standard Pearson chi-square statistic between
// observed bin counts and expected bin counts (both already scaled to the
// same total sample count N). Bins with zero expected count are skipped,
// matching the usual convention of excluding degenerate bins.
func ChiSquare(observed, expected []float64) float64 {
	sum := 0.0
	for i, e := range expected {
		if e <= 0 {
			continue
		}
		d := observed[i] - e
		sum += d * d / e
	}
	return sum
}

// ExpectedCounts scales a set of per-bin probability masses (summing to
// 1) by the total sample count N, for comparison against an observed
// histogram via ChiSquare.
func ExpectedCounts(massPerBin []float64, n int) []float64 {
	out := make([]float64, len(massPerBin))
	for i, m := range massPerBin {
		out[i] = m * float64(n)
	}
	return out
}

// MassIntegral sums density*cellVolume over a partition of space, the
// direct check that a geometry's analytic density integrates to 1 (within
// tol) when density is evaluated at the centroid of each cell in the
// partition -- a Riemann-sum approximation adequate for the smooth,
// slowly varying densities in the catalog.
func MassIntegral(densityAtCentroid, cellVolume []float64) float64 {
	sum := 0.0
	for i, d := range densityAtCentroid {
		sum += d * cellVolume[i]
	}
	return sum
}

// MCC computes the Matthews correlation coefficient of a 2x2 confusion
// matrix (true positive, false negative, false positive, true negative),
// the same formula digest2's mcc command reports for in-class vs
// out-of-class agreement; here tp/tn/fp/fn compare a sampled pass/fail
// classification against the analytically expected one.
func MCC(tp, fn, fp, tn int) float64 {
	tpf, fnf, fpf, tnf := float64(tp), float64(fn), float64(fp), float64(tn)
	d := (tpf + fpf) * (tpf + fnf) * (tnf + fpf) * (tnf + fnf)
	if d <= 0 {
		return 0
	}
	return (tpf*tnf - fpf*fnf) / math.Sqrt(d)
}
