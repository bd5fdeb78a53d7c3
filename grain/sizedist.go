// Package grain models the per-grain-population inputs to a dust mixture:
// grain size distributions Omega(a) and tabulated optical-property
// compositions loaded from the resource-file formats of section 6.
package grain

import (
	"math"

	"github.com/soniakeys/dustrt/errs"
)

// SizeDistribution is a grain-size number distribution Omega(a), defined
// for a in [AMin(), AMax()] in meters.
type SizeDistribution interface {
	AMin() float64
	AMax() float64
	Omega(a float64) float64
}

// PowerLaw is Omega(a) = C*a^-p on [amin,amax].
type PowerLaw struct {
	AMinV, AMaxV float64
	C, P         float64
}

func (d PowerLaw) AMin() float64 { return d.AMinV }
func (d PowerLaw) AMax() float64 { return d.AMaxV }
func (d PowerLaw) Omega(a float64) float64 {
	if a < d.AMinV || a > d.AMaxV {
		return 0
	}
	return d.C * math.Pow(a, -d.P)
}

// PowerLawExpCutoff is a power law with an exponential taper above Ac,
// Omega(a) = C*a^-p*exp(-(a-Ac)/Aw) for a > Ac, else C*a^-p.
type PowerLawExpCutoff struct {
	AMinV, AMaxV float64
	C, P, Ac, Aw float64
}

func (d PowerLawExpCutoff) AMin() float64 { return d.AMinV }
func (d PowerLawExpCutoff) AMax() float64 { return d.AMaxV }
func (d PowerLawExpCutoff) Omega(a float64) float64 {
	if a < d.AMinV || a > d.AMaxV {
		return 0
	}
	base := d.C * math.Pow(a, -d.P)
	if a > d.Ac {
		base *= math.Exp(-(a - d.Ac) / d.Aw)
	}
	return base
}

// PowerLawCurvatureExpCutoff adds a log-curvature term zeta to the power
// law in addition to the exponential taper, following the generalized
// Weingartner-Draine functional form: Omega(a) = C*a^-p * (1 + zeta*a)^gamma
// * exp(-(a-Ac)/Aw) for a > Ac.
type PowerLawCurvatureExpCutoff struct {
	AMinV, AMaxV        float64
	C, P, Zeta, Gamma   float64
	Ac, Aw              float64
}

func (d PowerLawCurvatureExpCutoff) AMin() float64 { return d.AMinV }
func (d PowerLawCurvatureExpCutoff) AMax() float64 { return d.AMaxV }
func (d PowerLawCurvatureExpCutoff) Omega(a float64) float64 {
	if a < d.AMinV || a > d.AMaxV {
		return 0
	}
	base := d.C * math.Pow(a, -d.P) * math.Pow(1+d.Zeta*a, d.Gamma)
	if a > d.Ac {
		base *= math.Exp(-(a - d.Ac) / d.Aw)
	}
	return base
}

// SingleSize is a delta-function distribution at exactly one grain
// radius, modeled as an extremely narrow top-hat so it still integrates
// sensibly on the same trapezoidal size grid the mixture setup uses for
// every other distribution.
type SingleSize struct {
	A      float64
	Weight float64 // total number of grains per unit volume represented
}

func (d SingleSize) AMin() float64 { return d.A * (1 - 1e-6) }
func (d SingleSize) AMax() float64 { return d.A * (1 + 1e-6) }
func (d SingleSize) Omega(a float64) float64 {
	if a < d.AMin() || a > d.AMax() {
		return 0
	}
	return d.Weight / (d.AMax() - d.AMin())
}

// WeingartnerDraineFit is the full Weingartner & Draine (2001) carbonaceous
// or silicate size-distribution fit, combining a log-normal very-small-grain
// population (carbonaceous only) with the curvature/cutoff power law above.
type WeingartnerDraineFit struct {
	AMinV, AMaxV float64
	Carbonaceous bool
	Bc           float64 // abundance of the log-normal population (carbon only)
	PowerLawCurvatureExpCutoff
}

func (d WeingartnerDraineFit) AMin() float64 { return d.AMinV }
func (d WeingartnerDraineFit) AMax() float64 { return d.AMaxV }

// lognormalTerm is the two-component very-small-grain log-normal addition
// from WD01 eq. 2, present only for the carbonaceous fit.
func (d WeingartnerDraineFit) lognormalTerm(a float64) float64 {
	if !d.Carbonaceous || d.Bc == 0 {
		return 0
	}
	const a0 = 3.5e-10 // 3.5 A in meters
	const sigma = 0.4
	sum := 0.0
	for _, mgFrac := range [2]float64{0.75, 0.25} {
		b := mgFrac * d.Bc
		lg := math.Log(a / a0)
		sum += (b / a) * math.Exp(-0.5*(lg/sigma)*(lg/sigma))
	}
	return sum
}

func (d WeingartnerDraineFit) Omega(a float64) float64 {
	if a < d.AMinV || a > d.AMaxV {
		return 0
	}
	return d.PowerLawCurvatureExpCutoff.Omega(a) + d.lognormalTerm(a)
}

// Validate reports a configuration error when the size range is malformed,
// the kind of check every distribution's setup must perform before the
// mixture integrates it.
func Validate(d SizeDistribution) error {
	if d.AMin() <= 0 || d.AMax() <= d.AMin() {
		return errs.ErrConfiguration
	}
	return nil
}
