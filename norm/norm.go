// Package norm implements the DustComp normalization rules of section
// 4.6: each rule is a multiplier on a geometry's (unit-mass) density,
// derived from a target physical quantity (total dust mass, or an optical
// depth along a named direction).
package norm

import (
	"fmt"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/geom"
)

// Rule computes the normalization multiplier nf for a DustComp's density,
// given the geometry it will be applied to, the dust mixture supplying
// opacities, and the wavelength-grid index the target quantity is
// evaluated at.
type Rule interface {
	Apply(g geom.Geometry, m *dustmix.Mixture, lambda int) (float64, error)
}

// ByDustMass normalizes so the component's total mass equals MDust; since
// every geometry's density integrates to 1, nf is simply MDust.
type ByDustMass struct {
	MDust float64
}

func (r ByDustMass) Apply(geom.Geometry, *dustmix.Mixture, int) (float64, error) {
	return r.MDust, nil
}

// ByFaceOnTau normalizes so the face-on (along-Z) optical depth at the
// given wavelength index equals Tau; requires an axisymmetric geometry (spherical
// counts, since every spherical geometry's SigmaZ is defined too).
type ByFaceOnTau struct {
	Tau float64
}

func (r ByFaceOnTau) Apply(g geom.Geometry, m *dustmix.Mixture, lambda int) (float64, error) {
	if !isAxisymmetricOrBetter(g) {
		return 0, fmt.Errorf("%w: face-on tau normalization requires an axisymmetric geometry", errs.ErrConfiguration)
	}
	return r.Tau / (g.SigmaZ() * m.KappaExt[lambda]), nil
}

// ByEdgeOnTau normalizes so the edge-on (along-R) optical depth equals
// Tau; requires an axisymmetric geometry.
type ByEdgeOnTau struct {
	Tau float64
}

func (r ByEdgeOnTau) Apply(g geom.Geometry, m *dustmix.Mixture, lambda int) (float64, error) {
	sr, ok := g.(interface{ SigmaR() float64 })
	if !ok || !isAxisymmetricOrBetter(g) {
		return 0, fmt.Errorf("%w: edge-on tau normalization requires an axisymmetric geometry", errs.ErrConfiguration)
	}
	return r.Tau / (sr.SigmaR() * m.KappaExt[lambda]), nil
}

// ByRadialTau normalizes so the radial optical depth equals Tau; requires
// a spherically symmetric geometry.
type ByRadialTau struct {
	Tau float64
}

func (r ByRadialTau) Apply(g geom.Geometry, m *dustmix.Mixture, lambda int) (float64, error) {
	sph, ok := g.(geom.Spherical)
	if !ok {
		return 0, fmt.Errorf("%w: radial tau normalization requires a spherically symmetric geometry", errs.ErrConfiguration)
	}
	return r.Tau / (sph.SigmaR() * m.KappaExt[lambda]), nil
}

// Axis selects which coordinate axis ByAxisTau measures the column
// density along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ByAxisTau normalizes so the optical depth along the given axis equals
// Tau. Unlike ByFaceOnTau/ByEdgeOnTau this imposes no dimension-tier
// requirement: every Geometry exposes SigmaX/Y/Z directly.
type ByAxisTau struct {
	Axis Axis
	Tau  float64
}

func (r ByAxisTau) Apply(g geom.Geometry, m *dustmix.Mixture, lambda int) (float64, error) {
	var sigma float64
	switch r.Axis {
	case AxisX:
		sigma = g.SigmaX()
	case AxisY:
		sigma = g.SigmaY()
	case AxisZ:
		sigma = g.SigmaZ()
	default:
		return 0, fmt.Errorf("%w: unrecognized axis", errs.ErrConfiguration)
	}
	return r.Tau / (sigma * m.KappaExt[lambda]), nil
}

// isAxisymmetricOrBetter reports whether g exposes at least the
// axisymmetric capability (separable or general) or the narrower
// spherical capability, either of which is a valid face-on/edge-on
// normalization target per section 4.6.
func isAxisymmetricOrBetter(g geom.Geometry) bool {
	switch g.(type) {
	case geom.Spherical, geom.SeparableAxisymmetric, geom.GeneralAxisymmetric:
		return true
	default:
		return false
	}
}
