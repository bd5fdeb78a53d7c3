package dustmix

import (
	"math"

	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/nr"
)

// SampleAbsorbs draws whether the next interaction at wavelength index ell
// is an absorption (true) or a scattering (false), per section 4.5's
// uniform-deviate-against-albedo test.
func (m *Mixture) SampleAbsorbs(ell int, r *nr.Random) bool {
	return r.Uniform() >= m.Albedo[ell]
}

// henyeyGreensteinCosTheta inverts the Henyey-Greenstein phase function's
// cumulative distribution for a uniform deviate u, falling back to
// isotropic (Rayleigh-free) sampling when g is numerically zero.
func henyeyGreensteinCosTheta(g, u float64) float64 {
	if math.Abs(g) < 1e-6 {
		return 2*u - 1
	}
	s := (1 - g*g) / (1 - g + 2*g*u)
	return (1 + g*g - s*s) / (2 * g)
}

// deflect builds a new unit direction offset from incoming by polar angle
// theta (given as cosTheta) and a uniformly sampled azimuth, using an
// arbitrary orthonormal frame about incoming. This is the standard
// scattering-direction construction used whenever a phase function yields
// only a polar deflection angle.
func deflect(incoming geom.Direction, cosTheta, phi float64) geom.Direction {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	// Build an arbitrary vector not parallel to incoming to seed the frame.
	var seed geom.Direction
	if math.Abs(incoming.X) < 0.9 {
		seed = geom.NewDirection(1, 0, 0)
	} else {
		seed = geom.NewDirection(0, 1, 0)
	}
	ux := incoming.Y*seed.Z - incoming.Z*seed.Y
	uy := incoming.Z*seed.X - incoming.X*seed.Z
	uz := incoming.X*seed.Y - incoming.Y*seed.X
	e1 := geom.NewDirection(ux, uy, uz)
	vx := incoming.Y*e1.Z - incoming.Z*e1.Y
	vy := incoming.Z*e1.X - incoming.X*e1.Z
	vz := incoming.X*e1.Y - incoming.Y*e1.X
	e2 := geom.NewDirection(vx, vy, vz)

	sp, cp := math.Sincos(phi)
	return geom.NewDirection(
		cosTheta*incoming.X+sinTheta*(cp*e1.X+sp*e2.X),
		cosTheta*incoming.Y+sinTheta*(cp*e1.Y+sp*e2.Y),
		cosTheta*incoming.Z+sinTheta*(cp*e1.Z+sp*e2.Z),
	)
}

// SampleScatterDirection draws a new propagation direction at wavelength
// index ell given the incoming direction. Polarization tracking (per-grain
// Mueller-driven sampling) is not threaded into the aggregate mixture in
// this build; scattering always uses the Henyey-Greenstein phase function
// with the aggregate asymmetry parameter (see DESIGN.md).
func (m *Mixture) SampleScatterDirection(ell int, incoming geom.Direction, r *nr.Random) geom.Direction {
	cosTheta := henyeyGreensteinCosTheta(m.G[ell], r.Uniform())
	phi := 2 * math.Pi * r.Uniform()
	return deflect(incoming, cosTheta, phi)
}

// HenyeyGreenstein returns the phase-function value at the given cosine of
// the scattering angle, used by peel-off to weight virtual packages toward
// an observer.
func HenyeyGreenstein(g, cosTheta float64) float64 {
	if math.Abs(g) < 1e-6 {
		return 1 / (4 * math.Pi)
	}
	denom := 1 + g*g - 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * math.Pow(denom, 1.5))
}
