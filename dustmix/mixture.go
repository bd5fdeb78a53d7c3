// Package dustmix builds the aggregate optical-property tables (opacities,
// albedo, asymmetry, equilibrium temperature) a multi-population dust
// mixture exposes to the photon propagator, per section 4.4.
package dustmix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/grain"
	"github.com/soniakeys/dustrt/nr"
)

const sizeIntegrationPoints = 200
const tempGridPoints = 501
const tempGridMax = 10000.0
const tempGridRatio = 1000.0

// Population is one (composition, size distribution, subpopulation count)
// input to the mixture.
type Population struct {
	Comp  *grain.Composition
	Dist  grain.SizeDistribution
	NBins int
}

// subpop holds the per-wavelength tables for one logarithmic size bin of
// one population, plus its own equilibrium-temperature inversion table.
type subpop struct {
	sigmaAbs nr.Array // per wavelength
	sigmaSca nr.Array
	g        nr.Array
	mu       float64 // mass per unit volume contributed, kg/m^3 at nf=1

	tempGrid    nr.Array
	sigmaAbsP   nr.Array // Planck-integrated absorption cross section vs temp
}

// Mixture is the aggregated, setup-frozen dust mixture.
type Mixture struct {
	Lambdas nr.Array

	subpops []subpop

	KappaAbs nr.Array
	KappaSca nr.Array
	KappaExt nr.Array
	Albedo   nr.Array
	G        nr.Array
	Mu       float64

	polarized bool
}

// planckBlackbody is the spectral radiance shape (unnormalized: the
// equilibrium-temperature inversion only needs relative weighting across
// wavelength) used to weight the Planck-integrated absorption table.
func planckBlackbody(lambda, temp float64) float64 {
	const h = 6.62607015e-34
	const c = 2.99792458e8
	const k = 1.380649e-23
	x := h * c / (lambda * k * temp)
	if x > 700 {
		return 0
	}
	return 1 / (lambda * lambda * lambda * lambda * lambda * (math.Exp(x) - 1))
}

// New builds the aggregate tables for a set of populations evaluated on
// the given simulation wavelength grid. Each population's size range is
// split logarithmically into NBins subpopulations; cross sections are
// trapezoidally integrated on a 200-point logarithmic size grid per
// subpopulation, log-log resampled from the composition's native
// wavelength grid (log-linear for g), per section 4.4.
func New(lambdas nr.Array, pops []Population) (*Mixture, error) {
	m := &Mixture{Lambdas: lambdas}

	for pi, pop := range pops {
		if err := grain.Validate(pop.Dist); err != nil {
			return nil, fmt.Errorf("%w: population %d: %v", errs.ErrConfiguration, pi, err)
		}
		if pop.Comp.LambdaMin() > lambdas[0] || pop.Comp.LambdaMax() < lambdas[len(lambdas)-1] {
			return nil, fmt.Errorf("%w: population %d: composition wavelength table does not cover the simulation grid", errs.ErrResource, pi)
		}
		binBorders := nr.LogGrid(pop.Dist.AMin(), pop.Dist.AMax(), pop.NBins+1)
		for c := 0; c < pop.NBins; c++ {
			sp, err := buildSubpop(pop.Comp, pop.Dist, binBorders[c], binBorders[c+1], lambdas)
			if err != nil {
				return nil, err
			}
			m.subpops = append(m.subpops, sp)
		}
	}

	m.aggregate()
	return m, nil
}

// buildSubpop integrates the four section-4.4 quantities over one
// logarithmic size bin on a fixed 200-point trapezoidal grid.
func buildSubpop(comp *grain.Composition, dist grain.SizeDistribution, aMin, aMax float64, lambdas nr.Array) (subpop, error) {
	x := nr.LogGrid(aMin, aMax, sizeIntegrationPoints)
	omega := make([]float64, sizeIntegrationPoints)
	for i, a := range x {
		omega[i] = dist.Omega(a)
	}

	nl := len(lambdas)
	sp := subpop{
		sigmaAbs: make(nr.Array, nl),
		sigmaSca: make(nr.Array, nl),
		g:        make(nr.Array, nl),
	}

	for li, lambda := range lambdas {
		absIntegrand := make([]float64, sizeIntegrationPoints)
		scaIntegrand := make([]float64, sizeIntegrationPoints)
		gIntegrand := make([]float64, sizeIntegrationPoints)
		for i, a := range x {
			area := math.Pi * a * a
			qa := comp.Qabsolute(lambda, a)
			qs := comp.Qscattering(lambda, a)
			gg := comp.Asymmetry(lambda, a)
			absIntegrand[i] = omega[i] * qa * area
			scaIntegrand[i] = omega[i] * qs * area
			gIntegrand[i] = omega[i] * gg * qs * area
		}
		sp.sigmaAbs[li] = integrate.Trapezoidal(x, absIntegrand)
		sp.sigmaSca[li] = integrate.Trapezoidal(x, scaIntegrand)
		gInt := integrate.Trapezoidal(x, gIntegrand)
		if sp.sigmaSca[li] > 0 {
			sp.g[li] = gInt / sp.sigmaSca[li]
		}
	}

	muIntegrand := make([]float64, sizeIntegrationPoints)
	for i, a := range x {
		muIntegrand[i] = omega[i] * comp.RhoBulk * (4.0 / 3.0) * math.Pi * a * a * a
	}
	sp.mu = integrate.Trapezoidal(x, muIntegrand)

	sp.buildEquilibriumTable(comp, x, omega)
	return sp, nil
}

// buildEquilibriumTable precomputes the Planck-integrated absorption cross
// section on a 501-point semi-logarithmic temperature grid (innermost to
// outermost bin ratio 1000), used to invert absorbed power into an
// equilibrium grain temperature.
func (sp *subpop) buildEquilibriumTable(comp *grain.Composition, aGrid []float64, omega []float64) {
	sp.tempGrid = nr.PowGrid(1, tempGridMax, tempGridRatio, tempGridPoints-1)
	sp.sigmaAbsP = make(nr.Array, len(sp.tempGrid))

	lambdas := nr.LogGrid(comp.LambdaMin(), comp.LambdaMax(), 200)
	for ti, temp := range sp.tempGrid {
		planckIntegrand := make([]float64, len(lambdas))
		for li, lambda := range lambdas {
			sizeIntegrand := make([]float64, len(aGrid))
			for ai, a := range aGrid {
				sizeIntegrand[ai] = omega[ai] * comp.Qabsolute(lambda, a) * math.Pi * a * a
			}
			sizeInt := integrate.Trapezoidal(aGrid, sizeIntegrand)
			planckIntegrand[li] = sizeInt * planckBlackbody(lambda, temp)
		}
		sp.sigmaAbsP[ti] = integrate.Trapezoidal(lambdas, planckIntegrand)
	}
}

// aggregate combines the per-subpopulation tables into the mixture-wide
// opacities, albedo and asymmetry, per section 4.4's aggregation rules.
func (m *Mixture) aggregate() {
	nl := len(m.Lambdas)
	sigmaAbs := make(nr.Array, nl)
	sigmaSca := make(nr.Array, nl)
	gWeighted := make(nr.Array, nl)
	mu := 0.0

	for _, sp := range m.subpops {
		mu += sp.mu
		for li := 0; li < nl; li++ {
			sigmaAbs[li] += sp.sigmaAbs[li]
			sigmaSca[li] += sp.sigmaSca[li]
			gWeighted[li] += sp.g[li] * sp.sigmaSca[li]
		}
	}

	m.Mu = mu
	m.KappaAbs = make(nr.Array, nl)
	m.KappaSca = make(nr.Array, nl)
	m.KappaExt = make(nr.Array, nl)
	m.Albedo = make(nr.Array, nl)
	m.G = make(nr.Array, nl)

	for li := 0; li < nl; li++ {
		sigmaExt := sigmaAbs[li] + sigmaSca[li]
		if mu > 0 {
			m.KappaAbs[li] = sigmaAbs[li] / mu
			m.KappaSca[li] = sigmaSca[li] / mu
			m.KappaExt[li] = sigmaExt / mu
		}
		if sigmaExt > 0 {
			m.Albedo[li] = sigmaSca[li] / sigmaExt
		}
		if sigmaSca[li] > 0 {
			m.G[li] = gWeighted[li] / sigmaSca[li]
		}
	}
}

// EquilibriumTemperature inverts a Planck-integrated absorption cross
// section back into a temperature for subpopulation index c, by linear
// interpolation on the precomputed table (sigmaAbsP is monotone increasing
// in temperature), as section 4.4 prescribes.
func (m *Mixture) EquilibriumTemperature(subpopIndex int, sigmaAbsP float64) float64 {
	sp := m.subpops[subpopIndex]
	n := len(sp.tempGrid)
	if sigmaAbsP <= sp.sigmaAbsP[0] {
		return sp.tempGrid[0]
	}
	if sigmaAbsP >= sp.sigmaAbsP[n-1] {
		return sp.tempGrid[n-1]
	}
	i := nr.Locate(sp.sigmaAbsP, sigmaAbsP, nr.PolicyClip)
	if i >= n-1 {
		i = n - 2
	}
	return nr.Interp1(nr.LinLin, sigmaAbsP, sp.sigmaAbsP[i], sp.tempGrid[i], sp.sigmaAbsP[i+1], sp.tempGrid[i+1])
}
