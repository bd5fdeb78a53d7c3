package photon

import (
	"math"

	"github.com/soniakeys/dustrt/dustmix"
	"github.com/soniakeys/dustrt/geom"
	"github.com/soniakeys/dustrt/grid"
	"github.com/soniakeys/dustrt/nr"
)

// Observer is a peel-off target: a direction from every point in the grid
// toward a fixed vantage and an image accumulator index.
type Observer struct {
	Index int
	Dir   func(from geom.Position) geom.Direction
	// Pixel projects a peeled-off package's position onto this observer's
	// image plane; image-plane binning itself is an external-instrument
	// concern (see DESIGN.md), so the default projection used when Pixel
	// is nil bins everything into pixel 0 (a single-pixel "photometer").
	Pixel func(from geom.Position) int
}

func (o Observer) pixelIndex(from geom.Position) int {
	if o.Pixel == nil {
		return 0
	}
	return o.Pixel(from)
}

// Orchestrator drives one photon package through launch, propagation,
// scattering and peel-off against a grid and a dust mixture, per section
// 4.5. It holds no mutable state of its own beyond what's passed in: the
// caller owns the per-worker Random stream and Accumulator.
type Orchestrator struct {
	Grid      grid.DustGrid
	Mixture   *dustmix.Mixture
	Observers []Observer
}

// RunBundle propagates a single launched package to termination, peeling
// off a scaled copy to every observer's image accumulator at every
// emission and scattering event along the way.
func (o *Orchestrator) RunBundle(p *Package, r *nr.Random, acc *Accumulator) {
	for p.State != Terminated {
		path := o.Grid.Path(p.Pos, p.Dir)
		if len(path) == 0 {
			p.Terminate()
			break
		}
		o.peelOffAt(p, acc)
		hit, ds, cell := o.propagateAlong(p, path, r)
		if !hit {
			p.Terminate()
			break
		}
		p.Propagate(ds)
		p.State = Interacting

		if o.Mixture.SampleAbsorbs(p.Lambda, r) {
			acc.AddAbsorption(cell, p.Lambda, p.Lum)
			p.Terminate()
			break
		}
		newDir := o.Mixture.SampleScatterDirection(p.Lambda, p.Dir, r)
		p.Scatter(newDir)
	}
}

// propagateAlong samples an optical depth tau and integrates kappa_ext*rho
// along the path's segments until cumulative opacity exceeds tau,
// returning the traveled distance and the cell the interaction falls in.
// rho is carried implicitly by the grid's per-cell Weight (the two-phase
// decorator's density multiplier); callers with a uniform-density grid see
// Weight == 1 throughout.
func (o *Orchestrator) propagateAlong(p *Package, path grid.Path, r *nr.Random) (hit bool, distTraveled float64, cell int) {
	tau := r.Exponential()
	kappaExt := o.Mixture.KappaExt[p.Lambda]

	cum := 0.0
	traveled := 0.0
	for _, seg := range path {
		if seg.Cell < 0 {
			traveled += seg.Ds
			continue
		}
		rho := o.Grid.Weight(seg.Cell)
		dtau := kappaExt * rho * seg.Ds
		if cum+dtau >= tau {
			frac := (tau - cum) / dtau
			return true, traveled + frac*seg.Ds, seg.Cell
		}
		cum += dtau
		traveled += seg.Ds
	}
	return false, traveled, -1
}

// peelOffAt emits one scaled virtual copy per observer, directed at that
// observer's position, and bins its luminosity straight into the
// accumulator's image. Peel-off copies never recurse into further
// scattering, per section 4.5.
func (o *Orchestrator) peelOffAt(p *Package, acc *Accumulator) {
	for _, obs := range o.Observers {
		dir := obs.Dir(p.Pos)
		var prob float64
		if p.NScat == 0 && p.Aniso.Present {
			prob = p.Aniso.Origin.PDir(p.Pos, dir)
		} else if p.NScat == 0 {
			prob = 1 / (4 * math.Pi)
		} else {
			g := o.Mixture.G[p.Lambda]
			cosTheta := p.PrevDir.X*dir.X + p.PrevDir.Y*dir.Y + p.PrevDir.Z*dir.Z
			prob = dustmix.HenyeyGreenstein(g, cosTheta)
		}
		cp := p.PeelOffCopy(dir, prob)
		cp.Origin = p.Origin
		acc.AddImage(obs.Index, cp.Lambda, obs.pixelIndex(p.Pos), cp.Lum)
	}
}
