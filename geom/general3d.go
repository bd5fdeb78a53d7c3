package geom

import (
	"math"

	"github.com/soniakeys/dustrt/nr"
)

// UniformBox is a fully 3-D, uniform-density box geometry — the simplest
// General3D variant, and a convenient source/sink for SPH- and
// Voronoi-cloud-style geometries to delegate their bounding-box sampling
// to before rejection-testing against the actual point cloud.
type UniformBox struct {
	isotropic
	Box Box
}

func (g UniformBox) Dimension() Dim { return Dim3 }

func (g UniformBox) Density(p Position) float64 {
	if !g.Box.Contains(p) {
		return 0
	}
	return 1 / g.Box.Volume()
}

func (g UniformBox) GeneratePosition(r *nr.Random) Position {
	lo := [3]float64{g.Box.Min.X, g.Box.Min.Y, g.Box.Min.Z}
	hi := [3]float64{g.Box.Max.X, g.Box.Max.Y, g.Box.Max.Z}
	p := r.PositionInBox(lo, hi)
	return NewPosition(p[0], p[1], p[2])
}

func (g UniformBox) SigmaX() float64 { return (g.Box.Max.X - g.Box.Min.X) / g.Box.Volume() }
func (g UniformBox) SigmaY() float64 { return (g.Box.Max.Y - g.Box.Min.Y) / g.Box.Volume() }
func (g UniformBox) SigmaZ() float64 { return (g.Box.Max.Z - g.Box.Min.Z) / g.Box.Volume() }

// Particle is one smoothed point in an SPH- or Voronoi-cloud geometry:
// a position, a mass fraction of the total, and a kernel smoothing
// length (SPH) or cell half-width (Voronoi, treated as a cube for the
// random-position sampler).
type Particle struct {
	Pos Position
	M   float64 // mass fraction, need not be pre-normalized
	H   float64 // smoothing length / cell half-width
}

// SPHParticleCloud is a density field defined by a list of smoothed
// particles, each contributing a cubic-spline kernel of scale H, modeling
// the "read an SPH snapshot" entry of the geometry catalog without
// depending on any particular snapshot file format (that's an external
// collaborator, per section 6).
type SPHParticleCloud struct {
	isotropic
	Particles []Particle
	totalMass float64
	cdf       *nr.CDF
}

// NewSPHParticleCloud normalizes particle masses and builds the particle
// CDF used by GeneratePosition.
func NewSPHParticleCloud(particles []Particle) *SPHParticleCloud {
	g := &SPHParticleCloud{Particles: particles}
	x := make(nr.Array, len(particles)+1)
	p := make(nr.Array, len(particles))
	for i, pt := range particles {
		x[i+1] = x[i] + 1
		p[i] = pt.M
		g.totalMass += pt.M
	}
	g.cdf = nr.NewCDF(x, p)
	return g
}

func (g *SPHParticleCloud) Dimension() Dim { return Dim3 }

// kernel is the cubic-spline smoothing kernel of unit integral over the
// ball of radius h (same normalization contract used by the Clumpy
// decorator's smoothing kernel).
func cubicSplineKernel(r, h float64) float64 {
	if h <= 0 || r >= h {
		return 0
	}
	q := r / h
	norm := 8 / (math.Pi * h * h * h)
	if q <= 0.5 {
		return norm * (1 - 6*q*q + 6*q*q*q)
	}
	return norm * 2 * math.Pow(1-q, 3)
}

func (g *SPHParticleCloud) Density(p Position) float64 {
	if g.totalMass == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range g.Particles {
		dx := p.X - pt.Pos.X
		dy := p.Y - pt.Pos.Y
		dz := p.Z - pt.Pos.Z
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		sum += (pt.M / g.totalMass) * cubicSplineKernel(r, pt.H)
	}
	return sum
}

func (g *SPHParticleCloud) GeneratePosition(r *nr.Random) Position {
	idx := int(r.SampleCDF(g.cdf))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(g.Particles) {
		idx = len(g.Particles) - 1
	}
	pt := g.Particles[idx]
	// radius sample from the cubic-spline kernel's own CDF (radius_sample
	// primitive, mirroring the Clumpy decorator's kernel contract).
	rad := sampleKernelRadius(r, pt.H)
	theta, phi := r.Direction()
	d := FromAngles(theta, phi)
	return NewPosition(pt.Pos.X+rad*d.X, pt.Pos.Y+rad*d.Y, pt.Pos.Z+rad*d.Z)
}

// sampleKernelRadius inverts the cubic-spline kernel's enclosed-mass CDF on
// a dense grid; shared by SPHParticleCloud and the Clumpy decorator.
func sampleKernelRadius(r *nr.Random, h float64) float64 {
	if h <= 0 {
		return 0
	}
	const n = 200
	x := nr.LinGrid(0, h, n+1)
	p := make(nr.Array, n)
	for i := 0; i < n; i++ {
		rm := 0.5 * (x[i] + x[i+1])
		p[i] = 4 * math.Pi * rm * rm * cubicSplineKernel(rm, h) * (x[i+1] - x[i])
	}
	return r.SampleCDF(nr.NewCDF(x, p))
}

func (g *SPHParticleCloud) sigmaAxis(axis int) float64 {
	// Monte-Carlo-free closed form isn't available for an arbitrary cloud;
	// approximate the column through the origin by summing each particle's
	// own column contribution along the requested axis, treating each
	// kernel's azimuthally symmetric profile as concentrated at its offset
	// from the axis.
	const n = 4000
	sum := 0.0
	for _, pt := range g.Particles {
		var off, along float64
		switch axis {
		case 0:
			off = math.Hypot(pt.Pos.Y, pt.Pos.Z)
			along = pt.Pos.X
		case 1:
			off = math.Hypot(pt.Pos.X, pt.Pos.Z)
			along = pt.Pos.Y
		default:
			off = math.Hypot(pt.Pos.X, pt.Pos.Y)
			along = pt.Pos.Z
		}
		if off >= pt.H {
			continue
		}
		half := math.Sqrt(pt.H*pt.H - off*off)
		lo, hi := along-half, along+half
		step := (hi - lo) / n
		for i := 0; i < n; i++ {
			s := lo + (float64(i)+0.5)*step
			var r3 float64
			switch axis {
			case 0:
				r3 = math.Sqrt((s-pt.Pos.X)*(s-pt.Pos.X) + off*off)
			case 1:
				r3 = math.Sqrt((s-pt.Pos.Y)*(s-pt.Pos.Y) + off*off)
			default:
				r3 = math.Sqrt((s-pt.Pos.Z)*(s-pt.Pos.Z) + off*off)
			}
			sum += (pt.M / g.totalMass) * cubicSplineKernel(r3, pt.H) * step
		}
	}
	return sum
}

func (g *SPHParticleCloud) SigmaX() float64 { return g.sigmaAxis(0) }
func (g *SPHParticleCloud) SigmaY() float64 { return g.sigmaAxis(1) }
func (g *SPHParticleCloud) SigmaZ() float64 { return g.sigmaAxis(2) }

// VoronoiCloud models an unstructured Voronoi-tessellation density field
// the same way SPHParticleCloud models an SPH snapshot: a list of cell
// generators, each carrying its own mass and an effective cell radius used
// as a cubic-spline smoothing scale in lieu of the exact polyhedral cell
// shape (computing the true Voronoi cell from its neighbors is a meshing
// problem handed to the external mesh-construction collaborator, not this
// core — see Non-goals).
type VoronoiCloud struct {
	*SPHParticleCloud
}

// NewVoronoiCloud builds a VoronoiCloud from generator points with
// effective cell radii in Particle.H.
func NewVoronoiCloud(cells []Particle) *VoronoiCloud {
	return &VoronoiCloud{NewSPHParticleCloud(cells)}
}

// AdaptiveMeshCloud models an octree/AMR geometry the same way: a flat list
// of leaf cells, each a cube of half-width H centered at Pos holding a
// uniform density contribution M.
type AdaptiveMeshCloud struct {
	isotropic
	Cells     []Particle
	totalMass float64
	cdf       *nr.CDF
}

// NewAdaptiveMeshCloud builds the cell-selection CDF from leaf masses.
func NewAdaptiveMeshCloud(cells []Particle) *AdaptiveMeshCloud {
	g := &AdaptiveMeshCloud{Cells: cells}
	x := make(nr.Array, len(cells)+1)
	p := make(nr.Array, len(cells))
	for i, c := range cells {
		x[i+1] = x[i] + 1
		p[i] = c.M
		g.totalMass += c.M
	}
	g.cdf = nr.NewCDF(x, p)
	return g
}

func (g *AdaptiveMeshCloud) Dimension() Dim { return Dim3 }

func (g *AdaptiveMeshCloud) cellOf(p Position) (Particle, bool) {
	for _, c := range g.Cells {
		if math.Abs(p.X-c.Pos.X) <= c.H && math.Abs(p.Y-c.Pos.Y) <= c.H && math.Abs(p.Z-c.Pos.Z) <= c.H {
			return c, true
		}
	}
	return Particle{}, false
}

func (g *AdaptiveMeshCloud) Density(p Position) float64 {
	c, ok := g.cellOf(p)
	if !ok || g.totalMass == 0 {
		return 0
	}
	vol := 8 * c.H * c.H * c.H
	return (c.M / g.totalMass) / vol
}

func (g *AdaptiveMeshCloud) GeneratePosition(r *nr.Random) Position {
	idx := int(r.SampleCDF(g.cdf))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(g.Cells) {
		idx = len(g.Cells) - 1
	}
	c := g.Cells[idx]
	lo := [3]float64{c.Pos.X - c.H, c.Pos.Y - c.H, c.Pos.Z - c.H}
	hi := [3]float64{c.Pos.X + c.H, c.Pos.Y + c.H, c.Pos.Z + c.H}
	p := r.PositionInBox(lo, hi)
	return NewPosition(p[0], p[1], p[2])
}

func (g *AdaptiveMeshCloud) sigmaAxis(axis int) float64 {
	sum := 0.0
	for _, c := range g.Cells {
		if g.totalMass == 0 {
			continue
		}
		vol := 8 * c.H * c.H * c.H
		dens := (c.M / g.totalMass) / vol
		switch axis {
		case 0:
			if math.Abs(c.Pos.Y) <= c.H && math.Abs(c.Pos.Z) <= c.H {
				sum += dens * 2 * c.H
			}
		case 1:
			if math.Abs(c.Pos.X) <= c.H && math.Abs(c.Pos.Z) <= c.H {
				sum += dens * 2 * c.H
			}
		default:
			if math.Abs(c.Pos.X) <= c.H && math.Abs(c.Pos.Y) <= c.H {
				sum += dens * 2 * c.H
			}
		}
	}
	return sum
}

func (g *AdaptiveMeshCloud) SigmaX() float64 { return g.sigmaAxis(0) }
func (g *AdaptiveMeshCloud) SigmaY() float64 { return g.sigmaAxis(1) }
func (g *AdaptiveMeshCloud) SigmaZ() float64 { return g.sigmaAxis(2) }
