package geom

import (
	"math"
	"sort"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/nr"
)

// Clumpy splits an inner geometry's mass into a smooth component (fraction
// 1-F) and N identical point clumps of scale radius H, each smoothed by a
// cubic-spline kernel, following the original source's
// ClumpyGeometryDecorator. Cutoff, when true, rejects clump samples (and
// zeroes clump density) wherever the smooth component itself vanishes.
type Clumpy struct {
	Inner  Geometry
	F      float64 // mass fraction locked up in clumps, in [0,1]
	N      int     // number of clumps
	H      float64 // clump scale radius
	Cutoff bool

	clumps []Position // sorted by X, for the windowed density sum below
}

// NewClumpy validates parameters and draws the fixed clump centers from the
// inner geometry, mirroring setupSelfBefore/setupSelfAfter in the original
// source.
func NewClumpy(inner Geometry, f float64, n int, h float64, cutoff bool, r *nr.Random) (*Clumpy, error) {
	if f < 0 || f > 1 {
		return nil, errs.ErrGeometryDomain
	}
	if n <= 0 {
		return nil, errs.ErrGeometryDomain
	}
	if h <= 0 {
		return nil, errs.ErrGeometryDomain
	}
	c := &Clumpy{Inner: inner, F: f, N: n, H: h, Cutoff: cutoff}
	c.clumps = make([]Position, n)
	for i := range c.clumps {
		c.clumps[i] = inner.GeneratePosition(r)
	}
	sort.Slice(c.clumps, func(i, j int) bool { return c.clumps[i].X < c.clumps[j].X })
	return c, nil
}

func (g *Clumpy) Dimension() Dim { return Dim3 }

// windowRange returns the index range of clumps whose X coordinate lies
// within H of p.X, the same windowing the original source performs via
// NR::locate on the sorted clump vector before summing kernel contributions.
func (g *Clumpy) windowRange(x float64) (int, int) {
	xs := make(nr.Array, len(g.clumps))
	for i, c := range g.clumps {
		xs[i] = c.X
	}
	lo := nr.Locate(xs, x-g.H, nr.PolicyClip)
	hi := nr.Locate(xs, x+g.H, nr.PolicyClip)
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	return lo, hi
}

func (g *Clumpy) Density(p Position) float64 {
	rhoSmooth := (1 - g.F) * g.Inner.Density(p)
	if g.Cutoff && rhoSmooth == 0 {
		return 0
	}
	mClump := g.F / float64(g.N)
	rhoClumpy := 0.0
	lo, hi := g.windowRange(p.X)
	for i := lo; i <= hi && i < len(g.clumps); i++ {
		c := g.clumps[i]
		dx, dy, dz := p.X-c.X, p.Y-c.Y, p.Z-c.Z
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		rhoClumpy += mClump * cubicSplineKernel(r, g.H)
	}
	return rhoSmooth + rhoClumpy
}

func (g *Clumpy) GeneratePosition(r *nr.Random) Position {
	for {
		x := r.Uniform()
		if x > g.F {
			return g.Inner.GeneratePosition(r)
		}
		i := int((x / g.F) * float64(g.N))
		if i >= g.N {
			i = g.N - 1
		}
		u := sampleKernelRadius(r, g.H)
		theta, phi := r.Direction()
		d := FromAngles(theta, phi)
		c := g.clumps[i]
		p := NewPosition(c.X+u*d.X, c.Y+u*d.Y, c.Z+u*d.Z)
		if !g.Cutoff || g.Inner.Density(p) > 0 {
			return p
		}
	}
}

func (g *Clumpy) SigmaX() float64 { return g.Inner.SigmaX() }
func (g *Clumpy) SigmaY() float64 { return g.Inner.SigmaY() }
func (g *Clumpy) SigmaZ() float64 { return g.Inner.SigmaZ() }

func (g *Clumpy) IsAnisotropic() bool                          { return g.Inner.IsAnisotropic() }
func (g *Clumpy) PDir(p Position, k Direction) float64         { return g.Inner.PDir(p, k) }
func (g *Clumpy) SampleDir(p Position, r *nr.Random) Direction { return g.Inner.SampleDir(p, r) }
