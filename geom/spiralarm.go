package geom

import (
	"math"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/nr"
)

// SpiralArm wraps an axisymmetric geometry with an m-armed logarithmic
// spiral density perturbation, following the original source's
// SpiralStructureGeometryDecorator: the perturbation factor is
// (1-w) + w*CN*sin^(2N)(m/2*(gamma(R)-phi)), with gamma(R) = ln(R/R0)/tan(p)
// + phi0 + pi/(2m) and CN = sqrt(pi)*Gamma(N+1)/Gamma(N+1/2) chosen so the
// perturbation's azimuthal average stays 1.
type SpiralArm struct {
	Inner SeparableAxisymmetric
	M     int     // number of arms
	Pitch float64 // pitch angle, radians, in (0, pi/2)
	R0    float64
	Phi0  float64 // radians, in [0, 2pi]
	W     float64 // perturbation weight, in (0,1]
	N     int     // arm/interarm contrast index, in [0,10]

	tanp float64
	cN   float64
	c    float64
}

// NewSpiralArm validates parameters and caches the derived constants,
// mirroring setupSelfBefore.
func NewSpiralArm(inner SeparableAxisymmetric, m int, pitch, r0, phi0, w float64, n int) (*SpiralArm, error) {
	if m <= 0 {
		return nil, errs.ErrGeometryDomain
	}
	if pitch <= 0 || pitch >= math.Pi/2 {
		return nil, errs.ErrGeometryDomain
	}
	if r0 <= 0 {
		return nil, errs.ErrGeometryDomain
	}
	if phi0 < 0 || phi0 > 2*math.Pi {
		return nil, errs.ErrGeometryDomain
	}
	if w <= 0 || w > 1 {
		return nil, errs.ErrGeometryDomain
	}
	if n < 0 || n > 10 {
		return nil, errs.ErrGeometryDomain
	}
	g := &SpiralArm{Inner: inner, M: m, Pitch: pitch, R0: r0, Phi0: phi0, W: w, N: n}
	g.tanp = math.Tan(pitch)
	g.cN = math.Sqrt(math.Pi) * math.Gamma(float64(n)+1) / math.Gamma(float64(n)+0.5)
	g.c = 1 + (g.cN-1)*w
	return g, nil
}

func (g *SpiralArm) Dimension() Dim { return Dim3 }

func (g *SpiralArm) perturbation(R, phi float64) float64 {
	gamma := math.Log(R/g.R0)/g.tanp + g.Phi0 + 0.5*math.Pi/float64(g.M)
	s := math.Sin(0.5 * float64(g.M) * (gamma - phi))
	return (1 - g.W) + g.W*g.cN*math.Pow(s, float64(2*g.N))
}

func (g *SpiralArm) Density(p Position) float64 {
	R, phi, z := p.Cyl()
	return g.Inner.DensityRz(R, z) * g.perturbation(R, phi)
}

func (g *SpiralArm) GeneratePosition(r *nr.Random) Position {
	base := g.Inner.GeneratePosition(r)
	R, _, z := base.Cyl()
	for {
		phi := 2 * math.Pi * r.Uniform()
		t := r.Uniform() * g.c / g.perturbation(R, phi)
		if t <= 1 {
			return NewPosition(R*math.Cos(phi), R*math.Sin(phi), z)
		}
	}
}

func (g *SpiralArm) SigmaX() float64 { return g.Inner.SigmaX() }
func (g *SpiralArm) SigmaY() float64 { return g.Inner.SigmaY() }
func (g *SpiralArm) SigmaZ() float64 { return g.Inner.SigmaZ() }

func (g *SpiralArm) IsAnisotropic() bool                          { return g.Inner.IsAnisotropic() }
func (g *SpiralArm) PDir(p Position, k Direction) float64         { return g.Inner.PDir(p, k) }
func (g *SpiralArm) SampleDir(p Position, r *nr.Random) Direction { return g.Inner.SampleDir(p, r) }
