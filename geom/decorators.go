package geom

import (
	"fmt"
	"math"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/nr"
)

// OffsetGeometry translates an inner geometry by a fixed vector. Since an
// offset spherical or axisymmetric geometry is no longer symmetric about
// the origin, its Dimension is the max of the inner dimension and what the
// offset itself requires: a shift along z keeps axial symmetry (2-D), any
// x or y component needs full 3-D, and a zero shift requires nothing.
type OffsetGeometry struct {
	Inner Geometry
	Shift Position
}

func (g OffsetGeometry) Dimension() Dim {
	need := Dim1
	if g.Shift.Z != 0 {
		need = Dim2
	}
	if g.Shift.X != 0 || g.Shift.Y != 0 {
		need = Dim3
	}
	if d := g.Inner.Dimension(); d > need {
		return d
	}
	return need
}

func (g OffsetGeometry) Density(p Position) float64 {
	return g.Inner.Density(p.Offset(NewPosition(-g.Shift.X, -g.Shift.Y, -g.Shift.Z)))
}

func (g OffsetGeometry) GeneratePosition(r *nr.Random) Position {
	return g.Inner.GeneratePosition(r).Offset(g.Shift)
}

func (g OffsetGeometry) SigmaX() float64 { return g.Inner.SigmaX() }
func (g OffsetGeometry) SigmaY() float64 { return g.Inner.SigmaY() }
func (g OffsetGeometry) SigmaZ() float64 { return g.Inner.SigmaZ() }

func (g OffsetGeometry) IsAnisotropic() bool { return g.Inner.IsAnisotropic() }
func (g OffsetGeometry) PDir(p Position, k Direction) float64 {
	return g.Inner.PDir(p.Offset(NewPosition(-g.Shift.X, -g.Shift.Y, -g.Shift.Z)), k)
}
func (g OffsetGeometry) SampleDir(p Position, r *nr.Random) Direction {
	return g.Inner.SampleDir(p.Offset(NewPosition(-g.Shift.X, -g.Shift.Y, -g.Shift.Z)), r)
}

// SpheroidalGeometry flattens a spherically symmetric inner geometry into
// rho(R,z) = rho_s(sqrt(R^2+(z/q)^2))/q, q in (0,1].
type SpheroidalGeometry struct {
	Inner Spherical
	Q     float64
}

func (g SpheroidalGeometry) Dimension() Dim { return Dim2 }

func (g SpheroidalGeometry) DensityRz(R, z float64) float64 {
	return g.Inner.DensityR(math.Sqrt(R*R+(z/g.Q)*(z/g.Q))) / g.Q
}

func (g SpheroidalGeometry) Density(p Position) float64 {
	R, _, z := p.Cyl()
	return g.DensityRz(R, z)
}

// GeneratePosition samples the inner spherical profile then squashes the z
// coordinate by q, which is the standard way to go from a spherical sample
// to a flattened spheroidal one without re-deriving the CDF.
func (g SpheroidalGeometry) GeneratePosition(r *nr.Random) Position {
	s := g.Inner.GeneratePosition(r)
	return NewPosition(s.X, s.Y, s.Z*g.Q)
}

func (g SpheroidalGeometry) SigmaR() float64 { return g.Inner.SigmaR() / g.Q }
func (g SpheroidalGeometry) SigmaX() float64 { return g.Inner.SigmaX() / g.Q }
func (g SpheroidalGeometry) SigmaY() float64 { return g.Inner.SigmaY() / g.Q }
func (g SpheroidalGeometry) SigmaZ() float64 { return g.Inner.SigmaZ() }

func (g SpheroidalGeometry) IsAnisotropic() bool { return g.Inner.IsAnisotropic() }
func (g SpheroidalGeometry) PDir(p Position, k Direction) float64 {
	return g.Inner.PDir(p, k)
}
func (g SpheroidalGeometry) SampleDir(p Position, r *nr.Random) Direction {
	return g.Inner.SampleDir(p, r)
}

// SphereCrop zeroes the density of an inner geometry outside a sphere of
// radius R centered at the origin, renormalizing by the retained mass
// fraction. Setup fails (returns an error from NewSphereCrop) if more than
// 99% of the mass would be removed, per section 4.2/7.
type SphereCrop struct {
	Inner    Geometry
	R        float64
	keepFrac float64
}

// NewSphereCrop estimates the retained mass fraction by Monte Carlo
// sampling of the inner geometry and returns a normalization error if more
// than 99% of the mass falls outside R.
func NewSphereCrop(inner Geometry, radius float64, r *nr.Random, samples int) (*SphereCrop, error) {
	kept := 0
	for i := 0; i < samples; i++ {
		p := inner.GeneratePosition(r)
		if p.R() <= radius {
			kept++
		}
	}
	frac := float64(kept) / float64(samples)
	if frac < 0.01 {
		return nil, fmt.Errorf("%w: SphereCrop would retain only %.4f of the mass", errs.ErrNormalization, frac)
	}
	return &SphereCrop{Inner: inner, R: radius, keepFrac: frac}, nil
}

func (g *SphereCrop) Dimension() Dim { return g.Inner.Dimension() }

func (g *SphereCrop) Density(p Position) float64 {
	if p.R() > g.R {
		return 0
	}
	return g.Inner.Density(p) / g.keepFrac
}

func (g *SphereCrop) GeneratePosition(r *nr.Random) Position {
	for {
		p := g.Inner.GeneratePosition(r)
		if p.R() <= g.R {
			return p
		}
	}
}

func (g *SphereCrop) SigmaX() float64 { return g.Inner.SigmaX() / g.keepFrac }
func (g *SphereCrop) SigmaY() float64 { return g.Inner.SigmaY() / g.keepFrac }
func (g *SphereCrop) SigmaZ() float64 { return g.Inner.SigmaZ() / g.keepFrac }

func (g *SphereCrop) IsAnisotropic() bool                        { return g.Inner.IsAnisotropic() }
func (g *SphereCrop) PDir(p Position, k Direction) float64       { return g.Inner.PDir(p, k) }
func (g *SphereCrop) SampleDir(p Position, r *nr.Random) Direction { return g.Inner.SampleDir(p, r) }

// Combine is a weighted sum of two geometries; weights are normalized to
// sum to 1 at construction.
type Combine struct {
	A, B   Geometry
	Wa, Wb float64
}

// NewCombine normalizes wa, wb to sum to 1.
func NewCombine(a, b Geometry, wa, wb float64) Combine {
	total := wa + wb
	return Combine{A: a, B: b, Wa: wa / total, Wb: wb / total}
}

func (g Combine) Dimension() Dim {
	if g.A.Dimension() > g.B.Dimension() {
		return g.A.Dimension()
	}
	return g.B.Dimension()
}

func (g Combine) Density(p Position) float64 {
	return g.Wa*g.A.Density(p) + g.Wb*g.B.Density(p)
}

func (g Combine) GeneratePosition(r *nr.Random) Position {
	if r.Uniform() < g.Wa {
		return g.A.GeneratePosition(r)
	}
	return g.B.GeneratePosition(r)
}

func (g Combine) SigmaX() float64 { return g.Wa*g.A.SigmaX() + g.Wb*g.B.SigmaX() }
func (g Combine) SigmaY() float64 { return g.Wa*g.A.SigmaY() + g.Wb*g.B.SigmaY() }
func (g Combine) SigmaZ() float64 { return g.Wa*g.A.SigmaZ() + g.Wb*g.B.SigmaZ() }

func (g Combine) IsAnisotropic() bool { return g.A.IsAnisotropic() || g.B.IsAnisotropic() }
func (g Combine) PDir(p Position, k Direction) float64 {
	return g.Wa*g.A.PDir(p, k) + g.Wb*g.B.PDir(p, k)
}
func (g Combine) SampleDir(p Position, r *nr.Random) Direction {
	if r.Uniform() < g.Wa {
		return g.A.SampleDir(p, r)
	}
	return g.B.SampleDir(p, r)
}
