package geom

import (
	"math"

	"github.com/soniakeys/dustrt/nr"
)

// StellarSurface is a point source (radius treated as negligible against
// the grid scale) emitting isotropically outward — i.e. uniformly over the
// full sphere, since at a point the notion of "outward" from a surface
// degenerates to any direction.
type StellarSurface struct{ isotropic }

func (StellarSurface) Dimension() Dim               { return Dim1 }
func (StellarSurface) Density(Position) float64     { return 0 }
func (StellarSurface) SigmaX() float64              { return 0 }
func (StellarSurface) SigmaY() float64              { return 0 }
func (StellarSurface) SigmaZ() float64              { return 0 }
func (StellarSurface) SigmaR() float64              { return 0 }
func (StellarSurface) DensityR(float64) float64     { return 0 }
func (StellarSurface) GeneratePosition(*nr.Random) Position { return NewPosition(0, 0, 0) }

// Laser emits a delta-like beam along +z; it embeds no isotropic default
// and defines its own PDir/SampleDir, since this is the one emitter whose
// direction distribution is a point mass rather than a smooth pattern.
type Laser struct{}

func (Laser) Dimension() Dim                                { return Dim1 }
func (Laser) Density(Position) float64                      { return 0 }
func (Laser) GeneratePosition(*nr.Random) Position           { return NewPosition(0, 0, 0) }
func (Laser) SigmaX() float64                                { return 0 }
func (Laser) SigmaY() float64                                { return 0 }
func (Laser) SigmaZ() float64                                { return 0 }
func (Laser) IsAnisotropic() bool                            { return true }
func (Laser) PDir(p Position, k Direction) float64 {
	if k.Z > 1-1e-9 {
		return math.Inf(1)
	}
	return 0
}
func (Laser) SampleDir(Position, *nr.Random) Direction { return NewDirection(0, 0, 1) }

// NetzerAccretionDisk is the anisotropic point emitter from an AGN
// accretion-disk model, L(theta) ~ cos(theta) * (2*cos(theta) +- 1); Sign
// selects the +1 ("limb-brightened") or -1 ("limb-darkened") branch.
type NetzerAccretionDisk struct {
	Sign float64 // +1 or -1
}

func (g NetzerAccretionDisk) Dimension() Dim             { return Dim1 }
func (g NetzerAccretionDisk) Density(Position) float64   { return 0 }
func (g NetzerAccretionDisk) GeneratePosition(*nr.Random) Position {
	return NewPosition(0, 0, 0)
}
func (g NetzerAccretionDisk) SigmaX() float64 { return 0 }
func (g NetzerAccretionDisk) SigmaY() float64 { return 0 }
func (g NetzerAccretionDisk) SigmaZ() float64 { return 0 }
func (g NetzerAccretionDisk) IsAnisotropic() bool { return true }

// lumPattern is proportional to L(theta); negative (below the disk plane,
// cos(theta)<0) contributions are zero by construction.
func (g NetzerAccretionDisk) lumPattern(costheta float64) float64 {
	if costheta <= 0 {
		return 0
	}
	return costheta * (2*costheta + g.Sign)
}

// netzerNorm integrates lumPattern over the upper hemisphere (phi-symmetric)
// so PDir can be properly normalized to a probability density over solid
// angle, int_0^(2pi) int_0^(pi/2) lumPattern(cos theta) sin theta dtheta dphi = 1.
func (g NetzerAccretionDisk) netzerNorm() float64 {
	const n = 2000
	sum := 0.0
	dmu := 1.0 / n
	for i := 0; i < n; i++ {
		mu := (float64(i) + 0.5) * dmu
		sum += g.lumPattern(mu) * dmu
	}
	return 2 * math.Pi * sum
}

func (g NetzerAccretionDisk) PDir(p Position, k Direction) float64 {
	norm := g.netzerNorm()
	if norm == 0 {
		return 0
	}
	return g.lumPattern(k.Z) / norm
}

func (g NetzerAccretionDisk) SampleDir(p Position, r *nr.Random) Direction {
	const n = 4000
	mu := nr.LinGrid(0, 1, n+1)
	w := make(nr.Array, n)
	for i := 0; i < n; i++ {
		m := 0.5 * (mu[i] + mu[i+1])
		w[i] = g.lumPattern(m) * (mu[i+1] - mu[i])
	}
	cdf := nr.NewCDF(mu, w)
	costheta := r.SampleCDF(cdf)
	theta := math.Acos(costheta)
	phi := 2 * math.Pi * r.Uniform()
	return FromAngles(theta, phi)
}

// BackgroundSphere radiates density on the surface of a sphere of radius R,
// with inward cosine-weighted emission (illuminating the interior, the
// convention used for a diffuse background sky dome).
type BackgroundSphere struct {
	R float64
}

func (g BackgroundSphere) Dimension() Dim           { return Dim1 }
func (g BackgroundSphere) Density(Position) float64 { return 0 }
func (g BackgroundSphere) SigmaX() float64          { return 0 }
func (g BackgroundSphere) SigmaY() float64          { return 0 }
func (g BackgroundSphere) SigmaZ() float64          { return 0 }
func (g BackgroundSphere) SigmaR() float64          { return 0 }
func (g BackgroundSphere) DensityR(float64) float64 { return 0 }

func (g BackgroundSphere) GeneratePosition(r *nr.Random) Position {
	theta, phi := r.Direction()
	return sphericalToPosition(g.R, theta, phi)
}

func (g BackgroundSphere) IsAnisotropic() bool { return true }

func (g BackgroundSphere) PDir(p Position, k Direction) float64 {
	// inward direction means k points roughly opposite to the outward
	// normal at p; cosine-weighted about the inward normal.
	nx, ny, nz := -p.X/g.R, -p.Y/g.R, -p.Z/g.R
	mu := k.X*nx + k.Y*ny + k.Z*nz
	if mu <= 0 {
		return 0
	}
	return mu / math.Pi
}

func (g BackgroundSphere) SampleDir(p Position, r *nr.Random) Direction {
	theta, phi := r.CosineDirection()
	if theta > math.Pi/2 {
		theta = math.Pi - theta
	}
	local := FromAngles(theta, phi)
	// rotate the local (+z-aligned) cosine lobe to point along the inward
	// normal -n at p; for a sphere this is just the direction from p to
	// the center.
	nx, ny, nz := -p.X/g.R, -p.Y/g.R, -p.Z/g.R
	return rotateZTo(local, NewDirection(nx, ny, nz))
}

// BackgroundCube is the same idea on the six faces of a cube of half-width
// H, each face emitting inward with a cosine law about its own normal.
type BackgroundCube struct {
	H float64
}

func (g BackgroundCube) Dimension() Dim           { return Dim3 }
func (g BackgroundCube) Density(Position) float64 { return 0 }
func (g BackgroundCube) SigmaX() float64          { return 0 }
func (g BackgroundCube) SigmaY() float64          { return 0 }
func (g BackgroundCube) SigmaZ() float64          { return 0 }
func (g BackgroundCube) IsAnisotropic() bool      { return true }

func (g BackgroundCube) faceNormal(p Position) Direction {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	switch {
	case ax >= ay && ax >= az:
		return NewDirection(-math.Copysign(1, p.X), 0, 0)
	case ay >= ax && ay >= az:
		return NewDirection(0, -math.Copysign(1, p.Y), 0)
	default:
		return NewDirection(0, 0, -math.Copysign(1, p.Z))
	}
}

func (g BackgroundCube) GeneratePosition(r *nr.Random) Position {
	face := int(r.Uniform() * 6)
	if face > 5 {
		face = 5
	}
	u := (r.Uniform()*2 - 1) * g.H
	v := (r.Uniform()*2 - 1) * g.H
	switch face {
	case 0:
		return NewPosition(g.H, u, v)
	case 1:
		return NewPosition(-g.H, u, v)
	case 2:
		return NewPosition(u, g.H, v)
	case 3:
		return NewPosition(u, -g.H, v)
	case 4:
		return NewPosition(u, v, g.H)
	default:
		return NewPosition(u, v, -g.H)
	}
}

func (g BackgroundCube) PDir(p Position, k Direction) float64 {
	n := g.faceNormal(p)
	mu := k.X*n.X + k.Y*n.Y + k.Z*n.Z
	if mu <= 0 {
		return 0
	}
	return mu / math.Pi
}

func (g BackgroundCube) SampleDir(p Position, r *nr.Random) Direction {
	theta, phi := r.CosineDirection()
	if theta > math.Pi/2 {
		theta = math.Pi - theta
	}
	local := FromAngles(theta, phi)
	return rotateZTo(local, g.faceNormal(p))
}

// SolarPatch is a disk in the z=0 plane of radius R emitting outward
// (+z hemisphere) with a cosine law, modeling a patch of stellar surface
// seen from above rather than a true point source.
type SolarPatch struct {
	R float64
}

func (g SolarPatch) Dimension() Dim           { return Dim2 }
func (g SolarPatch) Density(Position) float64 { return 0 }
func (g SolarPatch) SigmaX() float64          { return 0 }
func (g SolarPatch) SigmaY() float64          { return 0 }
func (g SolarPatch) SigmaZ() float64          { return 0 }
func (g SolarPatch) IsAnisotropic() bool      { return true }

func (g SolarPatch) GeneratePosition(r *nr.Random) Position {
	// uniform over the disk area: r = R*sqrt(u).
	rad := g.R * math.Sqrt(r.Uniform())
	phi := 2 * math.Pi * r.Uniform()
	return NewPosition(rad*math.Cos(phi), rad*math.Sin(phi), 0)
}

func (g SolarPatch) PDir(p Position, k Direction) float64 {
	if k.Z <= 0 {
		return 0
	}
	return k.Z / math.Pi
}

func (g SolarPatch) SampleDir(p Position, r *nr.Random) Direction {
	theta, phi := r.CosineDirection()
	if theta > math.Pi/2 {
		theta = math.Pi - theta
	}
	return FromAngles(theta, phi)
}

// rotateZTo rotates a direction expressed in a frame whose pole is +z into
// one whose pole is target, used to steer the cosine-lobe samplers of the
// background emitters onto an arbitrary local normal.
func rotateZTo(v Direction, target Direction) Direction {
	if target.Z > 1-1e-12 {
		return v
	}
	if target.Z < -1+1e-12 {
		return NewDirection(v.X, -v.Y, -v.Z)
	}
	// build an orthonormal frame (u, w, target) and express v in it.
	ux, uy, uz := -target.Y, target.X, 0.0
	n := math.Hypot(ux, uy)
	ux, uy = ux/n, uy/n
	wx := uy*target.Z - uz*target.Y
	wy := uz*target.X - ux*target.Z
	wz := ux*target.Y - uy*target.X
	x := v.X*ux + v.Y*wx + v.Z*target.X
	y := v.X*uy + v.Y*wy + v.Z*target.Y
	z := v.X*uz + v.Y*wz + v.Z*target.Z
	return NewDirection(x, y, z)
}
